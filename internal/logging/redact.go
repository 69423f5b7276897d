package logging

import "strings"

// RedactedValue replaces the value of any attribute whose key names a secret.
const RedactedValue = "[REDACTED]"

var secretKeys = map[string]struct{}{
	"password":      {},
	"resetpassword": {},
	"otp":           {},
	"code":          {},
	"token":         {},
	"authorization": {},
	"secret":        {},
}

// IsSecretKey reports whether values logged under key must be hidden.
func IsSecretKey(key string) bool {
	_, ok := secretKeys[strings.ToLower(key)]
	return ok
}
