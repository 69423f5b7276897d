// Package cryptox holds the server's credential primitives: bcrypt password
// hashes and short numeric recovery codes stored as salted SHA-256 digests.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"

	"github.com/ikhlashousing/propertycms/internal/common"
	"golang.org/x/crypto/bcrypt"
)

const (
	// RecoveryCodeMin and RecoveryCodeMax bound the 6-digit code space.
	RecoveryCodeMin = 100000
	RecoveryCodeMax = 999999

	recoveryCodeSaltSize = 16
)

// dummyHash is compared against when no credential exists, so a miss costs the
// same bcrypt work as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equaliser"), bcrypt.DefaultCost)

// randInt is a seam for tests.
var randInt = rand.Int

// HashPassword returns a bcrypt hash of password at bcrypt.DefaultCost.
func HashPassword(password string) (string, error) {
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	hash, err := bcrypt.GenerateFromPassword(pw, bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. An empty hash is
// compared against a dummy so callers can use it for unknown accounts.
func CheckPassword(hash, password string) bool {
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, pw)
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), pw) == nil
}

// GenerateRecoveryCode draws a code uniformly from [RecoveryCodeMin, RecoveryCodeMax].
func GenerateRecoveryCode() (string, error) {
	n, err := randInt(rand.Reader, big.NewInt(RecoveryCodeMax-RecoveryCodeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate recovery code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+RecoveryCodeMin), nil
}

// HashRecoveryCode salts and hashes code.
func HashRecoveryCode(code string) (salt, hash []byte) {
	salt = common.GenerateRandByteArray(recoveryCodeSaltSize)
	return salt, digest(code, salt)
}

// VerifyRecoveryCode compares code to the stored digest in constant time.
func VerifyRecoveryCode(code string, salt, hash []byte) bool {
	if len(salt) == 0 || len(hash) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(digest(code, salt), hash) == 1
}

// ValidateRecoveryCodeFormat rejects anything that is not exactly six ASCII digits.
func ValidateRecoveryCodeFormat(code string) error {
	if len(code) != 6 {
		return errors.New("recovery code must have 6 digits")
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return errors.New("recovery code must be numeric")
		}
	}
	return nil
}

func digest(code string, salt []byte) []byte {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(code))
	return h.Sum(nil)
}
