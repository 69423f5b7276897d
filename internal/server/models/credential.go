package models

import "time"

// Credential is an administrator login. The recovery fields are either all
// set (a reset is outstanding) or all empty.
type Credential struct {
	ID                    string
	Email                 string
	PasswordHash          string
	RecoveryCodeHash      []byte
	RecoveryCodeSalt      []byte
	RecoveryCodeExpiresAt *time.Time
	RecoveryAttempts      int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// HasRecoveryCode reports whether a code is stored and still valid at now.
func (c *Credential) HasRecoveryCode(now time.Time) bool {
	if c.RecoveryCodeExpiresAt == nil || len(c.RecoveryCodeHash) == 0 || len(c.RecoveryCodeSalt) == 0 {
		return false
	}
	return now.Before(*c.RecoveryCodeExpiresAt)
}
