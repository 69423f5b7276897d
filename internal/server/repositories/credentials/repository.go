package credentials

import (
	"context"
	"time"

	"github.com/ikhlashousing/propertycms/internal/server/models"
)

// Repository persists administrator credentials and their outstanding
// password-recovery code. The recovery fields are only ever written or
// cleared together.
type Repository interface {
	Create(ctx context.Context, c *models.Credential) (*models.Credential, error)
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
	// GetByEmailForUpdate locks the row until the surrounding transaction ends.
	GetByEmailForUpdate(ctx context.Context, email string) (*models.Credential, error)
	SetRecoveryCode(ctx context.Context, id string, hash, salt []byte, expiresAt time.Time) error
	IncrementRecoveryAttempts(ctx context.Context, id string) (int, error)
	ClearRecoveryCode(ctx context.Context, id string) error
	// ResetPassword stores a new password hash and clears the recovery code.
	ResetPassword(ctx context.Context, id string, passwordHash string) error
}
