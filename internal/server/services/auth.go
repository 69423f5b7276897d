package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/cryptox"
	"github.com/ikhlashousing/propertycms/internal/dbx"
	"github.com/ikhlashousing/propertycms/internal/logging"
	"github.com/ikhlashousing/propertycms/internal/server/auth"
	"github.com/ikhlashousing/propertycms/internal/server/config"
	"github.com/ikhlashousing/propertycms/internal/server/mailer"
	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/repomanager"
	"github.com/ikhlashousing/propertycms/internal/server/validation"
)

const (
	RecoveryMailSubject = "Your OTP Code"
	recoveryMailBody    = "Your OTP Code is: %s"

	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// AuthService registers administrators, logs them in and runs the
// one-time-code password recovery flow.
type AuthService struct {
	db                   *sql.DB
	repomanager          repomanager.RepositoryManager
	mailer               mailer.Sender
	logger               logging.Logger
	jwtSecret            []byte
	accessTokenValidity  time.Duration
	recoveryCodeValidity time.Duration
	maxRecoveryAttempts  int
	now                  func() time.Time
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, sender mailer.Sender, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                   db,
		repomanager:          m,
		mailer:               sender,
		logger:               logger.With("module", "auth"),
		jwtSecret:            []byte(cfg.SecretKey),
		accessTokenValidity:  cfg.AccessTokenValidityDuration,
		recoveryCodeValidity: cfg.RecoveryCodeValidityDuration,
		maxRecoveryAttempts:  cfg.MaxRecoveryAttempts,
		now:                  time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	return validation.Var(email, "required,email")
}

func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, maxPasswordBytes)
	}
	return nil
}

// storeError keeps sentinel errors and marks everything else as a store failure.
func storeError(err error) error {
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorDuplicateEmail) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrorStoreUnavailable, err)
}

// Register creates a credential. The email must be unused.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.Credential, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	c, err := s.repomanager.Credentials(s.db).Create(ctx, &models.Credential{Email: email, PasswordHash: hash})
	if err != nil {
		return nil, storeError(err)
	}

	s.logger.Info(ctx, "credential registered", "credential_id", c.ID)
	return c, nil
}

// Login checks the password and returns a signed access token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if password == "" {
		return "", fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	c, err := s.repomanager.Credentials(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.CheckPassword("", password)
			return "", common.ErrorInvalidCredentials
		}
		return "", storeError(err)
	}

	if !cryptox.CheckPassword(c.PasswordHash, password) {
		return "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(c.ID, s.jwtSecret, s.accessTokenValidity)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}

// Authenticate resolves an access token to the credential id it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	id, err := auth.CredentialIDFromToken(token, s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return id, nil
}

// RequestPasswordReset issues a fresh six-digit code for email, replacing any
// outstanding one, and mails it to the account. The code is returned so the
// transport can decide whether to echo it.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return "", err
	}

	repo := s.repomanager.Credentials(s.db)
	c, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return "", storeError(err)
	}

	code, err := cryptox.GenerateRecoveryCode()
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	salt, hash := cryptox.HashRecoveryCode(code)

	expiresAt := s.now().Add(s.recoveryCodeValidity)
	if err := repo.SetRecoveryCode(ctx, c.ID, hash, salt, expiresAt); err != nil {
		return "", storeError(err)
	}

	err = s.mailer.Send(ctx, mailer.Email{
		To:      []string{c.Email},
		Subject: RecoveryMailSubject,
		Body:    fmt.Sprintf(recoveryMailBody, code),
	})
	if err != nil {
		s.logger.Error(ctx, "recovery code mail failed", "credential_id", c.ID, "error", err)
		return "", fmt.Errorf("%w: send recovery code: %v", common.ErrorStoreUnavailable, err)
	}

	s.logger.Info(ctx, "recovery code issued", "credential_id", c.ID, "expires_at", expiresAt)
	return code, nil
}

// VerifyAndResetPassword replaces the password when code matches the
// outstanding, unexpired code for email. The code is single use. Each wrong
// guess is counted and the code is dropped once the limit is reached.
func (s *AuthService) VerifyAndResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	if err := cryptox.ValidateRecoveryCodeFormat(code); err != nil {
		return common.ErrorInvalidOrExpiredCode
	}

	// A rejected code is a committed outcome, not a rollback: the attempt
	// counter has to persist.
	outcome, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (error, error) {
		repo := s.repomanager.Credentials(tx)

		c, err := repo.GetByEmailForUpdate(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorInvalidOrExpiredCode, nil
			}
			return nil, err
		}

		if !c.HasRecoveryCode(s.now()) {
			return common.ErrorInvalidOrExpiredCode, nil
		}

		if !cryptox.VerifyRecoveryCode(code, c.RecoveryCodeSalt, c.RecoveryCodeHash) {
			attempts, err := repo.IncrementRecoveryAttempts(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			if attempts >= s.maxRecoveryAttempts {
				if err := repo.ClearRecoveryCode(ctx, c.ID); err != nil {
					return nil, err
				}
				s.logger.Warn(ctx, "recovery code discarded after too many attempts", "credential_id", c.ID)
			}
			return common.ErrorInvalidOrExpiredCode, nil
		}

		hash, err := cryptox.HashPassword(newPassword)
		if err != nil {
			return nil, err
		}
		if err := repo.ResetPassword(ctx, c.ID, hash); err != nil {
			return nil, err
		}

		s.logger.Info(ctx, "password reset", "credential_id", c.ID)
		return nil, nil
	})
	if err != nil {
		return storeError(err)
	}

	return outcome
}
