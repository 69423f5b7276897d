package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/dbx"
	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, email, password_hash, recovery_code_hash, recovery_code_salt,
		 recovery_code_expires_at, recovery_attempts, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, c *models.Credential) (*models.Credential, error) {
	query :=
		`INSERT INTO credentials (email, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, c.Email, c.PasswordHash).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	query := `SELECT ` + selectColumns + ` FROM credentials
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByEmailForUpdate(ctx context.Context, email string) (*models.Credential, error) {
	query := `SELECT ` + selectColumns + ` FROM credentials
		 WHERE email = $1
		 FOR UPDATE
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Credential, error) {
	c := &models.Credential{}
	var expiresAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.Email, &c.PasswordHash, &c.RecoveryCodeHash, &c.RecoveryCodeSalt,
		&expiresAt, &c.RecoveryAttempts, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		c.RecoveryCodeExpiresAt = &t
	}

	return c, nil
}

func (r *PostgresRepository) SetRecoveryCode(ctx context.Context, id string, hash, salt []byte, expiresAt time.Time) error {
	query :=
		`UPDATE credentials
		 SET recovery_code_hash = $2, recovery_code_salt = $3, recovery_code_expires_at = $4,
		     recovery_attempts = 0, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, hash, salt, expiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) IncrementRecoveryAttempts(ctx context.Context, id string) (int, error) {
	query :=
		`UPDATE credentials
		 SET recovery_attempts = recovery_attempts + 1, updated_at = now()
		 WHERE id = $1
		 RETURNING recovery_attempts
		 `

	var attempts int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return attempts, nil
}

func (r *PostgresRepository) ClearRecoveryCode(ctx context.Context, id string) error {
	query :=
		`UPDATE credentials
		 SET recovery_code_hash = NULL, recovery_code_salt = NULL, recovery_code_expires_at = NULL,
		     recovery_attempts = 0, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) ResetPassword(ctx context.Context, id string, passwordHash string) error {
	query :=
		`UPDATE credentials
		 SET password_hash = $2,
		     recovery_code_hash = NULL, recovery_code_salt = NULL, recovery_code_expires_at = NULL,
		     recovery_attempts = 0, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
