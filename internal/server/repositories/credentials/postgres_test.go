package credentials

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var credentialColumns = []string{"id", "email", "password_hash", "recovery_code_hash", "recovery_code_salt",
	"recovery_code_expires_at", "recovery_attempts", "created_at", "updated_at"}

const insertQ = `(?s)^INSERT\s+INTO\s+credentials\s*\(email,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(insertQ).
		WithArgs("admin@ikhlas.example", "$2a$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("c-1", now, now))

	got, err := repo.Create(context.Background(), &models.Credential{Email: "admin@ikhlas.example", PasswordHash: "$2a$hash"})
	require.NoError(t, err)
	assert.Equal(t, "c-1", got.ID)
	assert.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("admin@ikhlas.example", "h").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "credentials_email_key"})

	_, err := repo.Create(context.Background(), &models.Credential{Email: "admin@ikhlas.example", PasswordHash: "h"})
	assert.ErrorIs(t, err, common.ErrorDuplicateEmail)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("a@b.c", "h").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Credential{Email: "a@b.c", PasswordHash: "h"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	assert.NotErrorIs(t, err, common.ErrorDuplicateEmail)
}

func TestGetByEmail_FoundWithRecoveryCode(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	exp := now.Add(5 * time.Minute)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*email,.*FROM\s+credentials\s+WHERE\s+email\s*=\s*\$1\s*$`).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows(credentialColumns).
			AddRow("c-1", "a@b.c", "hash", []byte("h"), []byte("s"), exp, 2, now, now))

	got, err := repo.GetByEmail(context.Background(), "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "c-1", got.ID)
	assert.Equal(t, []byte("h"), got.RecoveryCodeHash)
	assert.Equal(t, []byte("s"), got.RecoveryCodeSalt)
	require.NotNil(t, got.RecoveryCodeExpiresAt)
	assert.True(t, exp.Equal(*got.RecoveryCodeExpiresAt))
	assert.Equal(t, 2, got.RecoveryAttempts)
}

func TestGetByEmail_NoRecoveryCode(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+credentials\s+WHERE\s+email\s*=\s*\$1\s*$`).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows(credentialColumns).
			AddRow("c-1", "a@b.c", "hash", nil, nil, nil, 0, now, now))

	got, err := repo.GetByEmail(context.Background(), "a@b.c")
	require.NoError(t, err)
	assert.Nil(t, got.RecoveryCodeExpiresAt)
	assert.Empty(t, got.RecoveryCodeHash)
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+credentials`).
		WithArgs("ghost@b.c").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@b.c")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByEmailForUpdate_LocksRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+credentials\s+WHERE\s+email\s*=\s*\$1\s+FOR\s+UPDATE\s*$`).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows(credentialColumns).
			AddRow("c-1", "a@b.c", "hash", nil, nil, nil, 0, now, now))

	got, err := repo.GetByEmailForUpdate(context.Background(), "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "c-1", got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRecoveryCode(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	exp := time.Now().Add(5 * time.Minute)
	q := `(?s)^UPDATE\s+credentials\s+SET\s+recovery_code_hash\s*=\s*\$2,\s*recovery_code_salt\s*=\s*\$3,\s*recovery_code_expires_at\s*=\s*\$4,\s*recovery_attempts\s*=\s*0`

	mock.ExpectExec(q).WithArgs("c-1", []byte("h"), []byte("s"), exp).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetRecoveryCode(context.Background(), "c-1", []byte("h"), []byte("s"), exp))

	mock.ExpectExec(q).WithArgs("missing", []byte("h"), []byte("s"), exp).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetRecoveryCode(context.Background(), "missing", []byte("h"), []byte("s"), exp), common.ErrorNotFound)

	mock.ExpectExec(q).WithArgs("c-1", []byte("h"), []byte("s"), exp).WillReturnError(errors.New("boom"))
	err := repo.SetRecoveryCode(context.Background(), "c-1", []byte("h"), []byte("s"), exp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestIncrementRecoveryAttempts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+credentials\s+SET\s+recovery_attempts\s*=\s*recovery_attempts\s*\+\s*1.*RETURNING\s+recovery_attempts\s*$`

	mock.ExpectQuery(q).WithArgs("c-1").WillReturnRows(sqlmock.NewRows([]string{"recovery_attempts"}).AddRow(3))
	n, err := repo.IncrementRecoveryAttempts(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	mock.ExpectQuery(q).WithArgs("nope").WillReturnError(sql.ErrNoRows)
	_, err = repo.IncrementRecoveryAttempts(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestClearRecoveryCode(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+credentials\s+SET\s+recovery_code_hash\s*=\s*NULL,\s*recovery_code_salt\s*=\s*NULL,\s*recovery_code_expires_at\s*=\s*NULL`
	mock.ExpectExec(q).WithArgs("c-1").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ClearRecoveryCode(context.Background(), "c-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPassword(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+credentials\s+SET\s+password_hash\s*=\s*\$2,\s*recovery_code_hash\s*=\s*NULL`
	mock.ExpectExec(q).WithArgs("c-1", "newhash").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.ResetPassword(context.Background(), "c-1", "newhash"))

	mock.ExpectExec(q).WithArgs("c-2", "newhash").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.ResetPassword(context.Background(), "c-2", "newhash"), common.ErrorNotFound)
}
