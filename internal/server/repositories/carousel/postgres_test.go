package carousel

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/server/models"
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

var columns = []string{"id", "title", "image", "device_type", "created_at", "updated_at"}

func TestListGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`^SELECT.*FROM\s+carousel_slides\s+ORDER\s+BY\s+created_at\s+DESC$`).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("s-1", "", "/uploads/carousel/a.jpg", "mobile", now, now))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mobile", got[0].DeviceType)

	mock.ExpectQuery(`^SELECT.*WHERE\s+id\s*=\s*\$1$`).WithArgs("s-9").WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "s-9")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreateDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+carousel_slides`).
		WithArgs("Welcome", "/uploads/carousel/a.jpg", "desktop").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("s-1", now, now))
	s, err := repo.Create(context.Background(), &models.CarouselSlide{Title: "Welcome", Image: "/uploads/carousel/a.jpg", DeviceType: "desktop"})
	require.NoError(t, err)
	assert.Equal(t, "s-1", s.ID)

	mock.ExpectExec(`^DELETE\s+FROM\s+carousel_slides`).WithArgs("s-1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "s-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
