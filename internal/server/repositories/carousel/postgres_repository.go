package carousel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/dbx"
	"github.com/ikhlashousing/propertycms/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, title, image, device_type, created_at, updated_at`

func (r *PostgresRepository) List(ctx context.Context) ([]*models.CarouselSlide, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM carousel_slides ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.CarouselSlide{}
	for rows.Next() {
		s := &models.CarouselSlide{}
		if err := rows.Scan(&s.ID, &s.Title, &s.Image, &s.DeviceType, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.CarouselSlide, error) {
	s := &models.CarouselSlide{}
	err := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM carousel_slides WHERE id = $1`, id).
		Scan(&s.ID, &s.Title, &s.Image, &s.DeviceType, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.CarouselSlide) (*models.CarouselSlide, error) {
	query :=
		`INSERT INTO carousel_slides (title, image, device_type)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, s.Title, s.Image, s.DeviceType).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carousel_slides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
