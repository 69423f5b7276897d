package testimonials

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

const selectColumns = `id, name, quote, rating, property, verified, date, created_at, updated_at`

func scanInto(t *models.Testimonial) []any {
	return []any{&t.ID, &t.Name, &t.Quote, &t.Rating, &t.Property, &t.Verified, &t.Date, &t.CreatedAt, &t.UpdatedAt}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM testimonials ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Testimonial{}
	for rows.Next() {
		t := &models.Testimonial{}
		if err := rows.Scan(scanInto(t)...); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Testimonial, error) {
	t := &models.Testimonial{}
	err := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM testimonials WHERE id = $1`, id).Scan(scanInto(t)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Testimonial) (*models.Testimonial, error) {
	query :=
		`INSERT INTO testimonials (name, quote, rating, property, verified, date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, t.Name, t.Quote, t.Rating, t.Property, t.Verified, t.Date).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *models.Testimonial) error {
	query :=
		`UPDATE testimonials
		 SET name = $2, quote = $3, rating = $4, property = $5, verified = $6, date = $7, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Quote, t.Rating, t.Property, t.Verified, t.Date)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
