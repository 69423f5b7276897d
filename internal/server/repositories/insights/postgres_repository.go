package insights

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

const selectColumns = `id, title, excerpt, category, image, author, published, created_at, updated_at`

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Insight, error) {
	query := `SELECT ` + selectColumns + ` FROM insights ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Insight{}
	for rows.Next() {
		in := &models.Insight{}
		if err := rows.Scan(&in.ID, &in.Title, &in.Excerpt, &in.Category, &in.Image, &in.Author,
			&in.Published, &in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Insight, error) {
	query := `SELECT ` + selectColumns + ` FROM insights WHERE id = $1`

	in := &models.Insight{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&in.ID, &in.Title, &in.Excerpt, &in.Category,
		&in.Image, &in.Author, &in.Published, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return in, nil
}

func (r *PostgresRepository) Create(ctx context.Context, in *models.Insight) (*models.Insight, error) {
	query :=
		`INSERT INTO insights (title, excerpt, category, image, author, published)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, in.Title, in.Excerpt, in.Category, in.Image, in.Author, in.Published).
		Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return in, nil
}

func (r *PostgresRepository) Update(ctx context.Context, in *models.Insight) error {
	query :=
		`UPDATE insights
		 SET title = $2, excerpt = $3, category = $4, image = $5, author = $6, published = $7,
		     updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, in.ID, in.Title, in.Excerpt, in.Category, in.Image, in.Author, in.Published)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM insights WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
