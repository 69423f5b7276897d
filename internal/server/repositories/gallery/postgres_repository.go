package gallery

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

const selectColumns = `id, title, category, image, created_at, updated_at`

func (r *PostgresRepository) List(ctx context.Context) ([]*models.GalleryItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM gallery_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.GalleryItem{}
	for rows.Next() {
		g := &models.GalleryItem{}
		if err := rows.Scan(&g.ID, &g.Title, &g.Category, &g.Image, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.GalleryItem, error) {
	g := &models.GalleryItem{}
	err := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM gallery_items WHERE id = $1`, id).
		Scan(&g.ID, &g.Title, &g.Category, &g.Image, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) Create(ctx context.Context, g *models.GalleryItem) (*models.GalleryItem, error) {
	query :=
		`INSERT INTO gallery_items (title, category, image)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, g.Title, g.Category, g.Image).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) Update(ctx context.Context, g *models.GalleryItem) error {
	query :=
		`UPDATE gallery_items
		 SET title = $2, category = $3, image = $4, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, g.ID, g.Title, g.Category, g.Image)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
