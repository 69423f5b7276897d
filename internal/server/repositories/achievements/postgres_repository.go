package achievements

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

const selectColumns = `id, label, value, suffix, icon, created_at, updated_at`

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM achievements ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Achievement{}
	for rows.Next() {
		a := &models.Achievement{}
		if err := rows.Scan(&a.ID, &a.Label, &a.Value, &a.Suffix, &a.Icon, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Achievement, error) {
	a := &models.Achievement{}
	err := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM achievements WHERE id = $1`, id).
		Scan(&a.ID, &a.Label, &a.Value, &a.Suffix, &a.Icon, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Achievement) (*models.Achievement, error) {
	query :=
		`INSERT INTO achievements (label, value, suffix, icon)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, a.Label, a.Value, a.Suffix, a.Icon).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a *models.Achievement) error {
	query :=
		`UPDATE achievements
		 SET label = $2, value = $3, suffix = $4, icon = $5, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, a.ID, a.Label, a.Value, a.Suffix, a.Icon)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM achievements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
