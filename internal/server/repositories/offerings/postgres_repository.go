package offerings

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

const selectColumns = `id, title, description, icon_name, created_at, updated_at`

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Offering, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM offerings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Offering{}
	for rows.Next() {
		o := &models.Offering{}
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.IconName, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Offering, error) {
	o := &models.Offering{}
	err := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM offerings WHERE id = $1`, id).
		Scan(&o.ID, &o.Title, &o.Description, &o.IconName, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) Create(ctx context.Context, o *models.Offering) (*models.Offering, error) {
	query :=
		`INSERT INTO offerings (title, description, icon_name)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, o.Title, o.Description, o.IconName).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) Update(ctx context.Context, o *models.Offering) error {
	query :=
		`UPDATE offerings
		 SET title = $2, description = $3, icon_name = $4, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, o.ID, o.Title, o.Description, o.IconName)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM offerings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
