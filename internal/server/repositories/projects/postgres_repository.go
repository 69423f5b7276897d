package projects

import (
	"context"
	"database/sql"
	"encoding/json"
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

const selectColumns = `id, name, location, plot_type, price_per_square_foot, status, description,
		 main_image, images, amenities, specifications, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*models.Project, error) {
	p := &models.Project{}
	var images, amenities, specs []byte

	if err := s.Scan(&p.ID, &p.Name, &p.Location, &p.PlotType, &p.PricePerSquareFoot, &p.Status,
		&p.Description, &p.MainImage, &images, &amenities, &specs, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	if err := unmarshalIfSet(images, &p.Images); err != nil {
		return nil, fmt.Errorf("images column: %w", err)
	}
	if err := unmarshalIfSet(amenities, &p.Amenities); err != nil {
		return nil, fmt.Errorf("amenities column: %w", err)
	}
	if err := unmarshalIfSet(specs, &p.Specifications); err != nil {
		return nil, fmt.Errorf("specifications column: %w", err)
	}

	return p, nil
}

func unmarshalIfSet(b []byte, v any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, v)
}

// jsonColumns encodes the JSONB columns; nil collections are stored empty.
func jsonColumns(p *models.Project) (images, amenities, specs string, err error) {
	enc := func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	}

	imgs, ams, sp := p.Images, p.Amenities, p.Specifications
	if imgs == nil {
		imgs = []string{}
	}
	if ams == nil {
		ams = []string{}
	}
	if sp == nil {
		sp = map[string]string{}
	}

	if images, err = enc(imgs); err != nil {
		return
	}
	if amenities, err = enc(ams); err != nil {
		return
	}
	specs, err = enc(sp)
	return
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Project, error) {
	query := `SELECT ` + selectColumns + ` FROM projects
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + selectColumns + ` FROM projects
		 WHERE id = $1
		 `

	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	images, amenities, specs, err := jsonColumns(p)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO projects (name, location, plot_type, price_per_square_foot, status, description,
		     main_image, images, amenities, specifications)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query, p.Name, p.Location, p.PlotType, p.PricePerSquareFoot, p.Status,
		p.Description, p.MainImage, images, amenities, specs).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Project) error {
	images, amenities, specs, err := jsonColumns(p)
	if err != nil {
		return err
	}

	query :=
		`UPDATE projects
		 SET name = $2, location = $3, plot_type = $4, price_per_square_foot = $5, status = $6,
		     description = $7, main_image = $8, images = $9, amenities = $10, specifications = $11,
		     updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Location, p.PlotType, p.PricePerSquareFoot,
		p.Status, p.Description, p.MainImage, images, amenities, specs)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
