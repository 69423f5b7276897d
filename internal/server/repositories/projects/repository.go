package projects

import (
	"context"

	"github.com/ikhlashousing/propertycms/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id string) error
}
