package achievements

import (
	"context"

	"github.com/ikhlashousing/propertycms/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Achievement, error)
	Get(ctx context.Context, id string) (*models.Achievement, error)
	Create(ctx context.Context, a *models.Achievement) (*models.Achievement, error)
	Update(ctx context.Context, a *models.Achievement) error
	Delete(ctx context.Context, id string) error
}
