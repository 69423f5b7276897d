package insights

import (
	"context"

	"github.com/ikhlashousing/propertycms/internal/server/models"
)

type Repository interface {
	// List returns insights newest first.
	List(ctx context.Context) ([]*models.Insight, error)
	Get(ctx context.Context, id string) (*models.Insight, error)
	Create(ctx context.Context, in *models.Insight) (*models.Insight, error)
	Update(ctx context.Context, in *models.Insight) error
	Delete(ctx context.Context, id string) error
}
