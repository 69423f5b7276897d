package offerings

import (
	"context"

	"github.com/ikhlashousing/propertycms/internal/server/models"
)

// Repository stores the entries of the site's "services" section.
type Repository interface {
	// List returns offerings newest first.
	List(ctx context.Context) ([]*models.Offering, error)
	Get(ctx context.Context, id string) (*models.Offering, error)
	Create(ctx context.Context, o *models.Offering) (*models.Offering, error)
	Update(ctx context.Context, o *models.Offering) error
	Delete(ctx context.Context, id string) error
}
