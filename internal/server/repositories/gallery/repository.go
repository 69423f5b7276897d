package gallery

import (
	"context"

	"github.com/ikhlashousing/propertycms/internal/server/models"
)

type Repository interface {
	// List returns gallery items newest first.
	List(ctx context.Context) ([]*models.GalleryItem, error)
	Get(ctx context.Context, id string) (*models.GalleryItem, error)
	Create(ctx context.Context, g *models.GalleryItem) (*models.GalleryItem, error)
	Update(ctx context.Context, g *models.GalleryItem) error
	Delete(ctx context.Context, id string) error
}
