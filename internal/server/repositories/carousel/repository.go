package carousel

import (
	"context"

	"github.com/ikhlashousing/propertycms/internal/server/models"
)

type Repository interface {
	// List returns slides newest first.
	List(ctx context.Context) ([]*models.CarouselSlide, error)
	Get(ctx context.Context, id string) (*models.CarouselSlide, error)
	Create(ctx context.Context, s *models.CarouselSlide) (*models.CarouselSlide, error)
	Delete(ctx context.Context, id string) error
}
