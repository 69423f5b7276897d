package testimonials

import (
	"context"

	"github.com/ikhlashousing/propertycms/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Testimonial, error)
	Get(ctx context.Context, id string) (*models.Testimonial, error)
	Create(ctx context.Context, t *models.Testimonial) (*models.Testimonial, error)
	Update(ctx context.Context, t *models.Testimonial) error
	Delete(ctx context.Context, id string) error
}
