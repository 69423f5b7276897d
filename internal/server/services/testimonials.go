package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/repomanager"
	"github.com/ikhlashousing/propertycms/internal/server/validation"
)

type TestimonialInput struct {
	Name     string `json:"name" validate:"required"`
	Quote    string `json:"quote" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Property string `json:"property"`
	Verified bool   `json:"verified"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type TestimonialPatch struct {
	Name     *string `json:"name"`
	Quote    *string `json:"quote"`
	Rating   *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Property *string `json:"property"`
	Verified *bool   `json:"verified"`
	Date     *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type TestimonialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTestimonialService(db *sql.DB, m repomanager.RepositoryManager) *TestimonialService {
	return &TestimonialService{db: db, repomanager: m, now: time.Now}
}

func (s *TestimonialService) List(ctx context.Context) ([]*models.Testimonial, error) {
	list, err := s.repomanager.Testimonials(s.db).List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *TestimonialService) Create(ctx context.Context, in TestimonialInput) (*models.Testimonial, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	t, err := s.repomanager.Testimonials(s.db).Create(ctx, &models.Testimonial{
		Name:     in.Name,
		Quote:    in.Quote,
		Rating:   in.Rating,
		Property: valueOr(in.Property, models.DefaultTestimonialProperty),
		Verified: in.Verified,
		Date:     valueOr(in.Date, s.now().Format(models.TestimonialDateLayout)),
	})
	if err != nil {
		return nil, storeError(err)
	}
	return t, nil
}

func (s *TestimonialService) Update(ctx context.Context, id string, patch TestimonialPatch) (*models.Testimonial, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	repo := s.repomanager.Testimonials(s.db)
	t, err := repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	if patch.Name != nil && *patch.Name != "" {
		t.Name = *patch.Name
	}
	if patch.Quote != nil && *patch.Quote != "" {
		t.Quote = *patch.Quote
	}
	if patch.Rating != nil {
		t.Rating = *patch.Rating
	}
	if patch.Property != nil {
		t.Property = *patch.Property
	}
	if patch.Verified != nil {
		t.Verified = *patch.Verified
	}
	if patch.Date != nil && *patch.Date != "" {
		t.Date = *patch.Date
	}

	if err := repo.Update(ctx, t); err != nil {
		return nil, storeError(err)
	}
	return t, nil
}

func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.repomanager.Testimonials(s.db).Delete(ctx, id); err != nil {
		return storeError(err)
	}
	return nil
}
