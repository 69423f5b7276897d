package services

import (
	"context"
	"database/sql"

	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/repomanager"
	"github.com/ikhlashousing/propertycms/internal/server/validation"
)

type OfferingInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	IconName    string `json:"iconName"`
}

type OfferingPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IconName    *string `json:"iconName"`
}

// OfferingService manages the "services" section of the site.
type OfferingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewOfferingService(db *sql.DB, m repomanager.RepositoryManager) *OfferingService {
	return &OfferingService{db: db, repomanager: m}
}

func (s *OfferingService) List(ctx context.Context) ([]*models.Offering, error) {
	list, err := s.repomanager.Offerings(s.db).List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *OfferingService) Get(ctx context.Context, id string) (*models.Offering, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	o, err := s.repomanager.Offerings(s.db).Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return o, nil
}

func (s *OfferingService) Create(ctx context.Context, in OfferingInput) (*models.Offering, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	o, err := s.repomanager.Offerings(s.db).Create(ctx, &models.Offering{
		Title:       in.Title,
		Description: in.Description,
		IconName:    valueOr(in.IconName, models.DefaultServiceIconName),
	})
	if err != nil {
		return nil, storeError(err)
	}
	return o, nil
}

func (s *OfferingService) Update(ctx context.Context, id string, patch OfferingPatch) (*models.Offering, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	repo := s.repomanager.Offerings(s.db)
	o, err := repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	if patch.Title != nil && *patch.Title != "" {
		o.Title = *patch.Title
	}
	if patch.Description != nil && *patch.Description != "" {
		o.Description = *patch.Description
	}
	if patch.IconName != nil && *patch.IconName != "" {
		o.IconName = *patch.IconName
	}

	if err := repo.Update(ctx, o); err != nil {
		return nil, storeError(err)
	}
	return o, nil
}

func (s *OfferingService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.repomanager.Offerings(s.db).Delete(ctx, id); err != nil {
		return storeError(err)
	}
	return nil
}
