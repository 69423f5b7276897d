package services

import (
	"context"
	"database/sql"

	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/repomanager"
	"github.com/ikhlashousing/propertycms/internal/server/validation"
)

type AchievementInput struct {
	Label  string `json:"label" validate:"required"`
	Value  int    `json:"value"`
	Suffix string `json:"suffix"`
	Icon   string `json:"icon" validate:"omitempty,oneof=Trophy Users Building2 Award TrendingUp"`
}

// AchievementPatch changes only the fields that are present.
type AchievementPatch struct {
	Label  *string `json:"label"`
	Value  *int    `json:"value"`
	Suffix *string `json:"suffix"`
	Icon   *string `json:"icon" validate:"omitempty,oneof=Trophy Users Building2 Award TrendingUp"`
}

type AchievementService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAchievementService(db *sql.DB, m repomanager.RepositoryManager) *AchievementService {
	return &AchievementService{db: db, repomanager: m}
}

func (s *AchievementService) List(ctx context.Context) ([]*models.Achievement, error) {
	list, err := s.repomanager.Achievements(s.db).List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *AchievementService) Create(ctx context.Context, in AchievementInput) (*models.Achievement, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	a, err := s.repomanager.Achievements(s.db).Create(ctx, &models.Achievement{
		Label:  in.Label,
		Value:  in.Value,
		Suffix: in.Suffix,
		Icon:   valueOr(in.Icon, models.DefaultAchievementIcon),
	})
	if err != nil {
		return nil, storeError(err)
	}
	return a, nil
}

func (s *AchievementService) Update(ctx context.Context, id string, patch AchievementPatch) (*models.Achievement, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	repo := s.repomanager.Achievements(s.db)
	a, err := repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	if patch.Label != nil && *patch.Label != "" {
		a.Label = *patch.Label
	}
	if patch.Value != nil {
		a.Value = *patch.Value
	}
	if patch.Suffix != nil {
		a.Suffix = *patch.Suffix
	}
	if patch.Icon != nil && *patch.Icon != "" {
		a.Icon = *patch.Icon
	}

	if err := repo.Update(ctx, a); err != nil {
		return nil, storeError(err)
	}
	return a, nil
}

func (s *AchievementService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.repomanager.Achievements(s.db).Delete(ctx, id); err != nil {
		return storeError(err)
	}
	return nil
}
