package services

import (
	"context"
	"database/sql"

	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/logging"
	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/repomanager"
	"github.com/ikhlashousing/propertycms/internal/server/storage"
	"github.com/ikhlashousing/propertycms/internal/server/validation"
)

type InsightInput struct {
	Title     string `json:"title" validate:"required"`
	Excerpt   string `json:"excerpt" validate:"required"`
	Category  string `json:"category"`
	Author    string `json:"author"`
	Published *bool  `json:"published"`
}

// InsightPatch keeps stored values for empty fields.
type InsightPatch struct {
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Category  string `json:"category"`
	Author    string `json:"author"`
	Published *bool  `json:"published"`
}

type InsightService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	files       uploader
}

func NewInsightService(db *sql.DB, m repomanager.RepositoryManager, st storage.Storage, logger logging.Logger) *InsightService {
	return &InsightService{
		db:          db,
		repomanager: m,
		files:       uploader{storage: st, folder: common.UploadFolderInsight, logger: logger.With("module", "insights")},
	}
}

func (s *InsightService) List(ctx context.Context) ([]*models.Insight, error) {
	list, err := s.repomanager.Insights(s.db).List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *InsightService) Create(ctx context.Context, in InsightInput, image *Upload) (*models.Insight, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	insight := &models.Insight{
		Title:     in.Title,
		Excerpt:   in.Excerpt,
		Category:  valueOr(in.Category, models.DefaultInsightCategory),
		Author:    valueOr(in.Author, models.DefaultInsightAuthor),
		Published: in.Published == nil || *in.Published,
	}

	if image != nil {
		path, err := s.files.save(ctx, image)
		if err != nil {
			return nil, err
		}
		insight.Image = path
	}

	created, err := s.repomanager.Insights(s.db).Create(ctx, insight)
	if err != nil {
		s.files.remove(ctx, insight.Image)
		return nil, storeError(err)
	}
	return created, nil
}

func (s *InsightService) Update(ctx context.Context, id string, patch InsightPatch, image *Upload) (*models.Insight, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	repo := s.repomanager.Insights(s.db)
	insight, err := repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	insight.Title = valueOr(patch.Title, insight.Title)
	insight.Excerpt = valueOr(patch.Excerpt, insight.Excerpt)
	insight.Category = valueOr(patch.Category, insight.Category)
	insight.Author = valueOr(patch.Author, insight.Author)
	if patch.Published != nil {
		insight.Published = *patch.Published
	}

	var oldImage string
	if image != nil {
		path, err := s.files.save(ctx, image)
		if err != nil {
			return nil, err
		}
		oldImage, insight.Image = insight.Image, path
	}

	if err := repo.Update(ctx, insight); err != nil {
		if image != nil {
			s.files.remove(ctx, insight.Image)
		}
		return nil, storeError(err)
	}

	s.files.remove(ctx, oldImage)
	return insight, nil
}

func (s *InsightService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	repo := s.repomanager.Insights(s.db)
	insight, err := repo.Get(ctx, id)
	if err != nil {
		return storeError(err)
	}
	if err := repo.Delete(ctx, id); err != nil {
		return storeError(err)
	}

	s.files.remove(ctx, insight.Image)
	return nil
}
