package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/logging"
	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/repomanager"
	"github.com/ikhlashousing/propertycms/internal/server/storage"
	"github.com/ikhlashousing/propertycms/internal/server/validation"
)

type CarouselInput struct {
	Title      string `json:"title"`
	DeviceType string `json:"deviceType" validate:"required,oneof=mobile desktop"`
}

type CarouselService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	files       uploader
}

func NewCarouselService(db *sql.DB, m repomanager.RepositoryManager, st storage.Storage, logger logging.Logger) *CarouselService {
	return &CarouselService{
		db:          db,
		repomanager: m,
		files:       uploader{storage: st, folder: common.UploadFolderCarousel, logger: logger.With("module", "carousel")},
	}
}

func (s *CarouselService) List(ctx context.Context) ([]*models.CarouselSlide, error) {
	list, err := s.repomanager.Carousel(s.db).List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *CarouselService) Create(ctx context.Context, in CarouselInput, image *Upload) (*models.CarouselSlide, error) {
	if image == nil {
		return nil, fmt.Errorf("%w: image is required", common.ErrorValidation)
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	path, err := s.files.save(ctx, image)
	if err != nil {
		return nil, err
	}

	slide, err := s.repomanager.Carousel(s.db).Create(ctx, &models.CarouselSlide{
		Title:      in.Title,
		Image:      path,
		DeviceType: in.DeviceType,
	})
	if err != nil {
		s.files.remove(ctx, path)
		return nil, storeError(err)
	}
	return slide, nil
}

// Delete removes the slide and its image file.
func (s *CarouselService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	repo := s.repomanager.Carousel(s.db)
	slide, err := repo.Get(ctx, id)
	if err != nil {
		return storeError(err)
	}
	if err := repo.Delete(ctx, id); err != nil {
		return storeError(err)
	}

	s.files.remove(ctx, slide.Image)
	return nil
}
