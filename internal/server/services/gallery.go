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

type GalleryInput struct {
	Title    string `json:"title" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// GalleryPatch keeps stored values for empty fields.
type GalleryPatch struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

type GalleryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	files       uploader
}

func NewGalleryService(db *sql.DB, m repomanager.RepositoryManager, st storage.Storage, logger logging.Logger) *GalleryService {
	return &GalleryService{
		db:          db,
		repomanager: m,
		files:       uploader{storage: st, folder: common.UploadFolderGallery, logger: logger.With("module", "gallery")},
	}
}

func (s *GalleryService) List(ctx context.Context) ([]*models.GalleryItem, error) {
	list, err := s.repomanager.Gallery(s.db).List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *GalleryService) Create(ctx context.Context, in GalleryInput, image *Upload) (*models.GalleryItem, error) {
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

	item, err := s.repomanager.Gallery(s.db).Create(ctx, &models.GalleryItem{
		Title:    in.Title,
		Category: in.Category,
		Image:    path,
	})
	if err != nil {
		s.files.remove(ctx, path)
		return nil, storeError(err)
	}
	return item, nil
}

// Update applies patch. A new image replaces the stored one, whose file is
// removed once the record points at the new path.
func (s *GalleryService) Update(ctx context.Context, id string, patch GalleryPatch, image *Upload) (*models.GalleryItem, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	repo := s.repomanager.Gallery(s.db)
	item, err := repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	item.Title = valueOr(patch.Title, item.Title)
	item.Category = valueOr(patch.Category, item.Category)

	var oldImage string
	if image != nil {
		path, err := s.files.save(ctx, image)
		if err != nil {
			return nil, err
		}
		oldImage, item.Image = item.Image, path
	}

	if err := repo.Update(ctx, item); err != nil {
		if image != nil {
			s.files.remove(ctx, item.Image)
		}
		return nil, storeError(err)
	}

	s.files.remove(ctx, oldImage)
	return item, nil
}

func (s *GalleryService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	repo := s.repomanager.Gallery(s.db)
	item, err := repo.Get(ctx, id)
	if err != nil {
		return storeError(err)
	}
	if err := repo.Delete(ctx, id); err != nil {
		return storeError(err)
	}

	s.files.remove(ctx, item.Image)
	return nil
}
