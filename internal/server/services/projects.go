package services

import (
	"context"
	"database/sql"
	"slices"

	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/dbx"
	"github.com/ikhlashousing/propertycms/internal/logging"
	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/repomanager"
	"github.com/ikhlashousing/propertycms/internal/server/storage"
	"github.com/ikhlashousing/propertycms/internal/server/validation"
)

// ProjectInput holds the fields of a new project.
type ProjectInput struct {
	Name               string            `json:"name" validate:"required"`
	Location           string            `json:"location"`
	PlotType           string            `json:"plotType"`
	PricePerSquareFoot *float64          `json:"pricePerSquareFoot" validate:"required,gte=0"`
	Status             string            `json:"status"`
	Description        string            `json:"description"`
	Amenities          []string          `json:"amenities"`
	Specifications     map[string]string `json:"specifications"`
}

// ProjectPatch changes an existing project. Empty strings and nil values keep
// what is stored.
//
// ExistingImages, when non-nil, is the subset of stored images to keep; new
// Images are appended after it. DeletedImages are removed from the record
// and from storage.
type ProjectPatch struct {
	Name               string            `json:"name"`
	Location           string            `json:"location"`
	PlotType           string            `json:"plotType"`
	PricePerSquareFoot *float64          `json:"pricePerSquareFoot" validate:"omitempty,gte=0"`
	Status             string            `json:"status"`
	Description        string            `json:"description"`
	Amenities          []string          `json:"amenities"`
	Specifications     map[string]string `json:"specifications"`
	ExistingImages     []string          `json:"existingImages"`
	DeletedImages      []string          `json:"deletedImages"`
}

type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	files       uploader
	logger      logging.Logger
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager, st storage.Storage, logger logging.Logger) *ProjectService {
	logger = logger.With("module", "projects")
	return &ProjectService{
		db:          db,
		repomanager: m,
		files:       uploader{storage: st, folder: common.UploadFolderProject, logger: logger},
		logger:      logger,
	}
}

func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	list, err := s.repomanager.Projects(s.db).List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	p, err := s.repomanager.Projects(s.db).Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return p, nil
}

// Create stores the uploaded images and then the project record.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput, mainImage *Upload, images []Upload) (*models.Project, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	p := &models.Project{
		Name:               in.Name,
		Location:           in.Location,
		PlotType:           in.PlotType,
		PricePerSquareFoot: *in.PricePerSquareFoot,
		Status:             valueOr(in.Status, models.DefaultProjectStatus),
		Description:        in.Description,
		Amenities:          in.Amenities,
		Specifications:     in.Specifications,
	}

	if mainImage != nil {
		path, err := s.files.save(ctx, mainImage)
		if err != nil {
			return nil, err
		}
		p.MainImage = path
	}

	paths, err := s.files.saveAll(ctx, images)
	if err != nil {
		s.files.remove(ctx, p.MainImage)
		return nil, err
	}
	p.Images = paths

	created, err := s.repomanager.Projects(s.db).Create(ctx, p)
	if err != nil {
		s.files.remove(ctx, append([]string{p.MainImage}, paths...)...)
		return nil, storeError(err)
	}

	return created, nil
}

// Update applies patch, a replacement main image and additional images.
func (s *ProjectService) Update(ctx context.Context, id string, patch ProjectPatch, mainImage *Upload, images []Upload) (*models.Project, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	repo := s.repomanager.Projects(s.db)
	p, err := repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	p.Name = valueOr(patch.Name, p.Name)
	p.Location = valueOr(patch.Location, p.Location)
	p.PlotType = valueOr(patch.PlotType, p.PlotType)
	p.Status = valueOr(patch.Status, p.Status)
	p.Description = valueOr(patch.Description, p.Description)
	if patch.PricePerSquareFoot != nil {
		p.PricePerSquareFoot = *patch.PricePerSquareFoot
	}
	if patch.Amenities != nil {
		p.Amenities = patch.Amenities
	}
	if patch.Specifications != nil {
		p.Specifications = patch.Specifications
	}

	// Only paths already on the record may be kept or deleted.
	stored := p.Images
	kept := stored
	if patch.ExistingImages != nil {
		kept = keepKnown(patch.ExistingImages, stored)
	}
	var deleted []string
	for _, d := range patch.DeletedImages {
		if slices.Contains(stored, d) {
			deleted = append(deleted, d)
		}
	}
	kept = slices.DeleteFunc(slices.Clone(kept), func(img string) bool { return slices.Contains(deleted, img) })

	var oldMain string
	if mainImage != nil {
		path, err := s.files.save(ctx, mainImage)
		if err != nil {
			return nil, err
		}
		oldMain, p.MainImage = p.MainImage, path
	}

	added, err := s.files.saveAll(ctx, images)
	if err != nil {
		if mainImage != nil {
			s.files.remove(ctx, p.MainImage)
		}
		return nil, err
	}
	p.Images = append(kept, added...)

	if err := repo.Update(ctx, p); err != nil {
		s.files.remove(ctx, added...)
		if mainImage != nil {
			s.files.remove(ctx, p.MainImage)
		}
		return nil, storeError(err)
	}

	s.files.remove(ctx, deleted...)
	if oldMain != "" && oldMain != p.MainImage {
		s.files.remove(ctx, oldMain)
	}

	return p, nil
}

// Delete removes the project and its images.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	// Read the image list and delete the row together, so the files removed
	// are the ones the deleted row referenced.
	var p *models.Project
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)
		var err error
		if p, err = repo.Get(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return storeError(err)
	}

	s.files.remove(ctx, append([]string{p.MainImage}, p.Images...)...)
	return nil
}

func keepKnown(want, stored []string) []string {
	out := make([]string, 0, len(want))
	for _, w := range want {
		if slices.Contains(stored, w) && !slices.Contains(out, w) {
			out = append(out, w)
		}
	}
	return out
}
