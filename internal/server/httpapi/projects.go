package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ikhlashousing/propertycms/internal/server/services"
)

const projectNotFound = "Project not found"

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	list, err := h.projects.List(r.Context())
	if err != nil {
		respondError(r.Context(), w, h.logger, err, projectNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(r.Context(), w, h.logger, err, projectNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, p)
}

// readProject collects the text fields shared by create and update.
func readProject(f *uploadForm) (services.ProjectPatch, error) {
	p := services.ProjectPatch{
		Name:        f.value("name"),
		Location:    f.value("location"),
		PlotType:    f.value("plotType"),
		Status:      f.value("status"),
		Description: f.value("description"),
	}

	var err error
	if p.PricePerSquareFoot, err = f.float("pricePerSquareFoot"); err != nil {
		return p, err
	}
	if _, err := f.jsonValue("amenities", &p.Amenities); err != nil {
		return p, err
	}
	if _, err := f.jsonValue("specifications", &p.Specifications); err != nil {
		return p, err
	}
	return p, nil
}

// readProjectImages opens mainImage and up to ten images.
func readProjectImages(f *uploadForm) (*services.Upload, []services.Upload, error) {
	mainImage, err := f.file("mainImage")
	if err != nil {
		return nil, nil, err
	}
	images, err := f.files("images", maxProjectImages)
	if err != nil {
		return nil, nil, err
	}
	return mainImage, images, nil
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseUploadForm(w, r)
	if !ok {
		return
	}
	defer f.Close()

	fields, err := readProject(f)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, projectNotFound)
		return
	}
	mainImage, images, err := readProjectImages(f)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, projectNotFound)
		return
	}

	in := services.ProjectInput{
		Name:               fields.Name,
		Location:           fields.Location,
		PlotType:           fields.PlotType,
		PricePerSquareFoot: fields.PricePerSquareFoot,
		Status:             fields.Status,
		Description:        fields.Description,
		Amenities:          fields.Amenities,
		Specifications:     fields.Specifications,
	}

	p, err := h.projects.Create(r.Context(), in, mainImage, images)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, projectNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseUploadForm(w, r)
	if !ok {
		return
	}
	defer f.Close()

	patch, err := readProject(f)
	if err == nil {
		_, err = f.jsonValue("existingImages", &patch.ExistingImages)
	}
	if err == nil {
		_, err = f.jsonValue("deletedImages", &patch.DeletedImages)
	}
	if err != nil {
		respondError(r.Context(), w, h.logger, err, projectNotFound)
		return
	}
	mainImage, images, err := readProjectImages(f)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, projectNotFound)
		return
	}

	p, err := h.projects.Update(r.Context(), chi.URLParam(r, "id"), patch, mainImage, images)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, projectNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(r.Context(), w, h.logger, err, projectNotFound)
		return
	}
	respondMessage(w, http.StatusOK, "Project deleted successfully")
}
