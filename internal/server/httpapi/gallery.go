package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ikhlashousing/propertycms/internal/server/services"
)

const galleryNotFound = "Gallery item not found"

func (h *Handler) listGallery(w http.ResponseWriter, r *http.Request) {
	list, err := h.gallery.List(r.Context())
	if err != nil {
		respondError(r.Context(), w, h.logger, err, galleryNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) createGalleryItem(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseUploadForm(w, r)
	if !ok {
		return
	}
	defer f.Close()

	image, err := f.file("image")
	if err != nil {
		respondError(r.Context(), w, h.logger, err, galleryNotFound)
		return
	}

	in := services.GalleryInput{Title: f.value("title"), Category: f.value("category")}
	item, err := h.gallery.Create(r.Context(), in, image)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, galleryNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) updateGalleryItem(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseUploadForm(w, r)
	if !ok {
		return
	}
	defer f.Close()

	image, err := f.file("image")
	if err != nil {
		respondError(r.Context(), w, h.logger, err, galleryNotFound)
		return
	}

	patch := services.GalleryPatch{Title: f.value("title"), Category: f.value("category")}
	item, err := h.gallery.Update(r.Context(), chi.URLParam(r, "id"), patch, image)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, galleryNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.gallery.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(r.Context(), w, h.logger, err, galleryNotFound)
		return
	}
	respondMessage(w, http.StatusOK, "Deleted successfully")
}
