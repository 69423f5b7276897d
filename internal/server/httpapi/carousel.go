package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ikhlashousing/propertycms/internal/server/services"
)

const slideNotFound = "Image not found"

func (h *Handler) listCarousel(w http.ResponseWriter, r *http.Request) {
	list, err := h.carousel.List(r.Context())
	if err != nil {
		respondError(r.Context(), w, h.logger, err, slideNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) createCarouselSlide(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseUploadForm(w, r)
	if !ok {
		return
	}
	defer f.Close()

	image, err := f.file("image")
	if err != nil {
		respondError(r.Context(), w, h.logger, err, slideNotFound)
		return
	}

	in := services.CarouselInput{Title: f.value("title"), DeviceType: f.value("deviceType")}
	slide, err := h.carousel.Create(r.Context(), in, image)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, slideNotFound)
		return
	}
	RespondJSON(w, http.StatusCreated, slide)
}

func (h *Handler) deleteCarouselSlide(w http.ResponseWriter, r *http.Request) {
	if err := h.carousel.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(r.Context(), w, h.logger, err, slideNotFound)
		return
	}
	respondMessage(w, http.StatusOK, "Deleted successfully")
}
