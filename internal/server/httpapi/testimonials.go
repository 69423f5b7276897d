package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ikhlashousing/propertycms/internal/server/services"
)

func (h *Handler) listTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := h.testimonials.List(r.Context())
	if err != nil {
		respondError(r.Context(), w, h.logger, err, notFound)
		return
	}
	RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) createTestimonial(w http.ResponseWriter, r *http.Request) {
	in, err := JsonBody[services.TestimonialInput](w, r)
	if err != nil {
		return
	}
	t, err := h.testimonials.Create(r.Context(), in)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, notFound)
		return
	}
	RespondJSON(w, http.StatusCreated, t)
}

func (h *Handler) updateTestimonial(w http.ResponseWriter, r *http.Request) {
	patch, err := JsonBody[services.TestimonialPatch](w, r)
	if err != nil {
		return
	}
	t, err := h.testimonials.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, notFound)
		return
	}
	RespondJSON(w, http.StatusOK, t)
}

func (h *Handler) deleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := h.testimonials.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(r.Context(), w, h.logger, err, notFound)
		return
	}
	respondMessage(w, http.StatusOK, "Deleted successfully")
}
