package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ikhlashousing/propertycms/internal/server/services"
)

const insightNotFound = "Insight not found"

func (h *Handler) listInsights(w http.ResponseWriter, r *http.Request) {
	list, err := h.insights.List(r.Context())
	if err != nil {
		respondError(r.Context(), w, h.logger, err, insightNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) createInsight(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseUploadForm(w, r)
	if !ok {
		return
	}
	defer f.Close()

	published, err := f.bool("published")
	if err != nil {
		respondError(r.Context(), w, h.logger, err, insightNotFound)
		return
	}
	image, err := f.file("image")
	if err != nil {
		respondError(r.Context(), w, h.logger, err, insightNotFound)
		return
	}

	in := services.InsightInput{
		Title:     f.value("title"),
		Excerpt:   f.value("excerpt"),
		Category:  f.value("category"),
		Author:    f.value("author"),
		Published: published,
	}
	insight, err := h.insights.Create(r.Context(), in, image)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, insightNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, insight)
}

func (h *Handler) updateInsight(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseUploadForm(w, r)
	if !ok {
		return
	}
	defer f.Close()

	published, err := f.bool("published")
	if err != nil {
		respondError(r.Context(), w, h.logger, err, insightNotFound)
		return
	}
	image, err := f.file("image")
	if err != nil {
		respondError(r.Context(), w, h.logger, err, insightNotFound)
		return
	}

	patch := services.InsightPatch{
		Title:     f.value("title"),
		Excerpt:   f.value("excerpt"),
		Category:  f.value("category"),
		Author:    f.value("author"),
		Published: published,
	}
	insight, err := h.insights.Update(r.Context(), chi.URLParam(r, "id"), patch, image)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, insightNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, insight)
}

func (h *Handler) deleteInsight(w http.ResponseWriter, r *http.Request) {
	if err := h.insights.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(r.Context(), w, h.logger, err, insightNotFound)
		return
	}
	respondMessage(w, http.StatusOK, "Insight deleted successfully")
}
