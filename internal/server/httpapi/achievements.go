package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ikhlashousing/propertycms/internal/server/services"
)

const notFound = "Not found"

func (h *Handler) listAchievements(w http.ResponseWriter, r *http.Request) {
	list, err := h.achievements.List(r.Context())
	if err != nil {
		respondError(r.Context(), w, h.logger, err, notFound)
		return
	}
	RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) createAchievement(w http.ResponseWriter, r *http.Request) {
	in, err := JsonBody[services.AchievementInput](w, r)
	if err != nil {
		return
	}
	a, err := h.achievements.Create(r.Context(), in)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, notFound)
		return
	}
	RespondJSON(w, http.StatusOK, a)
}

func (h *Handler) updateAchievement(w http.ResponseWriter, r *http.Request) {
	patch, err := JsonBody[services.AchievementPatch](w, r)
	if err != nil {
		return
	}
	a, err := h.achievements.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, notFound)
		return
	}
	RespondJSON(w, http.StatusOK, a)
}

func (h *Handler) deleteAchievement(w http.ResponseWriter, r *http.Request) {
	if err := h.achievements.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(r.Context(), w, h.logger, err, notFound)
		return
	}
	respondMessage(w, http.StatusOK, "Deleted successfully")
}
