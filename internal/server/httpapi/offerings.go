package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ikhlashousing/propertycms/internal/server/services"
)

const offeringNotFound = "Service not found"

func (h *Handler) listOfferings(w http.ResponseWriter, r *http.Request) {
	list, err := h.offerings.List(r.Context())
	if err != nil {
		respondError(r.Context(), w, h.logger, err, offeringNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) getOffering(w http.ResponseWriter, r *http.Request) {
	o, err := h.offerings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(r.Context(), w, h.logger, err, offeringNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, o)
}

func (h *Handler) createOffering(w http.ResponseWriter, r *http.Request) {
	in, err := JsonBody[services.OfferingInput](w, r)
	if err != nil {
		return
	}
	o, err := h.offerings.Create(r.Context(), in)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, offeringNotFound)
		return
	}
	RespondJSON(w, http.StatusCreated, o)
}

func (h *Handler) updateOffering(w http.ResponseWriter, r *http.Request) {
	patch, err := JsonBody[services.OfferingPatch](w, r)
	if err != nil {
		return
	}
	o, err := h.offerings.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, offeringNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, o)
}

func (h *Handler) deleteOffering(w http.ResponseWriter, r *http.Request) {
	if err := h.offerings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(r.Context(), w, h.logger, err, offeringNotFound)
		return
	}
	respondMessage(w, http.StatusOK, "Service deleted")
}
