package httpapi

import (
	"errors"
	"net/http"

	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/server/services"
)

type contactFormRequest struct {
	FormData *services.ContactInput `json:"formData" validate:"required"`
}

func (h *Handler) contactForm(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeValid[contactFormRequest](w, r)
	if !ok {
		return
	}

	if err := h.contact.Submit(r.Context(), *req.FormData); err != nil {
		if errors.Is(err, common.ErrorValidation) {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "contact form failed", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	respondMessage(w, http.StatusOK, "Email sent successfully!")
}
