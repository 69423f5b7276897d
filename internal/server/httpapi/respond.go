package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/logging"
)

// maxJSONBodyBytes caps JSON request bodies; uploads have their own limit.
const maxJSONBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, messageResponse{Message: msg})
}

// JsonBody decodes the request body into T, answering 400 (or 413 for an
// oversized body) itself on failure.
func JsonBody[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return v, err
		}
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return v, err
	}
	return v, nil
}

// respondError maps service errors to a status and a message that never
// carries driver or mail-server text. notFound is the message for
// common.ErrorNotFound.
func respondError(ctx context.Context, w http.ResponseWriter, logger logging.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		respondMessage(w, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorDuplicateEmail):
		respondMessage(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, common.ErrorInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, common.ErrorInvalidOrExpiredCode):
		respondMessage(w, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, common.ErrorUnauthorized):
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
	default:
		logger.Error(ctx, "request failed", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
