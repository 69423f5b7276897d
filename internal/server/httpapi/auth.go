package httpapi

import (
	"net/http"

	"github.com/ikhlashousing/propertycms/internal/server/validation"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgetPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type resetPasswordRequest struct {
	Email         string `json:"email" validate:"required"`
	OTP           string `json:"otp" validate:"required"`
	ResetPassword string `json:"resetpassword" validate:"required"`
}

type signInResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// decodeValid reads T and runs its validate tags, answering 400 on failure.
func decodeValid[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	req, err := JsonBody[T](w, r)
	if err != nil {
		return req, false
	}
	if err := validation.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeValid[credentialsRequest](w, r)
	if !ok {
		return
	}

	c, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, "Not found")
		return
	}

	RespondJSON(w, http.StatusOK, signInResponse{Message: "Saved in Database", ID: c.ID})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeValid[credentialsRequest](w, r)
	if !ok {
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, "Not found")
		return
	}

	RespondJSON(w, http.StatusOK, loginResponse{Message: "success", Token: token})
}

func (h *Handler) forgetPassword(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeValid[forgetPasswordRequest](w, r)
	if !ok {
		return
	}

	code, err := h.auth.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, "User not found..!")
		return
	}

	if h.opts.ExposeRecoveryCode {
		respondMessage(w, http.StatusOK, code)
		return
	}
	respondMessage(w, http.StatusOK, "OTP sent to your email")
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeValid[resetPasswordRequest](w, r)
	if !ok {
		return
	}

	err := h.auth.VerifyAndResetPassword(r.Context(), req.Email, req.OTP, req.ResetPassword)
	if err != nil {
		respondError(r.Context(), w, h.logger, err, "Invalid or expired OTP")
		return
	}

	respondMessage(w, http.StatusOK, "OTP verified successfully & password changed")
}
