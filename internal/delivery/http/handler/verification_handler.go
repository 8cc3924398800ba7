package handler

import (
	"net/http"

	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
)

type VerificationHandler struct {
	verificationUsecase usecase.VerificationUsecase
}

func NewVerificationHandler(verificationUsecase usecase.VerificationUsecase) *VerificationHandler {
	return &VerificationHandler{
		verificationUsecase: verificationUsecase,
	}
}

func (h *VerificationHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	if err := h.verificationUsecase.SendCode(r.Context(), r.URL.Query().Get("email")); err != nil {
		response.FromError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Verification code sent")
}

func (h *VerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.verificationUsecase.Verify(r.Context(), query.Get("email"), query.Get("code"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "VerificationDto", result)
}

func (h *VerificationHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.verificationUsecase.Remove(r.Context(), r.URL.Query().Get("email")); err != nil {
		response.FromError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Verification code removed")
}
