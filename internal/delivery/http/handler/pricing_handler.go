package handler

import (
	"net/http"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
	"clinic-backoffice/pkg/validator"
)

type PricingHandler struct {
	pricingUsecase usecase.PricingUsecase
	validator      *validator.CustomValidator
}

func NewPricingHandler(pricingUsecase usecase.PricingUsecase, validator *validator.CustomValidator) *PricingHandler {
	return &PricingHandler{
		pricingUsecase: pricingUsecase,
		validator:      validator,
	}
}

// PriceCart prices the selected services against the active price list.
func (h *PricingHandler) PriceCart(w http.ResponseWriter, r *http.Request) {
	var req dto.CartPriceRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	cart, err := h.pricingUsecase.PriceCart(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "CartPriceDto", cart)
}

// CalculateTotals applies the patient's benefit discount to the cart.
func (h *PricingHandler) CalculateTotals(w http.ResponseWriter, r *http.Request) {
	var req dto.CartTotalsRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	totals, err := h.pricingUsecase.CalculateTotals(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "CartTotalsDto", totals)
}
