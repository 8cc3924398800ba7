package handler

import (
	"net/http"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
	"clinic-backoffice/pkg/validator"
)

type PriceListHandler struct {
	priceListUsecase usecase.PriceListUsecase
	validator        *validator.CustomValidator
}

func NewPriceListHandler(priceListUsecase usecase.PriceListUsecase, validator *validator.CustomValidator) *PriceListHandler {
	return &PriceListHandler{
		priceListUsecase: priceListUsecase,
		validator:        validator,
	}
}

// ListPriceLists handles GET /owner/price-lists?p=&q=&a=
// a=true lists archived price lists instead of live ones.
func (h *PriceListHandler) ListPriceLists(w http.ResponseWriter, r *http.Request) {
	page := pagination(r)

	priceLists, total, err := h.priceListUsecase.ListPriceLists(r.Context(), page, queryBool(r, queryArchived))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "PriceListPageDto", response.NewPage(page.Page, page.PerPage, total, priceLists))
}

func (h *PriceListHandler) CreatePriceList(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePriceListRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	priceList, err := h.priceListUsecase.CreatePriceList(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "PriceListDto", priceList)
}

func (h *PriceListHandler) ArchivePriceList(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid price list ID")
		return
	}

	var req dto.ArchivePriceListRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	priceList, err := h.priceListUsecase.ArchivePriceList(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "PriceListDto", priceList)
}

func (h *PriceListHandler) ActivatePriceList(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid price list ID")
		return
	}

	priceList, err := h.priceListUsecase.ActivatePriceList(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "PriceListDto", priceList)
}

func (h *PriceListHandler) GetActiveEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.priceListUsecase.GetActiveEntries(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "PriceListEntryListDto", entries)
}
