package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
	"clinic-backoffice/pkg/validator"
)

type DocumentHandler struct {
	documentUsecase usecase.DocumentUsecase
	validator       *validator.CustomValidator
}

func NewDocumentHandler(documentUsecase usecase.DocumentUsecase, validator *validator.CustomValidator) *DocumentHandler {
	return &DocumentHandler{
		documentUsecase: documentUsecase,
		validator:       validator,
	}
}

// ExportStatements takes the statements registry query and returns every matching row as one document.
func (h *DocumentHandler) ExportStatements(w http.ResponseWriter, r *http.Request) {
	req := statementRequest(r)
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doc, err := h.documentUsecase.ExportStatements(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeAttachment(w, doc)
}

func (h *DocumentHandler) CartQuote(w http.ResponseWriter, r *http.Request) {
	var req dto.CartQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doc, err := h.documentUsecase.RenderCartQuote(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeAttachment(w, doc)
}

func writeAttachment(w http.ResponseWriter, doc *dto.RenderedDocument) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Body)
}
