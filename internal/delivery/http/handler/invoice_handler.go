package handler

import (
	"net/http"

	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
)

type InvoiceHandler struct {
	invoiceUsecase usecase.InvoiceUsecase
}

func NewInvoiceHandler(invoiceUsecase usecase.InvoiceUsecase) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUsecase: invoiceUsecase,
	}
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceUsecase.GetInvoice(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "InvoiceDto", invoice)
}

// ExportInvoice streams the rendered invoice as an attachment.
func (h *InvoiceHandler) ExportInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid invoice ID")
		return
	}

	doc, err := h.invoiceUsecase.RenderInvoice(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeAttachment(w, doc)
}
