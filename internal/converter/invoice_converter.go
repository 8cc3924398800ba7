package converter

import (
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
)

func InvoiceDocumentToResponse(id int64, doc entity.InvoiceDocument) *dto.InvoiceResponse {
	lines := make([]dto.InvoiceLineResponse, len(doc.Lines))
	for i, l := range doc.Lines {
		var date string
		if !l.Date.IsZero() {
			date = l.Date.Format(entity.DateLayout)
		}
		lines[i] = dto.InvoiceLineResponse{Date: date, Service: l.Service, Price: Money(l.Price)}
	}

	return &dto.InvoiceResponse{
		ID:              id,
		Number:          doc.Number,
		PaidDate:        doc.PaidDate.In(entity.ClinicLocation).Format(entity.DateLayout),
		PatientName:     doc.PatientName,
		Lines:           lines,
		Subtotal:        Money(doc.Subtotal),
		DiscountPercent: doc.DiscountPercent,
		DiscountAmount:  Money(doc.DiscountAmount),
		Total:           Money(doc.Total),
	}
}
