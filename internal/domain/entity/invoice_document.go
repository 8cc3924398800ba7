package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine is one printed row of an invoice.
type InvoiceLine struct {
	Date    time.Time
	Service string
	Price   decimal.Decimal
}

// InvoiceDocument holds the numbers printed on an invoice. Rendering is left to a renderer.
type InvoiceDocument struct {
	Number   string
	PaidDate time.Time
	// IssuedAt is set instead of PaidDate on quotes printed before booking.
	IssuedAt        time.Time
	PatientName     string
	Lines           []InvoiceLine
	Subtotal        decimal.Decimal
	DiscountPercent int
	DiscountAmount  decimal.Decimal
	Total           decimal.Decimal
}

// Document computes the printable invoice from its appointments. Line prices are the
// pinned catalog prices; the discount is applied to their sum.
func (i *Invoice) Document() InvoiceDocument {
	doc := InvoiceDocument{
		Number:          i.Number(),
		PaidDate:        i.PaidDate,
		DiscountPercent: i.Discount(),
		Lines:           make([]InvoiceLine, 0, len(i.Appointments)),
	}

	prices := make([]decimal.Decimal, 0, len(i.Appointments))
	for _, a := range i.Appointments {
		if doc.PatientName == "" && a.Patient != nil {
			doc.PatientName = a.Patient.FullName()
		}
		line := InvoiceLine{Service: a.ServiceName(), Price: a.Price()}
		if a.AppointmentDate != nil {
			line.Date = a.AppointmentDate.In(ClinicLocation)
		}
		doc.Lines = append(doc.Lines, line)
		prices = append(prices, a.Price())
	}

	q := NewQuote(prices, doc.DiscountPercent)
	doc.Subtotal = q.Subtotal.Round(2)
	doc.Total = q.Total.Round(2)
	doc.DiscountAmount = doc.Subtotal.Sub(doc.Total)
	return doc
}

// CartQuoteNumber numbers a quote printed before booking.
func CartQuoteNumber(at time.Time) string {
	return "DYN-" + at.In(ClinicLocation).Format("20060102-150405")
}

// NewCartQuoteDocument prints a priced cart that has not been booked yet.
func NewCartQuoteDocument(lines []InvoiceLine, discountPercent int, issuedAt time.Time) InvoiceDocument {
	prices := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		prices[i] = l.Price
	}

	q := NewQuote(prices, discountPercent)
	doc := InvoiceDocument{
		Number:          CartQuoteNumber(issuedAt),
		IssuedAt:        issuedAt.In(ClinicLocation),
		Lines:           lines,
		DiscountPercent: discountPercent,
		Subtotal:        q.Subtotal.Round(2),
		Total:           q.Total.Round(2),
	}
	doc.DiscountAmount = doc.Subtotal.Sub(doc.Total)
	return doc
}
