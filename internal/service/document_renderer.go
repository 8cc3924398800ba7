package service

import (
	"html/template"
	"io"
	"time"

	"clinic-backoffice/internal/domain/entity"

	"github.com/shopspring/decimal"
)

var documentFuncs = template.FuncMap{
	"money": func(v decimal.Decimal) string { return v.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("02.01.2006") },
	"datetime": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("02.01.2006 15:04")
	},
	"status": statusLabel,
}

var invoiceTemplate = template.Must(template.New("invoice").Funcs(documentFuncs).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Invoice {{.Number}}</title></head>
<body>
<h1>Invoice {{.Number}}</h1>
{{- if .PatientName}}
<p>Patient: {{.PatientName}}</p>
{{- end}}
{{- if not .PaidDate.IsZero}}
<p>Paid: {{date .PaidDate}}</p>
{{- else if not .IssuedAt.IsZero}}
<p>Issued: {{date .IssuedAt}}</p>
{{- end}}
<table>
<tr><th>Date</th><th>Service</th><th>Price</th></tr>
{{- range .Lines}}
<tr><td>{{if not .Date.IsZero}}{{date .Date}}{{end}}</td><td>{{.Service}}</td><td>{{money .Price}}</td></tr>
{{- end}}
</table>
<p>Subtotal: {{money .Subtotal}}</p>
{{- if .DiscountPercent}}
<p>Discount ({{.DiscountPercent}}%): {{money .DiscountAmount}}</p>
{{- end}}
<p><strong>Total: {{money .Total}}</strong></p>
</body>
</html>
`))

var statementTemplate = template.Must(template.New("statement").Funcs(documentFuncs).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Statement</title></head>
<body>
<h1>Statement</h1>
<p>Generated: {{date .GeneratedAt}}</p>
<table>
<tr><th>#</th><th>Service</th><th>Patient</th><th>Total</th><th>Appointment</th><th>Ended</th><th>Status</th></tr>
{{- range .Lines}}
<tr><td>{{.ID}}</td><td>{{.Service}}</td><td>{{.PatientName}}</td><td>{{money .Total}}</td><td>{{datetime .AppointmentDate}}</td><td>{{datetime .EndDate}}</td><td>{{status .Status}}</td></tr>
{{- end}}
</table>
<p><strong>Total: {{money .Total}}</strong></p>
</body>
</html>
`))

func statusLabel(s entity.AppointmentStatus) string {
	switch s {
	case entity.AppointmentStatusCompleted:
		return "Completed"
	case entity.AppointmentStatusCanceled:
		return "Canceled"
	}
	return "Planned"
}

// DocumentRenderer turns computed documents into downloadable files.
type DocumentRenderer interface {
	RenderInvoice(w io.Writer, doc entity.InvoiceDocument) error
	RenderStatement(w io.Writer, doc entity.StatementDocument) error
	ContentType() string
	Extension() string
}

type htmlDocumentRenderer struct{}

func NewHTMLDocumentRenderer() DocumentRenderer {
	return htmlDocumentRenderer{}
}

func (htmlDocumentRenderer) RenderInvoice(w io.Writer, doc entity.InvoiceDocument) error {
	return invoiceTemplate.Execute(w, doc)
}

func (htmlDocumentRenderer) RenderStatement(w io.Writer, doc entity.StatementDocument) error {
	return statementTemplate.Execute(w, doc)
}

func (htmlDocumentRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (htmlDocumentRenderer) Extension() string {
	return ".html"
}
