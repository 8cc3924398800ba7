package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Invoice backs every appointment of one booking batch.
type Invoice struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountPercent *int            `json:"discount_percent,omitempty"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	PaidDate        time.Time       `gorm:"not null" json:"paid_date"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:InvoiceID" json:"appointments,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// Discount returns the stored discount percent; a missing value means no discount.
func (i *Invoice) Discount() int {
	if i.DiscountPercent == nil {
		return 0
	}
	return *i.DiscountPercent
}

// Number is the printable invoice number, e.g. RL-2026-00042.
func (i *Invoice) Number() string {
	return fmt.Sprintf("RL-%d-%05d", i.PaidDate.Year(), i.ID)
}

// ApplyDiscount returns amount × (100 − percent) / 100 without rounding.
func ApplyDiscount(amount decimal.Decimal, percent int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(100 - percent))).Div(hundred)
}

// Quote is the priced result of a cart: the subtotal of every line, the discount applied
// to it and the resulting total.
type Quote struct {
	Subtotal        decimal.Decimal
	DiscountPercent int
	Total           decimal.Decimal
}

func NewQuote(prices []decimal.Decimal, discountPercent int) Quote {
	subtotal := decimal.Sum(decimal.Zero, prices...)
	return Quote{
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		Total:           ApplyDiscount(subtotal, discountPercent),
	}
}

// DiscountAmount is the money taken off the subtotal.
func (q Quote) DiscountAmount() decimal.Decimal {
	return q.Subtotal.Sub(q.Total)
}

// NewInvoice builds an unsaved invoice from a quote. The discount is always recorded,
// including zero.
func NewInvoice(q Quote, paidAt time.Time) *Invoice {
	discount := q.DiscountPercent
	return &Invoice{
		Subtotal:        q.Subtotal.Round(2),
		DiscountPercent: &discount,
		Total:           q.Total.Round(2),
		PaidDate:        paidAt,
	}
}
