package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one synced order record. Orders are supplied already loaded and
// filtered to the drop window; the engine never fetches or mutates them.
type Order struct {
	ID                string          `json:"id"`
	Email             string          `json:"email,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	Currency          string          `json:"currency"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	TotalDiscounts    decimal.Decimal `json:"total_discounts"`
	FinancialStatus   string          `json:"financial_status"`
	FulfillmentStatus string          `json:"fulfillment_status,omitempty"`
	LineItems         []LineItem      `json:"line_items"`
	Refunds           []Refund        `json:"refunds,omitempty"`
}

// LineItem is one purchased variant within an order.
type LineItem struct {
	ProductID    string          `json:"product_id,omitempty"`
	VariantID    string          `json:"variant_id,omitempty"`
	Title        string          `json:"title"`
	VariantTitle string          `json:"variant_title,omitempty"`
	SKU          string          `json:"sku,omitempty"`
	Vendor       string          `json:"vendor,omitempty"`
	ProductType  string          `json:"product_type,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
}

// Refund groups the refund transactions issued at one point in time.
type Refund struct {
	CreatedAt    time.Time           `json:"created_at"`
	Transactions []RefundTransaction `json:"transactions"`
}

// RefundTransaction is a single refunded amount.
type RefundTransaction struct {
	Amount decimal.Decimal `json:"amount"`
}

// Window is the drop's analysis window.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the window length, never negative.
func (w Window) Duration() time.Duration {
	if w.End.Before(w.Start) {
		return 0
	}
	return w.End.Sub(w.Start)
}

// IsZero reports whether either bound is missing.
func (w Window) IsZero() bool {
	return w.Start.IsZero() || w.End.IsZero()
}
