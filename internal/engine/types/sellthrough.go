package types

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VariantKey identifies a variant across orders. Variant-keyed items use
// (ProductID, VariantID); items the platform no longer resolves fall back to
// (Title, VariantTitle, SKU). Value equality makes it usable as a map key.
type VariantKey struct {
	ProductID    string
	VariantID    string
	Title        string
	VariantTitle string
	SKU          string
}

// KeyForItem derives the tracking key for a line item. The second return is
// false when the item cannot be attributed to any variant and must be skipped.
func KeyForItem(item LineItem) (VariantKey, bool) {
	if item.ProductID != "" && item.VariantID != "" {
		return VariantKey{ProductID: item.ProductID, VariantID: item.VariantID}, true
	}
	if item.Title == "" && item.VariantTitle == "" && item.SKU == "" {
		return VariantKey{}, false
	}
	return VariantKey{Title: item.Title, VariantTitle: item.VariantTitle, SKU: item.SKU}, true
}

// VariantSellThrough is the running sell-through state for one variant.
// SoldOutAt is set exactly once, at the first order whose processing pushes
// cumulative units across the baseline, and is never cleared afterwards.
type VariantSellThrough struct {
	ProductID    string          `json:"product_id,omitempty"`
	VariantID    string          `json:"variant_id,omitempty"`
	Title        string          `json:"title"`
	VariantTitle string          `json:"variant_title,omitempty"`
	SKU          string          `json:"sku,omitempty"`
	Vendor       string          `json:"vendor,omitempty"`
	ProductType  string          `json:"product_type,omitempty"`
	Color        string          `json:"color,omitempty"`
	Size         string          `json:"size,omitempty"`
	Baseline     int             `json:"baseline"`
	UnitsSold    int             `json:"units_sold"`
	Remaining    int             `json:"remaining"`
	Revenue      decimal.Decimal `json:"revenue"`
	SellThrough  float64         `json:"sell_through_rate"`
	RevenueShare float64         `json:"revenue_share"`
	SoldOutAt    *time.Time      `json:"sold_out_at,omitempty"`
}

// Key reconstructs the tracking key for this variant.
func (v VariantSellThrough) Key() VariantKey {
	if v.ProductID != "" && v.VariantID != "" {
		return VariantKey{ProductID: v.ProductID, VariantID: v.VariantID}
	}
	return VariantKey{Title: v.Title, VariantTitle: v.VariantTitle, SKU: v.SKU}
}

// SplitVariantTitle parses a "Color / Size" display name. Unparseable names
// yield empty strings.
func SplitVariantTitle(name string) (color, size string) {
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, "/", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}
