package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShopOrderLineItem captures the snapshot of each item within a synced order.
// Product and variant ids may be absent when the platform no longer knows the
// product (deleted listings, custom line items).
type ShopOrderLineItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID    *string         `gorm:"column:product_id"`
	VariantID    *string         `gorm:"column:variant_id"`
	Title        string          `gorm:"column:title;not null"`
	VariantTitle string          `gorm:"column:variant_title"`
	SKU          string          `gorm:"column:sku"`
	Vendor       string          `gorm:"column:vendor"`
	ProductType  string          `gorm:"column:product_type"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity     int             `gorm:"column:quantity;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (ShopOrderLineItem) TableName() string { return "shop_order_line_items" }
