package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShopOrder mirrors an order synced from the commerce platform. Rows are
// written by an out-of-process sync job; this service only reads them.
type ShopOrder struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID            string              `gorm:"column:shop_id;not null;index"`
	ExternalID        string              `gorm:"column:external_id;not null;uniqueIndex"`
	Email             *string             `gorm:"column:email"`
	Currency          string              `gorm:"column:currency;not null;default:'USD'"`
	TotalPrice        decimal.Decimal     `gorm:"column:total_price;type:numeric(12,2);not null"`
	TotalDiscounts    decimal.Decimal     `gorm:"column:total_discounts;type:numeric(12,2);not null;default:0"`
	FinancialStatus   string              `gorm:"column:financial_status;not null;default:'paid'"`
	FulfillmentStatus *string             `gorm:"column:fulfillment_status"`
	PlacedAt          time.Time           `gorm:"column:placed_at;not null;index"`
	LineItems         []ShopOrderLineItem `gorm:"foreignKey:OrderID"`
	Refunds           []OrderRefund       `gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (ShopOrder) TableName() string { return "shop_orders" }
