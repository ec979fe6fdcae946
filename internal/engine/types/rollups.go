package types

import "github.com/shopspring/decimal"

// ProductSummary folds all observed variants of one product. AllocatedStock
// is the sum of observed variant baselines, not the product's full catalog
// variant count.
type ProductSummary struct {
	ProductID      string          `json:"product_id"`
	Title          string          `json:"title"`
	Vendor         string          `json:"vendor"`
	Category       string          `json:"category"`
	ProductType    string          `json:"product_type,omitempty"`
	VariantCount   int             `json:"variant_count"`
	UnitsSold      int             `json:"units_sold"`
	AllocatedStock int             `json:"allocated_stock"`
	Remaining      int             `json:"remaining"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenuePercent float64         `json:"revenue_percent"`
	SellThrough    float64         `json:"sell_through_rate"`
}

// VendorSummary aggregates revenue by line-item vendor.
type VendorSummary struct {
	Vendor         string          `json:"vendor"`
	UnitsSold      int             `json:"units_sold"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenuePercent float64         `json:"revenue_percent"`
}

// CategorySummary aggregates revenue by line-item product type.
type CategorySummary struct {
	Category       string          `json:"category"`
	UnitsSold      int             `json:"units_sold"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenuePercent float64         `json:"revenue_percent"`
}

// SalesMetrics are the order-level money and pacing aggregates for a drop.
type SalesMetrics struct {
	TotalOrders       int             `json:"total_orders"`
	GrossSales        decimal.Decimal `json:"gross_sales"`
	Discounts         decimal.Decimal `json:"discounts"`
	Refunds           decimal.Decimal `json:"refunds"`
	NetSales          decimal.Decimal `json:"net_sales"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	FulfillmentCounts map[string]int  `json:"fulfillment_counts"`
	PeakHour          int             `json:"peak_hour"`
	OrdersPerHour     float64         `json:"orders_per_hour"`
	OrdersPerDay      float64         `json:"orders_per_day"`
}

// CustomerMetrics classify buyers within the analyzed order set only; a
// customer is "new" on their first in-window order regardless of platform
// history.
type CustomerMetrics struct {
	UniqueCustomers    int `json:"unique_customers"`
	NewCustomers       int `json:"new_customers"`
	ReturningCustomers int `json:"returning_customers"`
}

// Aggregates is the rollup output consumed by the scorer and the classifier.
type Aggregates struct {
	Variants   []VariantSellThrough `json:"variants"`
	Products   []ProductSummary     `json:"products"`
	Vendors    []VendorSummary      `json:"vendors"`
	Categories []CategorySummary    `json:"categories"`
	Sales      SalesMetrics         `json:"sales"`
	Customers  CustomerMetrics      `json:"customers"`
}
