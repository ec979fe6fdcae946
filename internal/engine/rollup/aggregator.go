package rollup

import (
	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
	"github.com/shopspring/decimal"
)

// UnknownSegment labels line items whose vendor or product type is absent.
const UnknownSegment = "Unknown"

var hundred = decimal.NewFromInt(100)

// Aggregator folds variant sell-through records and the raw order list into
// product/vendor/category rollups plus order-level metrics.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes every rollup for one drop. The window is only used for
// order-velocity math; a zero-duration window degrades velocity to 0.
func (a *Aggregator) Aggregate(variants []types.VariantSellThrough, orders []types.Order, window types.Window) types.Aggregates {
	return types.Aggregates{
		Variants:   variants,
		Products:   a.productRollup(variants),
		Vendors:    a.vendorRollup(variants),
		Categories: a.categoryRollup(variants),
		Sales:      a.salesMetrics(orders, window),
		Customers:  a.customerMetrics(orders),
	}
}

type productKey struct {
	id    string
	title string
}

func (a *Aggregator) productRollup(variants []types.VariantSellThrough) []types.ProductSummary {
	byProduct := make(map[productKey]*types.ProductSummary)
	var order []productKey

	for _, v := range variants {
		key := productKey{id: v.ProductID}
		if key.id == "" {
			key.title = v.Title
		}

		summary, ok := byProduct[key]
		if !ok {
			summary = &types.ProductSummary{
				ProductID:   v.ProductID,
				Title:       v.Title,
				Vendor:      segmentOrUnknown(v.Vendor),
				Category:    segmentOrUnknown(v.ProductType),
				ProductType: v.ProductType,
				Revenue:     decimal.Zero,
			}
			byProduct[key] = summary
			order = append(order, key)
		}

		summary.VariantCount++
		summary.UnitsSold += v.UnitsSold
		summary.AllocatedStock += v.Baseline
		summary.Revenue = summary.Revenue.Add(v.Revenue)
	}

	total := decimal.Zero
	for _, key := range order {
		total = total.Add(byProduct[key].Revenue)
	}

	out := make([]types.ProductSummary, 0, len(order))
	for _, key := range order {
		s := byProduct[key]
		s.Remaining = s.AllocatedStock - s.UnitsSold
		if s.AllocatedStock > 0 {
			s.SellThrough = float64(s.UnitsSold) / float64(s.AllocatedStock) * 100
		}
		if total.IsPositive() {
			s.RevenuePercent = s.Revenue.Div(total).Mul(hundred).InexactFloat64()
		}
		out = append(out, *s)
	}
	return out
}

func (a *Aggregator) vendorRollup(variants []types.VariantSellThrough) []types.VendorSummary {
	byVendor := make(map[string]*types.VendorSummary)
	var order []string

	for _, v := range variants {
		vendor := segmentOrUnknown(v.Vendor)
		summary, ok := byVendor[vendor]
		if !ok {
			summary = &types.VendorSummary{Vendor: vendor, Revenue: decimal.Zero}
			byVendor[vendor] = summary
			order = append(order, vendor)
		}
		summary.UnitsSold += v.UnitsSold
		summary.Revenue = summary.Revenue.Add(v.Revenue)
	}

	total := decimal.Zero
	for _, vendor := range order {
		total = total.Add(byVendor[vendor].Revenue)
	}

	out := make([]types.VendorSummary, 0, len(order))
	for _, vendor := range order {
		s := byVendor[vendor]
		if total.IsPositive() {
			s.RevenuePercent = s.Revenue.Div(total).Mul(hundred).InexactFloat64()
		}
		out = append(out, *s)
	}
	return out
}

func (a *Aggregator) categoryRollup(variants []types.VariantSellThrough) []types.CategorySummary {
	byCategory := make(map[string]*types.CategorySummary)
	var order []string

	for _, v := range variants {
		category := segmentOrUnknown(v.ProductType)
		summary, ok := byCategory[category]
		if !ok {
			summary = &types.CategorySummary{Category: category, Revenue: decimal.Zero}
			byCategory[category] = summary
			order = append(order, category)
		}
		summary.UnitsSold += v.UnitsSold
		summary.Revenue = summary.Revenue.Add(v.Revenue)
	}

	total := decimal.Zero
	for _, category := range order {
		total = total.Add(byCategory[category].Revenue)
	}

	out := make([]types.CategorySummary, 0, len(order))
	for _, category := range order {
		s := byCategory[category]
		if total.IsPositive() {
			s.RevenuePercent = s.Revenue.Div(total).Mul(hundred).InexactFloat64()
		}
		out = append(out, *s)
	}
	return out
}

func (a *Aggregator) salesMetrics(orders []types.Order, window types.Window) types.SalesMetrics {
	metrics := types.SalesMetrics{
		TotalOrders:       len(orders),
		GrossSales:        decimal.Zero,
		Discounts:         decimal.Zero,
		Refunds:           decimal.Zero,
		NetSales:          decimal.Zero,
		AverageOrderValue: decimal.Zero,
		FulfillmentCounts: make(map[string]int),
	}

	hourCounts := make(map[int]int)
	for _, o := range orders {
		metrics.GrossSales = metrics.GrossSales.Add(o.TotalPrice)
		metrics.Discounts = metrics.Discounts.Add(o.TotalDiscounts)
		for _, refund := range o.Refunds {
			for _, txn := range refund.Transactions {
				metrics.Refunds = metrics.Refunds.Add(txn.Amount)
			}
		}

		status := o.FulfillmentStatus
		if status == "" {
			status = "unfulfilled"
		}
		metrics.FulfillmentCounts[status]++
		hourCounts[o.CreatedAt.UTC().Hour()]++
	}

	metrics.NetSales = metrics.GrossSales.Sub(metrics.Discounts).Sub(metrics.Refunds)
	if metrics.TotalOrders > 0 {
		metrics.AverageOrderValue = metrics.NetSales.Div(decimal.NewFromInt(int64(metrics.TotalOrders)))
	}

	metrics.PeakHour = peakHour(hourCounts)

	if hours := window.Duration().Hours(); hours > 0 {
		metrics.OrdersPerHour = float64(metrics.TotalOrders) / hours
		metrics.OrdersPerDay = float64(metrics.TotalOrders) / (hours / 24)
	}

	return metrics
}

// peakHour returns the modal hour-of-day; ties break toward the earliest hour.
func peakHour(counts map[int]int) int {
	best, bestCount := 0, 0
	for hour := 0; hour < 24; hour++ {
		if counts[hour] > bestCount {
			best, bestCount = hour, counts[hour]
		}
	}
	return best
}

func (a *Aggregator) customerMetrics(orders []types.Order) types.CustomerMetrics {
	// Email comparison is deliberately case-sensitive to mirror the upstream
	// platform's customer identity.
	orderCounts := make(map[string]int)
	for _, o := range orders {
		if o.Email == "" {
			continue
		}
		orderCounts[o.Email]++
	}

	metrics := types.CustomerMetrics{UniqueCustomers: len(orderCounts)}
	for _, n := range orderCounts {
		if n > 1 {
			metrics.ReturningCustomers++
		} else {
			metrics.NewCustomers++
		}
	}
	return metrics
}

func segmentOrUnknown(value string) string {
	if value == "" {
		return UnknownSegment
	}
	return value
}
