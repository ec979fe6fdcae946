package sellthrough

import (
	"sort"

	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
	"github.com/shopspring/decimal"
)

// DefaultBaseline is the assumed starting stock for variants missing from the
// inventory snapshot.
const DefaultBaseline = 50

// Config tunes the tracker.
type Config struct {
	DefaultBaseline int
}

// Tracker walks orders chronologically and accumulates per-variant
// sell-through state.
type Tracker struct {
	cfg Config
}

// NewTracker builds a tracker, falling back to DefaultBaseline when the
// configured value is not positive.
func NewTracker(cfg Config) *Tracker {
	if cfg.DefaultBaseline <= 0 {
		cfg.DefaultBaseline = DefaultBaseline
	}
	return &Tracker{cfg: cfg}
}

// Compute produces one VariantSellThrough per observed variant. Orders are
// processed in ascending creation time (ties keep their input order); line
// items that cannot be attributed to a variant are skipped. The input slices
// are not mutated.
func (t *Tracker) Compute(orders []types.Order, baseline map[string]int) []types.VariantSellThrough {
	sorted := make([]types.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	records := make(map[types.VariantKey]*types.VariantSellThrough)
	var order []types.VariantKey

	for _, o := range sorted {
		for _, item := range o.LineItems {
			key, ok := types.KeyForItem(item)
			if !ok {
				continue
			}

			rec, exists := records[key]
			if !exists {
				rec = t.newRecord(item, baseline)
				records[key] = rec
				order = append(order, key)
			}

			before := rec.UnitsSold
			rec.UnitsSold += item.Quantity
			rec.Revenue = rec.Revenue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			rec.Remaining = rec.Baseline - rec.UnitsSold
			if rec.Baseline > 0 {
				rec.SellThrough = float64(rec.UnitsSold) / float64(rec.Baseline) * 100
			}

			if rec.SoldOutAt == nil && before < rec.Baseline && rec.UnitsSold >= rec.Baseline {
				at := o.CreatedAt
				rec.SoldOutAt = &at
			}
		}
	}

	total := decimal.Zero
	for _, key := range order {
		total = total.Add(records[key].Revenue)
	}

	out := make([]types.VariantSellThrough, 0, len(order))
	for _, key := range order {
		rec := records[key]
		if total.IsPositive() {
			rec.RevenueShare = rec.Revenue.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		out = append(out, *rec)
	}
	return out
}

func (t *Tracker) newRecord(item types.LineItem, baseline map[string]int) *types.VariantSellThrough {
	base := t.cfg.DefaultBaseline
	if item.VariantID != "" {
		if supplied, ok := baseline[item.VariantID]; ok {
			base = supplied
			if base < 0 {
				base = 0
			}
		}
	}

	color, size := types.SplitVariantTitle(item.VariantTitle)
	return &types.VariantSellThrough{
		ProductID:    item.ProductID,
		VariantID:    item.VariantID,
		Title:        item.Title,
		VariantTitle: item.VariantTitle,
		SKU:          item.SKU,
		Vendor:       item.Vendor,
		ProductType:  item.ProductType,
		Color:        color,
		Size:         size,
		Baseline:     base,
		Remaining:    base,
		Revenue:      decimal.Zero,
	}
}
