package ranking

// segmentStats carries the comparison baselines for one vendor, category, or
// product-type grouping: its average sell-through and its share of drop revenue.
type segmentStats struct {
	avgSellThrough float64
	revenuePercent float64
}

type segments struct {
	vendors     map[string]segmentStats
	categories  map[string]segmentStats
	productType map[string]segmentStats
}

// buildSegments precomputes per-segment averages once per classification call.
// Revenue shares come from the rollup summaries; sell-through averages are
// taken over the observed variants in each segment.
func buildSegments(in Input) segments {
	seg := segments{
		vendors:     make(map[string]segmentStats),
		categories:  make(map[string]segmentStats),
		productType: make(map[string]segmentStats),
	}

	type acc struct {
		sum   float64
		count int
	}
	vendorAcc := make(map[string]*acc)
	categoryAcc := make(map[string]*acc)
	typeAcc := make(map[string]*acc)

	add := func(m map[string]*acc, key string, st float64) {
		if key == "" {
			return
		}
		a, ok := m[key]
		if !ok {
			a = &acc{}
			m[key] = a
		}
		a.sum += st
		a.count++
	}

	for _, v := range in.Variants {
		add(vendorAcc, v.Vendor, v.SellThrough)
		add(categoryAcc, v.ProductType, v.SellThrough)
		add(typeAcc, v.ProductType, v.SellThrough)
	}

	for key, a := range vendorAcc {
		seg.vendors[key] = segmentStats{avgSellThrough: a.sum / float64(a.count)}
	}
	for key, a := range categoryAcc {
		seg.categories[key] = segmentStats{avgSellThrough: a.sum / float64(a.count)}
	}
	for key, a := range typeAcc {
		seg.productType[key] = segmentStats{avgSellThrough: a.sum / float64(a.count)}
	}

	for _, v := range in.Vendors {
		s := seg.vendors[v.Vendor]
		s.revenuePercent = v.RevenuePercent
		seg.vendors[v.Vendor] = s
	}
	for _, c := range in.Categories {
		s := seg.categories[c.Category]
		s.revenuePercent = c.RevenuePercent
		seg.categories[c.Category] = s
	}

	return seg
}
