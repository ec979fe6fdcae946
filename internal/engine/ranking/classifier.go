package ranking

import (
	"fmt"
	"sort"
	"time"

	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
)

const (
	tierCap = 5

	starMinSellThrough        = 50.0
	starMinUnits              = 3
	starMaxVelocityRatio      = 0.7
	starFallbackSellThrough   = 70.0
	championMinRevenue        = 100.0
	sleeperMaxSegmentShare    = 15.0
	sleeperSegmentMultiplier  = 1.2
	sleeperMinSellThrough     = 30.0
	dudMaxSellThrough         = 20.0
	dudMinWindowAge           = 24 * time.Hour
	slowMoverMaxSellThrough   = 25.0
	slowMoverRemainingFactor  = 2 // remaining > baseline/2 qualifies
	championCandidateFraction = 5 // top 1/5th of the pool by revenue
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

// Input is the data one classification call operates on. Vendor and category
// summaries supply the revenue shares sleeper-hit detection compares against.
type Input struct {
	Variants   []types.VariantSellThrough
	Vendors    []types.VendorSummary
	Categories []types.CategorySummary
	Window     types.Window
}

// Classifier partitions a drop's products into five performance tiers.
// Tiers are evaluated in fixed priority order over a shared pool; each tier
// removes its members before the next is considered, so no product can land
// in two tiers.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Rank runs the full tier assignment for one drop.
func (c *Classifier) Rank(in Input) types.ProductRankings {
	pool := make([]types.VariantSellThrough, len(in.Variants))
	copy(pool, in.Variants)
	seg := buildSegments(in)

	var rankings types.ProductRankings
	rankings.StarPerformers, pool = c.starPerformers(pool, in.Window)
	rankings.RevenueChampions, pool = c.revenueChampions(pool)
	rankings.SleeperHits, pool = c.sleeperHits(pool, seg)
	rankings.Duds, pool = c.duds(pool, in.Window)
	rankings.SlowMovers, _ = c.slowMovers(pool, in.Window)
	return rankings
}

// starPerformers selects products that sold through quickly: high sell-through
// with meaningful volume, either sold out early in the window or (when no
// sellout timestamp exists) sold through past the fallback threshold.
func (c *Classifier) starPerformers(pool []types.VariantSellThrough, window types.Window) ([]types.RankedProduct, []types.VariantSellThrough) {
	var candidates []types.RankedProduct
	for _, v := range pool {
		if v.SellThrough <= starMinSellThrough || v.UnitsSold < starMinUnits {
			continue
		}
		ratio, ok := velocityRatio(v, window)
		switch {
		case ok && ratio < starMaxVelocityRatio:
			candidates = append(candidates, types.RankedProduct{
				VariantSellThrough: v,
				Tier:               types.TierStarPerformer,
				Reason:             fmt.Sprintf("Sold out at %.0f%% of the drop window with %.0f%% sell-through.", ratio*100, v.SellThrough),
				RankingScore:       (100 - ratio*100) + v.SellThrough,
			})
		case !ok && v.SellThrough > starFallbackSellThrough:
			candidates = append(candidates, types.RankedProduct{
				VariantSellThrough: v,
				Tier:               types.TierStarPerformer,
				Reason:             fmt.Sprintf("Reached %.0f%% sell-through without restocking.", v.SellThrough),
				RankingScore:       v.SellThrough,
			})
		}
	}

	selected := topByScore(candidates, tierCap)
	return selected, removeSelected(pool, selected)
}

// revenueChampions takes the highest-revenue products remaining after star
// selection. Candidates below the revenue floor never qualify.
func (c *Classifier) revenueChampions(pool []types.VariantSellThrough) ([]types.RankedProduct, []types.VariantSellThrough) {
	var candidates []types.RankedProduct
	for _, v := range pool {
		revenue := v.Revenue.InexactFloat64()
		if revenue < championMinRevenue {
			continue
		}
		candidates = append(candidates, types.RankedProduct{
			VariantSellThrough: v,
			Tier:               types.TierRevenueChampion,
			Reason:             fmt.Sprintf("Generated %.2f in drop revenue (%.1f%% of the total).", revenue, v.RevenueShare),
			RankingScore:       revenue,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RankingScore > candidates[j].RankingScore
	})

	take := len(candidates) / championCandidateFraction
	if take < tierCap {
		take = tierCap
	}
	if take > len(candidates) {
		take = len(candidates)
	}
	selected := topByScore(candidates[:take], tierCap)
	return selected, removeSelected(pool, selected)
}

// sleeperHits surfaces strong performers hiding inside weak segments: the
// product's vendor or category holds a small slice of drop revenue, yet the
// product itself sells through well above its segment's average.
func (c *Classifier) sleeperHits(pool []types.VariantSellThrough, seg segments) ([]types.RankedProduct, []types.VariantSellThrough) {
	var candidates []types.RankedProduct
	for _, v := range pool {
		if v.SellThrough <= sleeperMinSellThrough {
			continue
		}

		segAvg, segName, ok := sleeperSegment(v, seg)
		if !ok {
			continue
		}
		candidates = append(candidates, types.RankedProduct{
			VariantSellThrough: v,
			Tier:               types.TierSleeperHit,
			Reason:             fmt.Sprintf("Outsold the %s segment average (%.0f%% vs %.0f%%).", segName, v.SellThrough, segAvg),
			RankingScore:       (v.SellThrough - segAvg) * float64(v.UnitsSold),
		})
	}

	selected := topByScore(candidates, tierCap)
	return selected, removeSelected(pool, selected)
}

// sleeperSegment finds a low-share segment the variant outperforms. Vendor is
// checked before category.
func sleeperSegment(v types.VariantSellThrough, seg segments) (avg float64, name string, ok bool) {
	if s, exists := seg.vendors[v.Vendor]; exists &&
		s.revenuePercent < sleeperMaxSegmentShare &&
		v.SellThrough > s.avgSellThrough*sleeperSegmentMultiplier {
		return s.avgSellThrough, v.Vendor, true
	}
	if s, exists := seg.categories[v.ProductType]; exists &&
		s.revenuePercent < sleeperMaxSegmentShare &&
		v.SellThrough > s.avgSellThrough*sleeperSegmentMultiplier {
		return s.avgSellThrough, v.ProductType, true
	}
	return 0, "", false
}

// duds flags the revenue laggards of a drop that is at least a day old.
// Younger drops yield an empty tier so early hours never brand a product.
func (c *Classifier) duds(pool []types.VariantSellThrough, window types.Window) ([]types.RankedProduct, []types.VariantSellThrough) {
	if timeNowUTC().Sub(window.Start) < dudMinWindowAge {
		return nil, pool
	}

	byRevenue := make([]types.VariantSellThrough, len(pool))
	copy(byRevenue, pool)
	sort.SliceStable(byRevenue, func(i, j int) bool {
		return byRevenue[i].Revenue.LessThan(byRevenue[j].Revenue)
	})

	bottom := len(byRevenue) / 5
	if bottom < tierCap {
		bottom = tierCap
	}
	if bottom > len(byRevenue) {
		bottom = len(byRevenue)
	}

	var candidates []types.RankedProduct
	for _, v := range byRevenue[:bottom] {
		if v.SellThrough >= dudMaxSellThrough {
			continue
		}
		candidates = append(candidates, types.RankedProduct{
			VariantSellThrough: v,
			Tier:               types.TierDud,
			Reason:             fmt.Sprintf("Only %.0f%% sell-through with %.1f%% of drop revenue.", v.SellThrough, v.RevenueShare),
			RankingScore:       (100 - v.SellThrough) + (100 - v.RevenueShare*5),
		})
	}

	selected := topByScore(candidates, tierCap)
	return selected, removeSelected(pool, selected)
}

// slowMovers is only meaningful once the drop has ended: products that closed
// the window with low sell-through or most of their allocation still unsold.
func (c *Classifier) slowMovers(pool []types.VariantSellThrough, window types.Window) ([]types.RankedProduct, []types.VariantSellThrough) {
	if !window.End.Before(timeNowUTC()) {
		return nil, pool
	}

	var candidates []types.RankedProduct
	for _, v := range pool {
		halfStock := v.Baseline / slowMoverRemainingFactor
		if v.SellThrough >= slowMoverMaxSellThrough &&
			!(v.SoldOutAt == nil && v.Baseline > 0 && v.Remaining > halfStock) {
			continue
		}
		remainingPct := 0.0
		if v.Baseline > 0 && v.Remaining > 0 {
			remainingPct = float64(v.Remaining) / float64(v.Baseline) * 100
		}
		candidates = append(candidates, types.RankedProduct{
			VariantSellThrough: v,
			Tier:               types.TierSlowMover,
			Reason:             fmt.Sprintf("Ended the drop with %.0f%% of stock unsold.", remainingPct),
			RankingScore:       remainingPct + (100 - v.SellThrough),
		})
	}

	selected := topByScore(candidates, tierCap)
	return selected, removeSelected(pool, selected)
}

// velocityRatio reports how far into the window the variant sold out.
// The second return is false when no sellout was recorded or the window has
// zero duration.
func velocityRatio(v types.VariantSellThrough, window types.Window) (float64, bool) {
	if v.SoldOutAt == nil {
		return 0, false
	}
	duration := window.Duration().Seconds()
	if duration <= 0 {
		return 0, false
	}
	return v.SoldOutAt.Sub(window.Start).Seconds() / duration, true
}

func topByScore(candidates []types.RankedProduct, n int) []types.RankedProduct {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RankingScore > candidates[j].RankingScore
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

func removeSelected(pool []types.VariantSellThrough, selected []types.RankedProduct) []types.VariantSellThrough {
	if len(selected) == 0 {
		return pool
	}
	taken := make(map[types.VariantKey]struct{}, len(selected))
	for _, s := range selected {
		taken[s.Key()] = struct{}{}
	}
	remaining := pool[:0]
	for _, v := range pool {
		if _, ok := taken[v.Key()]; !ok {
			remaining = append(remaining, v)
		}
	}
	return remaining
}
