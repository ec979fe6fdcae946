package ranking

import (
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
	"github.com/shopspring/decimal"
)

var window = types.Window{
	Start: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	End:   time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
}

func withNow(t *testing.T, now time.Time) {
	t.Helper()
	orig := timeNowUTC
	timeNowUTC = func() time.Time { return now }
	t.Cleanup(func() { timeNowUTC = orig })
}

func fixture(id string, sellThrough float64, units, baseline int, revenue string) types.VariantSellThrough {
	return types.VariantSellThrough{
		ProductID:   "p" + id,
		VariantID:   "v" + id,
		Title:       "Product " + id,
		Vendor:      "Acme",
		ProductType: "Tops",
		UnitsSold:   units,
		Baseline:    baseline,
		Remaining:   baseline - units,
		Revenue:     decimal.RequireFromString(revenue),
		SellThrough: sellThrough,
	}
}

func TestStarPerformerWinsOverOtherTiers(t *testing.T) {
	withNow(t, window.Start.Add(time.Hour))

	soldOut := window.Start.Add(time.Duration(0.3 * float64(window.End.Sub(window.Start))))
	star := fixture("1", 80, 10, 12, "500.00")
	star.SoldOutAt = &soldOut

	rankings := NewClassifier().Rank(Input{
		Variants: []types.VariantSellThrough{star},
		Window:   window,
	})

	if len(rankings.StarPerformers) != 1 {
		t.Fatalf("star performers = %d, want 1", len(rankings.StarPerformers))
	}
	got := rankings.StarPerformers[0]
	if got.Tier != types.TierStarPerformer {
		t.Fatalf("tier = %s", got.Tier)
	}
	// (100 - 0.3*100) + 80 = 150.
	if got.RankingScore != 150 {
		t.Fatalf("ranking score = %v, want 150", got.RankingScore)
	}
	if n := len(rankings.All()); n != 1 {
		t.Fatalf("product appears in %d tiers, want 1", n)
	}
}

func TestStarPerformerFallbackWithoutSelloutTimestamp(t *testing.T) {
	withNow(t, window.Start.Add(time.Hour))

	v := fixture("1", 75, 5, 20, "50.00")
	rankings := NewClassifier().Rank(Input{Variants: []types.VariantSellThrough{v}, Window: window})
	if len(rankings.StarPerformers) != 1 {
		t.Fatalf("expected fallback star, got %d", len(rankings.StarPerformers))
	}

	// Below the fallback threshold it does not qualify.
	v.SellThrough = 60
	rankings = NewClassifier().Rank(Input{Variants: []types.VariantSellThrough{v}, Window: window})
	if len(rankings.StarPerformers) != 0 {
		t.Fatalf("expected no star at 60%% without sellout, got %d", len(rankings.StarPerformers))
	}
}

func TestRevenueChampionsCapAndOrder(t *testing.T) {
	withNow(t, window.Start.Add(time.Hour))

	var variants []types.VariantSellThrough
	for i := 0; i < 7; i++ {
		variants = append(variants, fixture(
			fmt.Sprintf("%d", i), 30, 2, 50, fmt.Sprintf("%d.00", 100+i*50)))
	}
	variants = append(variants, fixture("cheap", 30, 1, 50, "40.00"))

	rankings := NewClassifier().Rank(Input{Variants: variants, Window: window})
	champs := rankings.RevenueChampions
	if len(champs) != 5 {
		t.Fatalf("champions = %d, want 5", len(champs))
	}
	for i := 1; i < len(champs); i++ {
		if champs[i].RankingScore > champs[i-1].RankingScore {
			t.Fatalf("champions not sorted by revenue: %v then %v",
				champs[i-1].RankingScore, champs[i].RankingScore)
		}
	}
	for _, c := range champs {
		if c.Revenue.LessThan(decimal.NewFromInt(100)) {
			t.Fatalf("champion below revenue floor: %s", c.Revenue)
		}
	}
}

func TestSleeperHitBeatsSegmentAverage(t *testing.T) {
	withNow(t, window.Start.Add(time.Hour))

	sleeper := fixture("1", 60, 6, 10, "60.00")
	sleeper.Vendor = "SmallCo"
	sleeper.ProductType = "Hats"
	laggard := fixture("2", 10, 1, 10, "10.00")
	laggard.Vendor = "SmallCo"
	laggard.ProductType = "Hats"

	rankings := NewClassifier().Rank(Input{
		Variants: []types.VariantSellThrough{sleeper, laggard},
		Categories: []types.CategorySummary{
			{Category: "Hats", RevenuePercent: 8},
		},
		Vendors: []types.VendorSummary{
			{Vendor: "SmallCo", RevenuePercent: 8},
		},
		Window: window,
	})

	if len(rankings.SleeperHits) != 1 {
		t.Fatalf("sleeper hits = %d, want 1", len(rankings.SleeperHits))
	}
	hit := rankings.SleeperHits[0]
	if hit.VariantID != "v1" {
		t.Fatalf("sleeper = %s, want v1", hit.VariantID)
	}
	// Segment average 35, (60-35)*6 = 150.
	if hit.RankingScore != 150 {
		t.Fatalf("sleeper score = %v, want 150", hit.RankingScore)
	}
}

func TestSleeperRequiresLowSegmentShare(t *testing.T) {
	withNow(t, window.Start.Add(time.Hour))

	sleeper := fixture("1", 60, 6, 10, "60.00")
	laggard := fixture("2", 10, 1, 10, "10.00")

	rankings := NewClassifier().Rank(Input{
		Variants: []types.VariantSellThrough{sleeper, laggard},
		Categories: []types.CategorySummary{
			{Category: "Tops", RevenuePercent: 90},
		},
		Vendors: []types.VendorSummary{
			{Vendor: "Acme", RevenuePercent: 90},
		},
		Window: window,
	})
	if len(rankings.SleeperHits) != 0 {
		t.Fatalf("expected no sleepers in a dominant segment, got %d", len(rankings.SleeperHits))
	}
}

func TestDudsRequireDayOldDrop(t *testing.T) {
	variants := []types.VariantSellThrough{
		fixture("1", 5, 1, 20, "5.00"),
		fixture("2", 10, 2, 20, "10.00"),
	}

	withNow(t, window.Start.Add(2*time.Hour))
	rankings := NewClassifier().Rank(Input{Variants: variants, Window: window})
	if len(rankings.Duds) != 0 {
		t.Fatalf("young drop produced %d duds, want 0", len(rankings.Duds))
	}

	withNow(t, window.Start.Add(25*time.Hour))
	rankings = NewClassifier().Rank(Input{Variants: variants, Window: window})
	if len(rankings.Duds) != 2 {
		t.Fatalf("duds = %d, want 2", len(rankings.Duds))
	}
	for _, d := range rankings.Duds {
		if d.SellThrough >= 20 {
			t.Fatalf("dud with sell-through %v", d.SellThrough)
		}
	}
}

func TestSlowMoversOnlyAfterDropEnds(t *testing.T) {
	short := types.Window{Start: window.Start, End: window.Start.Add(12 * time.Hour)}
	v := fixture("1", 10, 2, 20, "20.00")

	// Still inside the window: nothing is a slow mover yet.
	withNow(t, short.Start.Add(6*time.Hour))
	rankings := NewClassifier().Rank(Input{Variants: []types.VariantSellThrough{v}, Window: short})
	if len(rankings.SlowMovers) != 0 {
		t.Fatalf("ongoing drop produced %d slow movers", len(rankings.SlowMovers))
	}

	// Ended 13h after start: too young for duds, so the slow-mover tier owns it.
	withNow(t, short.End.Add(time.Hour))
	rankings = NewClassifier().Rank(Input{Variants: []types.VariantSellThrough{v}, Window: short})
	if len(rankings.SlowMovers) != 1 {
		t.Fatalf("slow movers = %d, want 1", len(rankings.SlowMovers))
	}
	// remaining 18/20 = 90%, plus (100-10) = 180.
	if got := rankings.SlowMovers[0].RankingScore; got != 180 {
		t.Fatalf("slow mover score = %v, want 180", got)
	}
}

func TestSlowMoverHalfStockRule(t *testing.T) {
	short := types.Window{Start: window.Start, End: window.Start.Add(12 * time.Hour)}
	withNow(t, short.End.Add(time.Hour))

	// 40% sell-through but more than half the allocation left unsold.
	v := fixture("1", 40, 8, 20, "80.00")
	v.Remaining = 12
	rankings := NewClassifier().Rank(Input{Variants: []types.VariantSellThrough{v}, Window: short})
	if len(rankings.SlowMovers) != 1 {
		t.Fatalf("expected half-stock slow mover, got %d", len(rankings.SlowMovers))
	}
}

func TestTiersAreDisjoint(t *testing.T) {
	withNow(t, window.End.Add(time.Hour))

	soldOut := window.Start.Add(6 * time.Hour)
	variants := []types.VariantSellThrough{
		fixture("1", 110, 30, 27, "900.00"),
		fixture("2", 60, 12, 20, "400.00"),
		fixture("3", 55, 11, 20, "350.00"),
		fixture("4", 15, 3, 20, "30.00"),
		fixture("5", 8, 1, 20, "8.00"),
		fixture("6", 45, 9, 20, "200.00"),
	}
	variants[0].SoldOutAt = &soldOut

	rankings := NewClassifier().Rank(Input{Variants: variants, Window: window})

	seen := make(map[types.VariantKey]types.Tier)
	for _, p := range rankings.All() {
		if prev, dup := seen[p.Key()]; dup {
			t.Fatalf("variant %s in both %s and %s", p.VariantID, prev, p.Tier)
		}
		seen[p.Key()] = p.Tier
	}
}
