package scoring

import (
	"testing"
	"time"

	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

var window = types.Window{
	Start: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	End:   time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
}

func TestScoreRequiresWindow(t *testing.T) {
	scorer := NewScorer()

	_, err := scorer.Score(Input{})
	if err == nil {
		t.Fatalf("expected error for missing window")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = scorer.Score(Input{Window: types.Window{Start: window.End, End: window.Start}})
	if err == nil {
		t.Fatalf("expected error for reversed window")
	}
}

func TestRevenueComponentFullMarks(t *testing.T) {
	// netSales=12000, avgOrderValue=160, totalOrders=50 -> 10 + 10.
	in := Input{
		Window: window,
		Sales: types.SalesMetrics{
			TotalOrders:       50,
			NetSales:          decimal.RequireFromString("12000.00"),
			AverageOrderValue: decimal.RequireFromString("160.00"),
		},
	}

	score, err := NewScorer().Score(in)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	c, ok := score.Component(types.ComponentRevenue)
	if !ok {
		t.Fatalf("revenue component missing")
	}
	if c.Score != 20 {
		t.Fatalf("revenue score = %v, want 20", c.Score)
	}
}

func TestRevenueComponentLinearBands(t *testing.T) {
	in := Input{
		Window: window,
		Sales: types.SalesMetrics{
			TotalOrders:       4,
			NetSales:          decimal.RequireFromString("500.00"),
			AverageOrderValue: decimal.RequireFromString("25.00"),
		},
	}
	score, err := NewScorer().Score(in)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	c, _ := score.Component(types.ComponentRevenue)
	// 500/1000*4 = 2 plus 25/50*4 = 2.
	if c.Score != 4 {
		t.Fatalf("revenue score = %v, want 4", c.Score)
	}
}

func TestZeroOrdersYieldZeroOverallAndGradeF(t *testing.T) {
	score, err := NewScorer().Score(Input{Window: window})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score.Overall != 0 {
		t.Fatalf("overall = %v, want 0", score.Overall)
	}
	if score.Grade != "F" {
		t.Fatalf("grade = %s, want F", score.Grade)
	}
	for _, c := range score.Components {
		if c.Score != 0 {
			t.Fatalf("component %s = %v, want 0", c.Name, c.Score)
		}
		if c.Description == "" {
			t.Fatalf("component %s missing degradation description", c.Name)
		}
	}
}

func TestOverallEqualsComponentSum(t *testing.T) {
	soldOut := window.Start.Add(2 * time.Hour)
	in := Input{
		Window: window,
		Variants: []types.VariantSellThrough{
			{SellThrough: 110, RevenueShare: 60, SoldOutAt: &soldOut},
			{SellThrough: 45, RevenueShare: 40},
		},
		Orders: []types.Order{
			{CreatedAt: window.Start.Add(time.Hour)},
			{CreatedAt: window.Start.Add(3 * time.Hour)},
		},
		Sales: types.SalesMetrics{
			TotalOrders:       2,
			NetSales:          decimal.RequireFromString("3000.00"),
			AverageOrderValue: decimal.RequireFromString("1500.00"),
		},
		Customers: types.CustomerMetrics{UniqueCustomers: 2, NewCustomers: 1, ReturningCustomers: 1},
	}

	score, err := NewScorer().Score(in)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	var sum float64
	for _, c := range score.Components {
		if c.Score < 0 || c.Score > c.MaxScore {
			t.Fatalf("component %s out of range: %v/%v", c.Name, c.Score, c.MaxScore)
		}
		sum += c.Score
	}
	if diff := score.Overall - sum; diff > 0.05 || diff < -0.05 {
		t.Fatalf("overall %v != sum %v", score.Overall, sum)
	}
}

func TestVelocityBandsWithSoldOutProducts(t *testing.T) {
	// Sold out 2h into a 24h window: ratio < 0.10 -> base 25, bonus caps at 25.
	soldOut := window.Start.Add(2 * time.Hour)
	in := Input{
		Window:   window,
		Variants: []types.VariantSellThrough{{SellThrough: 100, RevenueShare: 100, SoldOutAt: &soldOut}},
	}
	score, err := NewScorer().Score(in)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	c, _ := score.Component(types.ComponentVelocity)
	if c.Score != 25 {
		t.Fatalf("velocity = %v, want capped 25", c.Score)
	}

	// Sold out 20h in: ratio ~0.83 -> base 10 + bonus 5.
	late := window.Start.Add(20 * time.Hour)
	in.Variants = []types.VariantSellThrough{{SellThrough: 100, RevenueShare: 100, SoldOutAt: &late}}
	score, err = NewScorer().Score(in)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	c, _ = score.Component(types.ComponentVelocity)
	if c.Score != 15 {
		t.Fatalf("velocity = %v, want 15", c.Score)
	}
}

func TestVelocityWithoutSelloutsUsesAverageSellThrough(t *testing.T) {
	in := Input{
		Window: window,
		Variants: []types.VariantSellThrough{
			{SellThrough: 60, RevenueShare: 50},
			{SellThrough: 20, RevenueShare: 50},
		},
	}
	score, err := NewScorer().Score(in)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	c, _ := score.Component(types.ComponentVelocity)
	// avg 40% of 25 = 10.
	if c.Score != 10 {
		t.Fatalf("velocity = %v, want 10", c.Score)
	}
}

func TestDiversityFullConcentrationScoresTwo(t *testing.T) {
	in := Input{
		Window:   window,
		Variants: []types.VariantSellThrough{{SellThrough: 50, RevenueShare: 100}},
	}
	score, err := NewScorer().Score(in)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	c, _ := score.Component(types.ComponentDiversity)
	if c.Score != 2 {
		t.Fatalf("diversity = %v, want 2 (HHI=1.0)", c.Score)
	}
}

func TestTimeEfficiencyMedianBands(t *testing.T) {
	in := Input{
		Window: window,
		Orders: []types.Order{
			{CreatedAt: window.Start.Add(1 * time.Hour)},
			{CreatedAt: window.Start.Add(2 * time.Hour)},
			{CreatedAt: window.Start.Add(3 * time.Hour)},
			{CreatedAt: window.End.Add(time.Hour)}, // outside window, excluded
		},
		Sales: types.SalesMetrics{TotalOrders: 4},
	}
	score, err := NewScorer().Score(in)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	c, _ := score.Component(types.ComponentTimeEfficiency)
	// median ratio 2/24 < 0.2 -> 5.
	if c.Score != 5 {
		t.Fatalf("time efficiency = %v, want 5", c.Score)
	}
}

func TestEngagementSplitsNewAndReturning(t *testing.T) {
	in := Input{
		Window:    window,
		Sales:     types.SalesMetrics{TotalOrders: 10},
		Customers: types.CustomerMetrics{UniqueCustomers: 10, NewCustomers: 10},
	}
	score, err := NewScorer().Score(in)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	c, _ := score.Component(types.ComponentEngagement)
	if c.Score != 8 {
		t.Fatalf("engagement = %v, want 8 (all new)", c.Score)
	}
}

func TestGradeLadder(t *testing.T) {
	cases := []struct {
		overall float64
		grade   string
	}{
		{96, "S"}, {95, "S"}, {94.9, "A+"}, {90, "A+"}, {85, "A"},
		{80, "B+"}, {75, "B"}, {70, "C+"}, {65, "C"}, {50, "D"}, {49.9, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		if got := gradeFor(tc.overall); got != tc.grade {
			t.Fatalf("gradeFor(%v) = %s, want %s", tc.overall, got, tc.grade)
		}
	}
}
