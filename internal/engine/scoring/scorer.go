package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
)

// Component weights. They sum to 100.
const (
	MaxVelocity       = 25.0
	MaxSellThrough    = 25.0
	MaxRevenue        = 20.0
	MaxEngagement     = 15.0
	MaxDiversity      = 10.0
	MaxTimeEfficiency = 5.0
)

// Input carries everything the scorer consumes. All fields come from the
// tracker/aggregator output for the same immutable order snapshot.
type Input struct {
	Variants  []types.VariantSellThrough
	Orders    []types.Order
	Window    types.Window
	Sales     types.SalesMetrics
	Customers types.CustomerMetrics
}

// Scorer turns drop aggregates into a 0-100 performance score.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the weighted component scores, the letter grade, and the
// prioritized insight list. A missing or non-chronological drop window is the
// only hard failure; every degenerate-data case degrades to a zero-valued
// component instead of erroring.
func (s *Scorer) Score(in Input) (*types.DropScore, error) {
	if in.Window.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drop window start and end are required")
	}
	if in.Window.End.Before(in.Window.Start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drop window end must be after start")
	}

	components := []types.ComponentScore{
		s.velocity(in),
		s.sellThrough(in),
		s.revenue(in),
		s.engagement(in),
		s.diversity(in),
		s.timeEfficiency(in),
	}

	var overall float64
	for _, c := range components {
		overall += c.Score
	}
	overall = round1(clamp(overall, 0, 100))

	score := &types.DropScore{
		Overall:    overall,
		Grade:      gradeFor(overall),
		Components: components,
	}
	score.Insights = buildInsights(insightContext(in, score))
	return score, nil
}

func (s *Scorer) velocity(in Input) types.ComponentScore {
	c := types.ComponentScore{
		Name:     types.ComponentVelocity,
		Label:    "Sell-Out Velocity",
		MaxScore: MaxVelocity,
	}
	if len(in.Variants) == 0 {
		c.Description = "No products were sold during this drop."
		return finish(c)
	}

	var soldOut []types.VariantSellThrough
	for _, v := range in.Variants {
		if v.SoldOutAt != nil {
			soldOut = append(soldOut, v)
		}
	}

	if len(soldOut) == 0 {
		avg := averageSellThrough(in.Variants)
		c.Score = clamp(avg/100*MaxVelocity, 0, MaxVelocity)
		c.Description = fmt.Sprintf("Nothing sold out yet; average sell-through is %.1f%%.", avg)
		return finish(c)
	}

	duration := in.Window.Duration().Seconds()
	if duration <= 0 {
		c.Description = "Drop window has zero duration."
		return finish(c)
	}

	var elapsed float64
	for _, v := range soldOut {
		elapsed += v.SoldOutAt.Sub(in.Window.Start).Seconds()
	}
	ratio := (elapsed / float64(len(soldOut))) / duration

	var base float64
	switch {
	case ratio < 0.10:
		base = 25
	case ratio < 0.25:
		base = 23
	case ratio < 0.50:
		base = 20
	case ratio < 0.75:
		base = 15
	default:
		base = 10
	}

	bonus := float64(len(soldOut)) / float64(len(in.Variants)) * 5
	c.Score = clamp(base+bonus, 0, MaxVelocity)
	c.Description = fmt.Sprintf("%d of %d products sold out at %.0f%% of the drop window.",
		len(soldOut), len(in.Variants), ratio*100)
	return finish(c)
}

func (s *Scorer) sellThrough(in Input) types.ComponentScore {
	c := types.ComponentScore{
		Name:     types.ComponentSellThrough,
		Label:    "Sell-Through",
		MaxScore: MaxSellThrough,
	}
	if len(in.Variants) == 0 {
		c.Description = "No sell-through data available."
		return finish(c)
	}

	var weighted float64
	for _, v := range in.Variants {
		weighted += (v.SellThrough / 100) * (v.RevenueShare / 100)
	}
	c.Score = clamp(weighted*MaxSellThrough, 0, MaxSellThrough)
	c.Description = fmt.Sprintf("Revenue-weighted sell-through across %d variants.", len(in.Variants))
	return finish(c)
}

func (s *Scorer) revenue(in Input) types.ComponentScore {
	c := types.ComponentScore{
		Name:     types.ComponentRevenue,
		Label:    "Revenue",
		MaxScore: MaxRevenue,
	}
	if in.Sales.TotalOrders == 0 {
		c.Description = "No orders were placed during this drop."
		return finish(c)
	}

	net := in.Sales.NetSales.InexactFloat64()
	aov := in.Sales.AverageOrderValue.InexactFloat64()

	var magnitude float64
	switch {
	case net >= 10000:
		magnitude = 10
	case net >= 5000:
		magnitude = 8
	case net >= 2500:
		magnitude = 6
	case net >= 1000:
		magnitude = 4
	default:
		magnitude = clamp(net/1000*4, 0, 4)
	}

	var aovScore float64
	switch {
	case aov >= 150:
		aovScore = 10
	case aov >= 100:
		aovScore = 8
	case aov >= 75:
		aovScore = 6
	case aov >= 50:
		aovScore = 4
	default:
		aovScore = clamp(aov/50*4, 0, 4)
	}

	c.Score = magnitude + aovScore
	c.Description = fmt.Sprintf("Net sales %.2f with an average order value of %.2f.", net, aov)
	return finish(c)
}

func (s *Scorer) engagement(in Input) types.ComponentScore {
	c := types.ComponentScore{
		Name:     types.ComponentEngagement,
		Label:    "Customer Engagement",
		MaxScore: MaxEngagement,
	}
	if in.Customers.UniqueCustomers == 0 {
		c.Description = "No identifiable customers in this drop."
		return finish(c)
	}

	unique := float64(in.Customers.UniqueCustomers)
	newRatio := float64(in.Customers.NewCustomers) / unique
	returningRatio := float64(in.Customers.ReturningCustomers) / unique
	c.Score = clamp(newRatio*8+returningRatio*7, 0, MaxEngagement)
	c.Description = fmt.Sprintf("%d unique customers, %.0f%% of them new.",
		in.Customers.UniqueCustomers, newRatio*100)
	return finish(c)
}

func (s *Scorer) diversity(in Input) types.ComponentScore {
	c := types.ComponentScore{
		Name:     types.ComponentDiversity,
		Label:    "Revenue Diversity",
		MaxScore: MaxDiversity,
	}
	if len(in.Variants) == 0 {
		c.Description = "No revenue distribution to evaluate."
		return finish(c)
	}

	hhi := concentrationIndex(in.Variants)
	switch {
	case hhi < 0.15:
		c.Score = 10
	case hhi < 0.25:
		c.Score = 8
	case hhi < 0.40:
		c.Score = 6
	case hhi < 0.60:
		c.Score = 4
	default:
		c.Score = 2
	}
	c.Description = fmt.Sprintf("Revenue concentration index %.2f.", hhi)
	return finish(c)
}

func (s *Scorer) timeEfficiency(in Input) types.ComponentScore {
	c := types.ComponentScore{
		Name:     types.ComponentTimeEfficiency,
		Label:    "Time Efficiency",
		MaxScore: MaxTimeEfficiency,
	}

	duration := in.Window.Duration().Seconds()
	if duration <= 0 {
		c.Description = "Drop window has zero duration."
		return finish(c)
	}

	var ratios []float64
	for _, o := range in.Orders {
		r := o.CreatedAt.Sub(in.Window.Start).Seconds() / duration
		if r >= 0 && r <= 1 {
			ratios = append(ratios, r)
		}
	}
	if len(ratios) == 0 {
		c.Description = "No orders fell inside the drop window."
		return finish(c)
	}

	med := median(ratios)
	switch {
	case med < 0.2:
		c.Score = 5
	case med < 0.4:
		c.Score = 4
	case med < 0.6:
		c.Score = 3
	case med < 0.8:
		c.Score = 2
	default:
		c.Score = 1
	}
	c.Description = fmt.Sprintf("Median order arrived at %.0f%% of the drop window.", med*100)
	return finish(c)
}

// gradeFor maps a rounded overall score to its letter grade.
func gradeFor(overall float64) string {
	switch {
	case overall >= 95:
		return "S"
	case overall >= 90:
		return "A+"
	case overall >= 85:
		return "A"
	case overall >= 80:
		return "B+"
	case overall >= 75:
		return "B"
	case overall >= 70:
		return "C+"
	case overall >= 65:
		return "C"
	case overall >= 50:
		return "D"
	default:
		return "F"
	}
}

func concentrationIndex(variants []types.VariantSellThrough) float64 {
	var hhi float64
	for _, v := range variants {
		share := v.RevenueShare / 100
		hhi += share * share
	}
	return hhi
}

func averageSellThrough(variants []types.VariantSellThrough) float64 {
	if len(variants) == 0 {
		return 0
	}
	var sum float64
	for _, v := range variants {
		sum += v.SellThrough
	}
	return sum / float64(len(variants))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func finish(c types.ComponentScore) types.ComponentScore {
	c.Score = round1(c.Score)
	if c.MaxScore > 0 {
		c.Percent = round1(c.Score / c.MaxScore * 100)
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
