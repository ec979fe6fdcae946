package scoring

import (
	"sort"

	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
)

// ruleContext is the flattened view of a computed score that insight
// predicates evaluate against.
type ruleContext struct {
	overall        float64
	percents       map[string]float64
	hasOrders      bool
	hasProducts    bool
	newRatio       float64
	returningRatio float64
}

type insightRule struct {
	when     func(ruleContext) bool
	typ      types.InsightType
	message  string
	priority int
}

// The rule table is ordered only for readability; triggered insights are
// re-sorted by priority before returning.
var insightRules = []insightRule{
	{
		when:     func(c ruleContext) bool { return !c.hasOrders },
		typ:      types.InsightCritical,
		message:  "No orders were recorded for this drop. Check that the drop window and order sync are correct.",
		priority: 5,
	},
	{
		when:     func(c ruleContext) bool { return c.hasOrders && c.percents[types.ComponentSellThrough] < 30 },
		typ:      types.InsightCritical,
		message:  "Most inventory is still unsold. Consider extending the drop or discounting remaining stock.",
		priority: 5,
	},
	{
		when:     func(c ruleContext) bool { return c.hasProducts && c.percents[types.ComponentVelocity] < 40 },
		typ:      types.InsightWarning,
		message:  "Products are selling out slowly. A promotion or restock alert may lift demand.",
		priority: 4,
	},
	{
		when:     func(c ruleContext) bool { return c.hasOrders && c.percents[types.ComponentRevenue] < 40 },
		typ:      types.InsightWarning,
		message:  "Revenue is below target for a drop of this size. Review pricing and bundle options.",
		priority: 4,
	},
	{
		when:     func(c ruleContext) bool { return c.hasProducts && c.percents[types.ComponentDiversity] <= 40 },
		typ:      types.InsightWarning,
		message:  "Revenue is concentrated in a few products. Broaden the assortment for the next drop.",
		priority: 3,
	},
	{
		when:     func(c ruleContext) bool { return c.hasOrders && c.newRatio > 0.6 },
		typ:      types.InsightSuccess,
		message:  "This drop attracted mostly new customers. Follow up to convert them into repeat buyers.",
		priority: 3,
	},
	{
		when:     func(c ruleContext) bool { return c.hasOrders && c.percents[types.ComponentSellThrough] >= 80 },
		typ:      types.InsightSuccess,
		message:  "Strong sell-through across the drop. A restock of top sellers is likely to land well.",
		priority: 3,
	},
	{
		when:     func(c ruleContext) bool { return c.hasOrders && c.returningRatio > 0.6 },
		typ:      types.InsightSuccess,
		message:  "Loyal customers drove this drop. Consider early access for repeat buyers next time.",
		priority: 2,
	},
	{
		when:     func(c ruleContext) bool { return c.hasOrders && c.percents[types.ComponentTimeEfficiency] >= 80 },
		typ:      types.InsightSuccess,
		message:  "Demand was front-loaded; most orders arrived early in the window.",
		priority: 2,
	},
	{
		when:     func(c ruleContext) bool { return c.overall >= 90 },
		typ:      types.InsightSuccess,
		message:  "Exceptional drop performance across the board.",
		priority: 1,
	},
}

func insightContext(in Input, score *types.DropScore) ruleContext {
	ctx := ruleContext{
		overall:     score.Overall,
		percents:    make(map[string]float64, len(score.Components)),
		hasOrders:   in.Sales.TotalOrders > 0,
		hasProducts: len(in.Variants) > 0,
	}
	for _, c := range score.Components {
		ctx.percents[c.Name] = c.Percent
	}
	if in.Customers.UniqueCustomers > 0 {
		unique := float64(in.Customers.UniqueCustomers)
		ctx.newRatio = float64(in.Customers.NewCustomers) / unique
		ctx.returningRatio = float64(in.Customers.ReturningCustomers) / unique
	}
	return ctx
}

func buildInsights(ctx ruleContext) []types.Insight {
	var out []types.Insight
	for _, rule := range insightRules {
		if rule.when(ctx) {
			out = append(out, types.Insight{
				Type:     rule.typ,
				Message:  rule.message,
				Priority: rule.priority,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}
