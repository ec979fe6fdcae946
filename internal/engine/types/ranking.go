package types

// Tier names the five mutually exclusive performance buckets.
type Tier string

const (
	TierStarPerformer   Tier = "star_performer"
	TierRevenueChampion Tier = "revenue_champion"
	TierSleeperHit      Tier = "sleeper_hit"
	TierDud             Tier = "dud"
	TierSlowMover       Tier = "slow_mover"
)

// RankedProduct is a sell-through record placed in exactly one tier.
type RankedProduct struct {
	VariantSellThrough
	Tier         Tier    `json:"tier"`
	Reason       string  `json:"reason"`
	RankingScore float64 `json:"ranking_score"`
}

// ProductRankings partitions products into performance tiers. The tiers are
// pairwise disjoint; each holds at most five entries.
type ProductRankings struct {
	StarPerformers   []RankedProduct `json:"star_performers"`
	RevenueChampions []RankedProduct `json:"revenue_champions"`
	SleeperHits      []RankedProduct `json:"sleeper_hits"`
	Duds             []RankedProduct `json:"duds"`
	SlowMovers       []RankedProduct `json:"slow_movers"`
}

// All returns every ranked product across tiers.
func (r ProductRankings) All() []RankedProduct {
	out := make([]RankedProduct, 0,
		len(r.StarPerformers)+len(r.RevenueChampions)+len(r.SleeperHits)+len(r.Duds)+len(r.SlowMovers))
	out = append(out, r.StarPerformers...)
	out = append(out, r.RevenueChampions...)
	out = append(out, r.SleeperHits...)
	out = append(out, r.Duds...)
	out = append(out, r.SlowMovers...)
	return out
}
