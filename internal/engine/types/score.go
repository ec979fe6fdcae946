package types

// Component names, stable across API responses.
const (
	ComponentVelocity       = "velocity"
	ComponentSellThrough    = "sell_through"
	ComponentRevenue        = "revenue"
	ComponentEngagement     = "engagement"
	ComponentDiversity      = "diversity"
	ComponentTimeEfficiency = "time_efficiency"
)

// ComponentScore is one weighted slice of the overall drop score.
type ComponentScore struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"max_score"`
	Percent     float64 `json:"percent"`
	Description string  `json:"description"`
}

// InsightType classifies the tone of a generated insight.
type InsightType string

const (
	InsightSuccess  InsightType = "success"
	InsightWarning  InsightType = "warning"
	InsightCritical InsightType = "critical"
)

// Insight is a human-readable takeaway derived from the component scores.
// Priority runs 1-5 with 5 the most urgent.
type Insight struct {
	Type     InsightType `json:"type"`
	Message  string      `json:"message"`
	Priority int         `json:"priority"`
}

// DropScore is the normalized performance score for one drop. Overall always
// equals the sum of the component scores and stays within [0, 100].
type DropScore struct {
	Overall    float64          `json:"overall"`
	Grade      string           `json:"grade"`
	Components []ComponentScore `json:"components"`
	Insights   []Insight        `json:"insights"`
}

// Component returns the named component, if present.
func (s DropScore) Component(name string) (ComponentScore, bool) {
	for _, c := range s.Components {
		if c.Name == name {
			return c, true
		}
	}
	return ComponentScore{}, false
}
