// Package engine computes drop analytics as a pure function of the order
// list, baseline inventory, and drop window. It holds no state between calls
// and performs no I/O; callers re-invoke it with fresh data.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/dropsight-backend/internal/engine/ranking"
	"github.com/angelmondragon/dropsight-backend/internal/engine/rollup"
	"github.com/angelmondragon/dropsight-backend/internal/engine/scoring"
	"github.com/angelmondragon/dropsight-backend/internal/engine/sellthrough"
	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
	"github.com/angelmondragon/dropsight-backend/pkg/logger"
	"github.com/angelmondragon/dropsight-backend/pkg/metrics"
)

const stageAnalyze = "analyze"

// Config tunes the engine.
type Config struct {
	// DefaultBaseline is the assumed starting stock for variants missing from
	// the inventory snapshot. Zero or negative falls back to the package
	// default.
	DefaultBaseline int
}

// Engine wires the tracker, aggregator, scorer, and classifier behind a
// single entry point. It is safe for concurrent use.
type Engine struct {
	tracker    *sellthrough.Tracker
	aggregator *rollup.Aggregator
	scorer     *scoring.Scorer
	classifier *ranking.Classifier
	logg       *logger.Logger
	metrics    *metrics.EngineMetrics
}

// New builds an engine. Logger and metrics may be nil; the engine then runs
// silently.
func New(cfg Config, logg *logger.Logger, m *metrics.EngineMetrics) *Engine {
	return &Engine{
		tracker:    sellthrough.NewTracker(sellthrough.Config{DefaultBaseline: cfg.DefaultBaseline}),
		aggregator: rollup.NewAggregator(),
		scorer:     scoring.NewScorer(),
		classifier: ranking.NewClassifier(),
		logg:       logg,
		metrics:    m,
	}
}

// AnalyzeInput is one full snapshot of a drop: the orders inside its window,
// the baseline inventory map keyed by variant id, and the window itself.
type AnalyzeInput struct {
	Orders   []types.Order
	Baseline map[string]int
	Window   types.Window
}

// Analysis is the complete output of one engine run.
type Analysis struct {
	Aggregates types.Aggregates      `json:"aggregates"`
	Score      *types.DropScore      `json:"score"`
	Rankings   types.ProductRankings `json:"rankings"`
}

// Analyze runs the full pipeline: sell-through tracking, rollup aggregation,
// scoring, and tier classification. The only error is a missing or reversed
// drop window; degenerate data degrades to zero-valued results instead.
func (e *Engine) Analyze(ctx context.Context, in AnalyzeInput) (*Analysis, error) {
	started := time.Now()

	variants := e.tracker.Compute(in.Orders, in.Baseline)
	aggregates := e.aggregator.Aggregate(variants, in.Orders, in.Window)

	score, err := e.scorer.Score(scoring.Input{
		Variants:  variants,
		Orders:    in.Orders,
		Window:    in.Window,
		Sales:     aggregates.Sales,
		Customers: aggregates.Customers,
	})
	if err != nil {
		e.metrics.IncFailure(stageAnalyze)
		return nil, err
	}

	rankings := e.classifier.Rank(ranking.Input{
		Variants:   variants,
		Vendors:    aggregates.Vendors,
		Categories: aggregates.Categories,
		Window:     in.Window,
	})

	e.metrics.IncSuccess(stageAnalyze)
	e.metrics.ObserveDuration(stageAnalyze, time.Since(started))
	e.metrics.ObserveOrderCount(len(in.Orders))
	if e.logg != nil {
		e.logg.Info(ctx, fmt.Sprintf(
			"analyzed drop: %d orders, %d variants, score %.1f (%s)",
			len(in.Orders), len(variants), score.Overall, score.Grade))
	}

	return &Analysis{
		Aggregates: aggregates,
		Score:      score,
		Rankings:   rankings,
	}, nil
}
