package analytics

import (
	"context"
	"fmt"

	"github.com/angelmondragon/dropsight-backend/internal/drops"
	"github.com/angelmondragon/dropsight-backend/internal/engine"
	"github.com/angelmondragon/dropsight-backend/internal/inventory"
	"github.com/angelmondragon/dropsight-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service runs the analytics engine against a stored drop: it loads the
// drop's window, the orders placed inside it, and the baseline snapshot, then
// hands everything to the engine in one call.
type Service interface {
	AnalyzeDrop(ctx context.Context, dropID uuid.UUID) (*engine.Analysis, error)
}

type service struct {
	drops     drops.Service
	orders    orders.Repository
	inventory inventory.Service
	engine    *engine.Engine
}

// NewService builds an analytics service with the required dependencies.
func NewService(dropSvc drops.Service, orderRepo orders.Repository, invSvc inventory.Service, eng *engine.Engine) (Service, error) {
	if dropSvc == nil {
		return nil, fmt.Errorf("drops service required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if invSvc == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if eng == nil {
		return nil, fmt.Errorf("engine required")
	}
	return &service{
		drops:     dropSvc,
		orders:    orderRepo,
		inventory: invSvc,
		engine:    eng,
	}, nil
}

func (s *service) AnalyzeDrop(ctx context.Context, dropID uuid.UUID) (*engine.Analysis, error) {
	drop, err := s.drops.Get(ctx, dropID)
	if err != nil {
		return nil, err
	}
	window := drops.WindowOf(drop)

	orderList, err := s.orders.ListInWindow(ctx, drop.ShopID, window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders for drop")
	}

	baseline, err := s.inventory.BaselineMap(ctx, dropID)
	if err != nil {
		return nil, err
	}

	return s.engine.Analyze(ctx, engine.AnalyzeInput{
		Orders:   orderList,
		Baseline: baseline,
		Window:   window,
	})
}
