package analytics

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/angelmondragon/dropsight-backend/internal/drops"
	"github.com/angelmondragon/dropsight-backend/internal/engine"
	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
	"github.com/angelmondragon/dropsight-backend/internal/inventory"
	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubDropService struct {
	drop *models.Drop
}

func (s *stubDropService) Create(ctx context.Context, input drops.CreateDropInput) (*models.Drop, error) {
	panic("not implemented")
}

func (s *stubDropService) Get(ctx context.Context, id uuid.UUID) (*models.Drop, error) {
	if s.drop == nil || s.drop.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "drop not found")
	}
	return s.drop, nil
}

func (s *stubDropService) List(ctx context.Context, shopID string) ([]models.Drop, error) {
	panic("not implemented")
}

func (s *stubDropService) Update(ctx context.Context, id uuid.UUID, input drops.UpdateDropInput) (*models.Drop, error) {
	panic("not implemented")
}

func (s *stubDropService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("not implemented")
}

type stubOrderRepo struct {
	orders []types.Order
	shopID string
	window types.Window
}

func (s *stubOrderRepo) ListInWindow(ctx context.Context, shopID string, window types.Window) ([]types.Order, error) {
	s.shopID = shopID
	s.window = window
	return s.orders, nil
}

type stubInventoryService struct {
	baseline map[string]int
}

func (s *stubInventoryService) SetLevels(ctx context.Context, dropID uuid.UUID, levels []inventory.LevelInput, source models.InventorySource) error {
	panic("not implemented")
}

func (s *stubInventoryService) ImportCSV(ctx context.Context, dropID uuid.UUID, r io.Reader) (int, error) {
	panic("not implemented")
}

func (s *stubInventoryService) List(ctx context.Context, dropID uuid.UUID) ([]models.InventoryLevel, error) {
	panic("not implemented")
}

func (s *stubInventoryService) BaselineMap(ctx context.Context, dropID uuid.UUID) (map[string]int, error) {
	return s.baseline, nil
}

func TestAnalyzeDropWiresStoredData(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	drop := &models.Drop{
		ID:       uuid.New(),
		ShopID:   "shop-1",
		Name:     "Summer Drop",
		StartsAt: start,
		EndsAt:   start.Add(48 * time.Hour),
	}
	orderRepo := &stubOrderRepo{
		orders: []types.Order{
			{
				ID:         "o1",
				CreatedAt:  start.Add(time.Hour),
				TotalPrice: decimal.RequireFromString("30.00"),
				LineItems: []types.LineItem{
					{ProductID: "p1", VariantID: "v1", Title: "Tee", Price: decimal.RequireFromString("30.00"), Quantity: 1},
				},
			},
		},
	}

	svc, err := NewService(
		&stubDropService{drop: drop},
		orderRepo,
		&stubInventoryService{baseline: map[string]int{"v1": 10}},
		engine.New(engine.Config{}, nil, nil),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	analysis, err := svc.AnalyzeDrop(context.Background(), drop.ID)
	if err != nil {
		t.Fatalf("analyze drop: %v", err)
	}
	if orderRepo.shopID != "shop-1" {
		t.Fatalf("orders loaded for shop %q", orderRepo.shopID)
	}
	if !orderRepo.window.Start.Equal(drop.StartsAt) || !orderRepo.window.End.Equal(drop.EndsAt) {
		t.Fatalf("orders loaded for window %+v", orderRepo.window)
	}
	if len(analysis.Aggregates.Variants) != 1 {
		t.Fatalf("variants = %d, want 1", len(analysis.Aggregates.Variants))
	}
	if analysis.Aggregates.Variants[0].Baseline != 10 {
		t.Fatalf("baseline = %d, want snapshot value 10", analysis.Aggregates.Variants[0].Baseline)
	}
}

func TestAnalyzeDropPropagatesNotFound(t *testing.T) {
	svc, _ := NewService(
		&stubDropService{},
		&stubOrderRepo{},
		&stubInventoryService{},
		engine.New(engine.Config{}, nil, nil),
	)
	_, err := svc.AnalyzeDrop(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
