package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubInventoryRepo struct {
	levels map[string]models.InventoryLevel
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{levels: make(map[string]models.InventoryLevel)}
}

func (s *stubInventoryRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubInventoryRepo) Upsert(ctx context.Context, levels []models.InventoryLevel) error {
	for _, lvl := range levels {
		s.levels[lvl.DropID.String()+"/"+lvl.VariantID] = lvl
	}
	return nil
}

func (s *stubInventoryRepo) ListByDrop(ctx context.Context, dropID uuid.UUID) ([]models.InventoryLevel, error) {
	var out []models.InventoryLevel
	for _, lvl := range s.levels {
		if lvl.DropID == dropID {
			out = append(out, lvl)
		}
	}
	return out, nil
}

func (s *stubInventoryRepo) DeleteByDrop(ctx context.Context, dropID uuid.UUID) error {
	for key, lvl := range s.levels {
		if lvl.DropID == dropID {
			delete(s.levels, key)
		}
	}
	return nil
}

func TestSetLevelsRejectsNegativeQuantity(t *testing.T) {
	svc, err := NewService(newStubInventoryRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	err = svc.SetLevels(context.Background(), uuid.New(),
		[]LevelInput{{VariantID: "v1", Quantity: -1}}, models.InventorySourceManual)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBaselineMapShape(t *testing.T) {
	repo := newStubInventoryRepo()
	svc, _ := NewService(repo)
	dropID := uuid.New()

	err := svc.SetLevels(context.Background(), dropID, []LevelInput{
		{VariantID: "v1", Quantity: 50},
		{VariantID: "v2", Quantity: 0},
	}, models.InventorySourceManual)
	if err != nil {
		t.Fatalf("set levels: %v", err)
	}

	baseline, err := svc.BaselineMap(context.Background(), dropID)
	if err != nil {
		t.Fatalf("baseline map: %v", err)
	}
	if len(baseline) != 2 || baseline["v1"] != 50 || baseline["v2"] != 0 {
		t.Fatalf("baseline = %v", baseline)
	}
}

func TestImportCSVStoresValidRowsAndReportsBadOnes(t *testing.T) {
	repo := newStubInventoryRepo()
	svc, _ := NewService(repo)
	dropID := uuid.New()

	input := "variant_id,quantity\nv1,50\nv2,-3\nv3,25\n"
	stored, err := svc.ImportCSV(context.Background(), dropID, strings.NewReader(input))
	if stored != 2 {
		t.Fatalf("stored = %d, want 2", stored)
	}
	if err == nil {
		t.Fatalf("expected row errors to be reported")
	}

	baseline, mapErr := svc.BaselineMap(context.Background(), dropID)
	if mapErr != nil {
		t.Fatalf("baseline map: %v", mapErr)
	}
	if baseline["v1"] != 50 || baseline["v3"] != 25 {
		t.Fatalf("baseline = %v", baseline)
	}
	for key, lvl := range repo.levels {
		if lvl.Source != models.InventorySourceCSV {
			t.Fatalf("level %s source = %s, want csv", key, lvl.Source)
		}
	}
}
