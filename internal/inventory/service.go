package inventory

import (
	"context"
	"fmt"
	"io"

	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service manages the baseline inventory snapshot for a drop. The snapshot is
// the sell-through denominator: it can be replaced or patched before analysis,
// and is read as a plain variant-id → quantity map by the engine's callers.
type Service interface {
	SetLevels(ctx context.Context, dropID uuid.UUID, levels []LevelInput, source models.InventorySource) error
	ImportCSV(ctx context.Context, dropID uuid.UUID, r io.Reader) (int, error)
	List(ctx context.Context, dropID uuid.UUID) ([]models.InventoryLevel, error)
	BaselineMap(ctx context.Context, dropID uuid.UUID) (map[string]int, error)
}

type service struct {
	repo Repository
}

// NewService builds an inventory service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) SetLevels(ctx context.Context, dropID uuid.UUID, levels []LevelInput, source models.InventorySource) error {
	if dropID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "drop id required")
	}
	if len(levels) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one inventory level required")
	}

	rows := make([]models.InventoryLevel, 0, len(levels))
	for _, lvl := range levels {
		if lvl.VariantID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
		}
		if lvl.Quantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("quantity for variant %s must not be negative", lvl.VariantID))
		}
		rows = append(rows, models.InventoryLevel{
			DropID:    dropID,
			VariantID: lvl.VariantID,
			Quantity:  lvl.Quantity,
			Source:    source,
		})
	}

	if err := s.repo.Upsert(ctx, rows); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store inventory levels")
	}
	return nil
}

// ImportCSV parses and stores a `variant_id,quantity` file. Valid rows are
// stored even when some rows are rejected; the returned count reflects what
// was stored and the error (if any) lists the rejected lines.
func (s *service) ImportCSV(ctx context.Context, dropID uuid.UUID, r io.Reader) (int, error) {
	if dropID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "drop id required")
	}

	levels, parseErr := ParseCSV(r)
	if len(levels) == 0 {
		if parseErr != nil {
			return 0, parseErr
		}
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "csv contained no inventory rows")
	}

	if err := s.SetLevels(ctx, dropID, levels, models.InventorySourceCSV); err != nil {
		return 0, err
	}
	return len(levels), parseErr
}

func (s *service) List(ctx context.Context, dropID uuid.UUID) ([]models.InventoryLevel, error) {
	if dropID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drop id required")
	}
	out, err := s.repo.ListByDrop(ctx, dropID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory levels")
	}
	return out, nil
}

// BaselineMap returns the snapshot in the shape the analytics engine consumes.
func (s *service) BaselineMap(ctx context.Context, dropID uuid.UUID) (map[string]int, error) {
	levels, err := s.List(ctx, dropID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(levels))
	for _, lvl := range levels {
		out[lvl.VariantID] = lvl.Quantity
	}
	return out, nil
}
