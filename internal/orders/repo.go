package orders

import (
	"context"

	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
	"github.com/angelmondragon/dropsight-backend/internal/repo"
	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads synced orders for analysis. Order rows are written by the
// out-of-process sync job; this service never mutates them.
type Repository interface {
	ListInWindow(ctx context.Context, shopID string, window types.Window) ([]types.Order, error)
}

type repository struct {
	base repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) ListInWindow(ctx context.Context, shopID string, window types.Window) ([]types.Order, error) {
	var rows []models.ShopOrder
	err := r.base.DB(ctx).
		Preload("LineItems").
		Preload("Refunds").
		Where("shop_id = ?", shopID).
		Where("placed_at >= ? AND placed_at <= ?", window.Start, window.End).
		Order("placed_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]types.Order, 0, len(rows))
	for i := range rows {
		out = append(out, Hydrate(&rows[i]))
	}
	return out, nil
}
