package inventory

import (
	"context"

	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for baseline inventory snapshots.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, levels []models.InventoryLevel) error
	ListByDrop(ctx context.Context, dropID uuid.UUID) ([]models.InventoryLevel, error)
	DeleteByDrop(ctx context.Context, dropID uuid.UUID) error
}
