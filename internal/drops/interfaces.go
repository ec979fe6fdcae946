package drops

import (
	"context"

	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for drop records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, drop *models.Drop) (*models.Drop, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Drop, error)
	ListByShop(ctx context.Context, shopID string) ([]models.Drop, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}
