package inventory

import (
	"context"

	"github.com/angelmondragon/dropsight-backend/internal/repo"
	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	base repo.Base
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

func (r *repository) Upsert(ctx context.Context, levels []models.InventoryLevel) error {
	if len(levels) == 0 {
		return nil
	}
	return r.base.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "drop_id"}, {Name: "variant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "source", "updated_at"}),
		}).
		Create(&levels).Error
}

func (r *repository) ListByDrop(ctx context.Context, dropID uuid.UUID) ([]models.InventoryLevel, error) {
	var out []models.InventoryLevel
	err := r.base.DB(ctx).
		Where("drop_id = ?", dropID).
		Order("variant_id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) DeleteByDrop(ctx context.Context, dropID uuid.UUID) error {
	return r.base.DB(ctx).
		Where("drop_id = ?", dropID).
		Delete(&models.InventoryLevel{}).Error
}
