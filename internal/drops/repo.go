package drops

import (
	"context"

	"github.com/angelmondragon/dropsight-backend/internal/repo"
	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	base repo.Base
}

// NewRepository builds a drops repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

func (r *repository) Create(ctx context.Context, drop *models.Drop) (*models.Drop, error) {
	if err := r.base.DB(ctx).Create(drop).Error; err != nil {
		return nil, err
	}
	return drop, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Drop, error) {
	var drop models.Drop
	err := r.base.DB(ctx).
		Where("id = ?", id).
		First(&drop).Error
	if err != nil {
		return nil, err
	}
	return &drop, nil
}

func (r *repository) ListByShop(ctx context.Context, shopID string) ([]models.Drop, error) {
	var out []models.Drop
	err := r.base.DB(ctx).
		Where("shop_id = ?", shopID).
		Order("starts_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.base.DB(ctx).
		Model(&models.Drop{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.base.DB(ctx).
		Where("id = ?", id).
		Delete(&models.Drop{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
