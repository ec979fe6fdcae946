package models

import (
	"time"

	"github.com/google/uuid"
)

// InventorySource records how a baseline row entered the snapshot.
type InventorySource string

const (
	InventorySourceAuto   InventorySource = "auto"
	InventorySourceManual InventorySource = "manual"
	InventorySourceCSV    InventorySource = "csv"
)

// InventoryLevel is one row of the baseline inventory snapshot captured at
// drop creation. The snapshot is the sell-through denominator and never
// changes once the drop starts.
type InventoryLevel struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DropID    uuid.UUID       `gorm:"column:drop_id;type:uuid;not null;uniqueIndex:idx_inventory_drop_variant"`
	VariantID string          `gorm:"column:variant_id;not null;uniqueIndex:idx_inventory_drop_variant"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Source    InventorySource `gorm:"column:source;not null;default:'auto'"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (InventoryLevel) TableName() string { return "inventory_levels" }
