package models

import (
	"time"

	"github.com/google/uuid"
)

// DropStatus tracks the lifecycle of a drop event.
type DropStatus string

const (
	DropStatusScheduled DropStatus = "scheduled"
	DropStatusActive    DropStatus = "active"
	DropStatusCompleted DropStatus = "completed"
)

// Drop is a merchant-defined sales window analyzed as a single event.
type Drop struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID    string     `gorm:"column:shop_id;not null;index"`
	Name      string     `gorm:"column:name;not null"`
	StartsAt  time.Time  `gorm:"column:starts_at;not null"`
	EndsAt    time.Time  `gorm:"column:ends_at;not null"`
	Status    DropStatus `gorm:"column:status;not null;default:'scheduled'"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Drop) TableName() string { return "drops" }
