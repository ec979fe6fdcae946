package drops

import (
	"time"

	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
	"github.com/google/uuid"
)

// CreateDropInput carries everything needed to schedule a drop.
type CreateDropInput struct {
	ShopID   string    `json:"shop_id" validate:"required"`
	Name     string    `json:"name" validate:"required,max=200"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required"`
}

// UpdateDropInput carries the mutable drop fields. Nil fields are untouched.
type UpdateDropInput struct {
	Name     *string    `json:"name" validate:"omitempty,max=200"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// DropResponse is the API projection of a drop.
type DropResponse struct {
	ID        uuid.UUID         `json:"id"`
	ShopID    string            `json:"shop_id"`
	Name      string            `json:"name"`
	StartsAt  time.Time         `json:"starts_at"`
	EndsAt    time.Time         `json:"ends_at"`
	Status    models.DropStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ToResponse projects a model row into its API shape.
func ToResponse(drop *models.Drop) DropResponse {
	return DropResponse{
		ID:        drop.ID,
		ShopID:    drop.ShopID,
		Name:      drop.Name,
		StartsAt:  drop.StartsAt,
		EndsAt:    drop.EndsAt,
		Status:    drop.Status,
		CreatedAt: drop.CreatedAt,
		UpdatedAt: drop.UpdatedAt,
	}
}

// WindowOf returns the drop's analysis window.
func WindowOf(drop *models.Drop) types.Window {
	return types.Window{Start: drop.StartsAt, End: drop.EndsAt}
}
