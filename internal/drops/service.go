package drops

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

// Service defines drop lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateDropInput) (*models.Drop, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Drop, error)
	List(ctx context.Context, shopID string) ([]models.Drop, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateDropInput) (*models.Drop, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a drop service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("drops repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateDropInput) (*models.Drop, error) {
	if input.ShopID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drop name required")
	}
	if err := validateWindow(input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}

	drop := &models.Drop{
		ShopID:   input.ShopID,
		Name:     input.Name,
		StartsAt: input.StartsAt.UTC(),
		EndsAt:   input.EndsAt.UTC(),
		Status:   statusFor(input.StartsAt, input.EndsAt),
	}

	created, err := s.repo.Create(ctx, drop)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create drop")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Drop, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drop id required")
	}
	drop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "drop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load drop")
	}
	return drop, nil
}

func (s *service) List(ctx context.Context, shopID string) ([]models.Drop, error) {
	if shopID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}
	out, err := s.repo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drops")
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateDropInput) (*models.Drop, error) {
	drop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	starts := drop.StartsAt
	ends := drop.EndsAt
	if input.StartsAt != nil {
		starts = input.StartsAt.UTC()
	}
	if input.EndsAt != nil {
		ends = input.EndsAt.UTC()
	}
	if err := validateWindow(starts, ends); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"starts_at": starts,
		"ends_at":   ends,
		"status":    statusFor(starts, ends),
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "drop name cannot be empty")
		}
		updates["name"] = *input.Name
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "drop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update drop")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "drop id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "drop not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete drop")
	}
	return nil
}

func validateWindow(starts, ends time.Time) error {
	if starts.IsZero() || ends.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "drop window start and end are required")
	}
	if !ends.After(starts) {
		return pkgerrors.New(pkgerrors.CodeValidation, "drop window end must be after start")
	}
	return nil
}

func statusFor(starts, ends time.Time) models.DropStatus {
	now := timeNowUTC()
	switch {
	case now.Before(starts):
		return models.DropStatusScheduled
	case now.After(ends):
		return models.DropStatusCompleted
	default:
		return models.DropStatusActive
	}
}
