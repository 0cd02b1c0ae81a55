package app

import (
	"context"
	"log"

	"github.com/gridplan/gridplan/internal/domain"
)

type ObjectRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetZone(ctx context.Context, zoneID string) (domain.Zone, error)
	GetAllocationForUpdate(ctx context.Context, allocationID string) (domain.ZoneAllocation, error)
	CountObjects(ctx context.Context, allocationID string) (int, error)
	CreateObject(ctx context.Context, obj domain.ZoneObject) error
	GetObject(ctx context.Context, objectID string) (domain.ZoneObject, error)
	UpdateObject(ctx context.Context, objectID string, x, y, rotation *float64) error
	DeleteObject(ctx context.Context, objectID string) error
	ListObjectsByZone(ctx context.Context, zoneID string) ([]domain.ZoneObject, error)
}

// ObjectService owns concrete placed instances. The reserved quantity on
// an allocation never changes here; the placed count is derived by
// counting object rows inside the same transaction as the insert, so an
// allocation can never hold more objects than it reserves.
type ObjectService struct {
	repo   ObjectRepository
	logger *log.Logger
}

func NewObjectService(repo ObjectRepository, logger *log.Logger) *ObjectService {
	if logger == nil {
		logger = log.Default()
	}
	return &ObjectService{repo: repo, logger: logger}
}

type PlaceObjectInput struct {
	ZoneID       string
	AllocationID string
	X            float64
	Y            float64
	Rotation     float64
}

// Place inserts one object against an allocation, consuming one unit of
// its reserved quantity.
func (s *ObjectService) Place(ctx context.Context, in PlaceObjectInput) (domain.ZoneObject, error) {
	if in.ZoneID == "" || in.AllocationID == "" {
		return domain.ZoneObject{}, domain.ErrInvalidID
	}

	var result domain.ZoneObject
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		alloc, err := s.repo.GetAllocationForUpdate(txCtx, in.AllocationID)
		if err != nil {
			return err
		}
		if alloc.ZoneID != in.ZoneID {
			return domain.ErrZoneMismatch
		}

		placed, err := s.repo.CountObjects(txCtx, alloc.ID)
		if err != nil {
			return err
		}
		remaining := alloc.Quantity - placed
		if remaining <= 0 {
			return &domain.CapacityError{Available: clampZero(remaining)}
		}

		obj := domain.ZoneObject{
			ID:           newID(),
			ZoneID:       in.ZoneID,
			AllocationID: in.AllocationID,
			X:            in.X,
			Y:            in.Y,
			Rotation:     in.Rotation,
		}
		if err := s.repo.CreateObject(txCtx, obj); err != nil {
			return err
		}
		result = obj
		return nil
	})
	if err != nil {
		return domain.ZoneObject{}, err
	}
	return result, nil
}

type MoveObjectInput struct {
	X        *float64
	Y        *float64
	Rotation *float64
}

func (in MoveObjectInput) empty() bool {
	return in.X == nil && in.Y == nil && in.Rotation == nil
}

// Move applies a partial update to an object's position and rotation.
// Absent fields are left untouched.
func (s *ObjectService) Move(ctx context.Context, zoneID, objectID string, in MoveObjectInput) (domain.ZoneObject, error) {
	if zoneID == "" || objectID == "" {
		return domain.ZoneObject{}, domain.ErrInvalidID
	}
	if in.empty() {
		return domain.ZoneObject{}, domain.ErrEmptyUpdate
	}

	var result domain.ZoneObject
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		obj, err := s.repo.GetObject(txCtx, objectID)
		if err != nil {
			return err
		}
		if obj.ZoneID != zoneID {
			return domain.ErrZoneMismatch
		}
		if err := s.repo.UpdateObject(txCtx, objectID, in.X, in.Y, in.Rotation); err != nil {
			return err
		}
		if in.X != nil {
			obj.X = *in.X
		}
		if in.Y != nil {
			obj.Y = *in.Y
		}
		if in.Rotation != nil {
			obj.Rotation = *in.Rotation
		}
		result = obj
		return nil
	})
	if err != nil {
		return domain.ZoneObject{}, err
	}
	return result, nil
}

// Remove deletes an object, releasing one unit back to its allocation.
// Releasing is implicit under the derived-count model; if the remaining
// objects still exceed the reserved quantity (possible after a lax
// re-allocation path in older data) the drift is logged, not hidden.
func (s *ObjectService) Remove(ctx context.Context, zoneID, objectID string) error {
	if zoneID == "" || objectID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		obj, err := s.repo.GetObject(txCtx, objectID)
		if err != nil {
			return err
		}
		if obj.ZoneID != zoneID {
			return domain.ErrZoneMismatch
		}
		alloc, err := s.repo.GetAllocationForUpdate(txCtx, obj.AllocationID)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteObject(txCtx, obj.ID); err != nil {
			return err
		}
		placed, err := s.repo.CountObjects(txCtx, alloc.ID)
		if err != nil {
			return err
		}
		if placed > alloc.Quantity {
			s.logger.Printf(
				"WARN: allocation %s holds %d placed objects above its reserved quantity %d",
				alloc.ID, placed, alloc.Quantity,
			)
		}
		return nil
	})
}

// ListByZone returns every object placed in a zone. Pure read.
func (s *ObjectService) ListByZone(ctx context.Context, zoneID string) ([]domain.ZoneObject, error) {
	if zoneID == "" {
		return nil, domain.ErrInvalidID
	}
	if _, err := s.repo.GetZone(ctx, zoneID); err != nil {
		return nil, err
	}
	return s.repo.ListObjectsByZone(ctx, zoneID)
}
