package app

import (
	"context"

	"github.com/gridplan/gridplan/internal/domain"
)

type AllocationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetZone(ctx context.Context, zoneID string) (domain.Zone, error)
	GetStockForUpdate(ctx context.Context, stockID string) (domain.FloorStock, error)
	FindAllocation(ctx context.Context, zoneID, floorStockID string) (*domain.ZoneAllocation, error)
	GetAllocationForUpdate(ctx context.Context, allocationID string) (domain.ZoneAllocation, error)
	SumAllocations(ctx context.Context, floorStockID string) (int, error)
	SumAllocationsExcluding(ctx context.Context, floorStockID, allocationID string) (int, error)
	CountObjects(ctx context.Context, allocationID string) (int, error)
	CreateAllocation(ctx context.Context, alloc domain.ZoneAllocation) error
	UpdateAllocationQuantity(ctx context.Context, allocationID string, quantity int) error
	DeleteObjectsByAllocation(ctx context.Context, allocationID string) error
	DeleteAllocation(ctx context.Context, allocationID string) error
	ListZoneUsage(ctx context.Context, zoneID string) ([]domain.ZoneAllocationUsage, error)
}

// AllocationService owns the zone allocation ledger. Every capacity
// check runs with the floor-stock row locked so two concurrent requests
// against the same stock entry cannot both observe a stale allocated
// sum and overcommit together.
type AllocationService struct {
	repo AllocationRepository
}

func NewAllocationService(repo AllocationRepository) *AllocationService {
	return &AllocationService{repo: repo}
}

type AllocateInput struct {
	ZoneID       string
	FloorStockID string
	Quantity     int
}

// Allocate reserves quantity units of a stock entry for a zone. The
// request is all-or-nothing: when the remaining floor capacity is
// smaller than the request it fails with a CapacityError carrying the
// available figure, and nothing is reserved.
func (s *AllocationService) Allocate(ctx context.Context, in AllocateInput) (domain.ZoneAllocation, error) {
	if in.ZoneID == "" || in.FloorStockID == "" {
		return domain.ZoneAllocation{}, domain.ErrInvalidID
	}
	if in.Quantity < 0 {
		return domain.ZoneAllocation{}, domain.ErrInvalidQuantity
	}

	var result domain.ZoneAllocation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		stock, err := s.repo.GetStockForUpdate(txCtx, in.FloorStockID)
		if err != nil {
			return err
		}
		zone, err := s.repo.GetZone(txCtx, in.ZoneID)
		if err != nil {
			return err
		}
		if zone.FloorID != stock.FloorID {
			return domain.ErrFloorMismatch
		}

		existing, err := s.repo.FindAllocation(txCtx, in.ZoneID, in.FloorStockID)
		if err != nil {
			return err
		}
		if existing != nil {
			// Changing an existing reservation goes through Reallocate;
			// a second create would silently double it.
			return domain.ErrAllocationAlreadyExists
		}

		used, err := s.repo.SumAllocations(txCtx, in.FloorStockID)
		if err != nil {
			return err
		}
		available := stock.Count - used
		if in.Quantity > available {
			return &domain.CapacityError{Available: clampZero(available)}
		}

		alloc := domain.ZoneAllocation{
			ID:           newID(),
			ZoneID:       in.ZoneID,
			FloorStockID: in.FloorStockID,
			Quantity:     in.Quantity,
		}
		if err := s.repo.CreateAllocation(txCtx, alloc); err != nil {
			return err
		}
		result = alloc
		return nil
	})
	if err != nil {
		return domain.ZoneAllocation{}, err
	}
	return result, nil
}

// Reallocate replaces an allocation's reserved quantity. The capacity
// check excludes the allocation's own current quantity: only what other
// zones hold counts against the floor total.
func (s *AllocationService) Reallocate(ctx context.Context, zoneID, allocationID string, quantity int) (domain.ZoneAllocation, error) {
	if zoneID == "" || allocationID == "" {
		return domain.ZoneAllocation{}, domain.ErrInvalidID
	}
	if quantity < 0 {
		return domain.ZoneAllocation{}, domain.ErrInvalidQuantity
	}

	var result domain.ZoneAllocation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		alloc, err := s.repo.GetAllocationForUpdate(txCtx, allocationID)
		if err != nil {
			return err
		}
		if alloc.ZoneID != zoneID {
			return domain.ErrZoneMismatch
		}
		stock, err := s.repo.GetStockForUpdate(txCtx, alloc.FloorStockID)
		if err != nil {
			return err
		}

		usedByOthers, err := s.repo.SumAllocationsExcluding(txCtx, alloc.FloorStockID, alloc.ID)
		if err != nil {
			return err
		}
		availableForThis := stock.Count - usedByOthers
		if quantity > availableForThis {
			return &domain.CapacityError{Available: clampZero(availableForThis)}
		}

		placed, err := s.repo.CountObjects(txCtx, alloc.ID)
		if err != nil {
			return err
		}
		if quantity < placed {
			return domain.ErrAllocationInUse
		}

		if err := s.repo.UpdateAllocationQuantity(txCtx, alloc.ID, quantity); err != nil {
			return err
		}
		alloc.Quantity = quantity
		result = alloc
		return nil
	})
	if err != nil {
		return domain.ZoneAllocation{}, err
	}
	return result, nil
}

// Deallocate removes an allocation and every object placed against it,
// atomically.
func (s *AllocationService) Deallocate(ctx context.Context, zoneID, allocationID string) error {
	if zoneID == "" || allocationID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		alloc, err := s.repo.GetAllocationForUpdate(txCtx, allocationID)
		if err != nil {
			return err
		}
		if alloc.ZoneID != zoneID {
			return domain.ErrZoneMismatch
		}
		if err := s.repo.DeleteObjectsByAllocation(txCtx, alloc.ID); err != nil {
			return err
		}
		return s.repo.DeleteAllocation(txCtx, alloc.ID)
	})
}

// ZoneUsage lists a zone's allocations with catalog metadata and placed
// counts. Pure read.
func (s *AllocationService) ZoneUsage(ctx context.Context, zoneID string) ([]domain.ZoneAllocationUsage, error) {
	if zoneID == "" {
		return nil, domain.ErrInvalidID
	}
	if _, err := s.repo.GetZone(ctx, zoneID); err != nil {
		return nil, err
	}
	return s.repo.ListZoneUsage(ctx, zoneID)
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
