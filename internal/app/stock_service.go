package app

import (
	"context"

	"github.com/gridplan/gridplan/internal/domain"
)

type StockRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateStock(ctx context.Context, stock domain.FloorStock) error
	GetStock(ctx context.Context, stockID string) (domain.FloorStock, error)
	GetStockForUpdate(ctx context.Context, stockID string) (domain.FloorStock, error)
	UpdateStockCount(ctx context.Context, stockID string, count int) error
	SumAllocations(ctx context.Context, floorStockID string) (int, error)
	ListStockByFloor(ctx context.Context, floorID string) ([]StockEntry, error)
	DeleteObjectsByStock(ctx context.Context, stockID string) error
	DeleteAllocationsByStock(ctx context.Context, stockID string) error
	DeleteStock(ctx context.Context, stockID string) error
}

// StockEntry is a stock row joined with its catalog item and allocated sum.
type StockEntry struct {
	Stock domain.FloorStock
	Item  domain.CatalogItem
	Used  int
}

// StockService owns the floor stock ledger: per (floor, catalog item)
// totals that zone allocations draw from.
type StockService struct {
	repo StockRepository
}

func NewStockService(repo StockRepository) *StockService {
	return &StockService{repo: repo}
}

type CreateStockInput struct {
	FloorID   string
	CatalogID string
	Count     int
}

func (s *StockService) Create(ctx context.Context, in CreateStockInput) (domain.FloorStock, error) {
	if in.FloorID == "" || in.CatalogID == "" {
		return domain.FloorStock{}, domain.ErrInvalidID
	}
	if in.Count < 0 {
		return domain.FloorStock{}, domain.ErrInvalidCount
	}

	stock := domain.FloorStock{
		ID:        newID(),
		FloorID:   in.FloorID,
		CatalogID: in.CatalogID,
		Count:     in.Count,
	}
	if err := s.repo.CreateStock(ctx, stock); err != nil {
		return domain.FloorStock{}, err
	}
	return stock, nil
}

// UpdateCount sets a new floor total. The count is a planning figure:
// it may legitimately drop below what zones have already allocated, and
// capacity is re-checked only when allocations change.
func (s *StockService) UpdateCount(ctx context.Context, stockID string, count int) (domain.FloorStock, error) {
	if stockID == "" {
		return domain.FloorStock{}, domain.ErrInvalidID
	}
	if count < 0 {
		return domain.FloorStock{}, domain.ErrInvalidCount
	}
	var updated domain.FloorStock
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		stock, err := s.repo.GetStockForUpdate(txCtx, stockID)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateStockCount(txCtx, stockID, count); err != nil {
			return err
		}
		stock.Count = count
		updated = stock
		return nil
	})
	if err != nil {
		return domain.FloorStock{}, err
	}
	return updated, nil
}

// Delete removes a stock entry together with every allocation drawn from
// it and every object placed against those allocations. The cascade runs
// leaf-to-root inside one transaction so no orphan rows survive a failure.
func (s *StockService) Delete(ctx context.Context, stockID string) error {
	if stockID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetStockForUpdate(txCtx, stockID); err != nil {
			return err
		}
		if err := s.repo.DeleteObjectsByStock(txCtx, stockID); err != nil {
			return err
		}
		if err := s.repo.DeleteAllocationsByStock(txCtx, stockID); err != nil {
			return err
		}
		return s.repo.DeleteStock(txCtx, stockID)
	})
}

// Usage reports the committed capacity picture for one stock entry.
func (s *StockService) Usage(ctx context.Context, stockID string) (domain.StockUsage, error) {
	if stockID == "" {
		return domain.StockUsage{}, domain.ErrInvalidID
	}
	stock, err := s.repo.GetStock(ctx, stockID)
	if err != nil {
		return domain.StockUsage{}, err
	}
	used, err := s.repo.SumAllocations(ctx, stock.ID)
	if err != nil {
		return domain.StockUsage{}, err
	}
	return domain.NewStockUsage(stock.Count, used), nil
}

func (s *StockService) ListByFloor(ctx context.Context, floorID string) ([]StockEntry, error) {
	if floorID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListStockByFloor(ctx, floorID)
}
