package app

import (
	"context"
	"errors"
	"testing"

	"github.com/gridplan/gridplan/internal/domain"
)

func TestAllocationService_Allocate(t *testing.T) {
	t.Parallel()

	t.Run("splits floor stock across zones until exhausted", func(t *testing.T) {
		// FloorStock(count=5) for "chair" on floor 1, drawn by two zones.
		repo := newFakeAllocationRepo()
		repo.addZone(domain.Zone{ID: "zone-a", FloorID: "floor-1"})
		repo.addZone(domain.Zone{ID: "zone-b", FloorID: "floor-1"})
		repo.addStock(domain.FloorStock{ID: "stock-1", FloorID: "floor-1", CatalogID: "chair", Count: 5})
		svc := NewAllocationService(repo)

		first, err := svc.Allocate(context.Background(), AllocateInput{
			ZoneID: "zone-a", FloorStockID: "stock-1", Quantity: 3,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if first.Quantity != 3 {
			t.Fatalf("expected quantity 3, got %d", first.Quantity)
		}

		_, err = svc.Allocate(context.Background(), AllocateInput{
			ZoneID: "zone-b", FloorStockID: "stock-1", Quantity: 3,
		})
		ce, ok := domain.AsCapacityError(err)
		if !ok {
			t.Fatalf("expected CapacityError, got %v", err)
		}
		if ce.Available != 2 {
			t.Fatalf("expected available 2, got %d", ce.Available)
		}

		second, err := svc.Allocate(context.Background(), AllocateInput{
			ZoneID: "zone-b", FloorStockID: "stock-1", Quantity: 2,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if second.Quantity != 2 {
			t.Fatalf("expected quantity 2, got %d", second.Quantity)
		}
		if got := repo.sumFor("stock-1"); got != 5 {
			t.Fatalf("expected total allocated 5, got %d", got)
		}
	})

	t.Run("rejects second allocation for same zone and stock", func(t *testing.T) {
		repo := newFakeAllocationRepo()
		repo.addZone(domain.Zone{ID: "zone-a", FloorID: "floor-1"})
		repo.addStock(domain.FloorStock{ID: "stock-1", FloorID: "floor-1", Count: 10})
		svc := NewAllocationService(repo)

		if _, err := svc.Allocate(context.Background(), AllocateInput{
			ZoneID: "zone-a", FloorStockID: "stock-1", Quantity: 2,
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		_, err := svc.Allocate(context.Background(), AllocateInput{
			ZoneID: "zone-a", FloorStockID: "stock-1", Quantity: 1,
		})
		if !errors.Is(err, domain.ErrAllocationAlreadyExists) {
			t.Fatalf("expected ErrAllocationAlreadyExists, got %v", err)
		}
		if len(repo.allocs) != 1 {
			t.Fatalf("expected 1 allocation, got %d", len(repo.allocs))
		}
	})

	t.Run("rejects allocation into a zone on another floor", func(t *testing.T) {
		repo := newFakeAllocationRepo()
		repo.addZone(domain.Zone{ID: "zone-a", FloorID: "floor-2"})
		repo.addStock(domain.FloorStock{ID: "stock-1", FloorID: "floor-1", Count: 5})
		svc := NewAllocationService(repo)

		_, err := svc.Allocate(context.Background(), AllocateInput{
			ZoneID: "zone-a", FloorStockID: "stock-1", Quantity: 1,
		})
		if !errors.Is(err, domain.ErrFloorMismatch) {
			t.Fatalf("expected ErrFloorMismatch, got %v", err)
		}
	})

	t.Run("unknown stock entry", func(t *testing.T) {
		repo := newFakeAllocationRepo()
		repo.addZone(domain.Zone{ID: "zone-a", FloorID: "floor-1"})
		svc := NewAllocationService(repo)

		_, err := svc.Allocate(context.Background(), AllocateInput{
			ZoneID: "zone-a", FloorStockID: "missing", Quantity: 1,
		})
		if !errors.Is(err, domain.ErrStockNotFound) {
			t.Fatalf("expected ErrStockNotFound, got %v", err)
		}
	})

	t.Run("negative quantity", func(t *testing.T) {
		svc := NewAllocationService(newFakeAllocationRepo())
		_, err := svc.Allocate(context.Background(), AllocateInput{
			ZoneID: "zone-a", FloorStockID: "stock-1", Quantity: -1,
		})
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("zero quantity allocation is allowed", func(t *testing.T) {
		repo := newFakeAllocationRepo()
		repo.addZone(domain.Zone{ID: "zone-a", FloorID: "floor-1"})
		repo.addStock(domain.FloorStock{ID: "stock-1", FloorID: "floor-1", Count: 0})
		svc := NewAllocationService(repo)

		alloc, err := svc.Allocate(context.Background(), AllocateInput{
			ZoneID: "zone-a", FloorStockID: "stock-1", Quantity: 0,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if alloc.Quantity != 0 {
			t.Fatalf("expected quantity 0, got %d", alloc.Quantity)
		}
	})
}

func TestAllocationService_Reallocate(t *testing.T) {
	t.Parallel()

	// FloorStock(count=5); another zone holds 2, this allocation holds 3.
	setup := func() (*AllocationService, *fakeAllocationRepo) {
		repo := newFakeAllocationRepo()
		repo.addZone(domain.Zone{ID: "zone-a", FloorID: "floor-1"})
		repo.addZone(domain.Zone{ID: "zone-b", FloorID: "floor-1"})
		repo.addStock(domain.FloorStock{ID: "stock-1", FloorID: "floor-1", Count: 5})
		repo.addAllocation(domain.ZoneAllocation{ID: "alloc-a", ZoneID: "zone-a", FloorStockID: "stock-1", Quantity: 3})
		repo.addAllocation(domain.ZoneAllocation{ID: "alloc-b", ZoneID: "zone-b", FloorStockID: "stock-1", Quantity: 2})
		return NewAllocationService(repo), repo
	}

	t.Run("lowering succeeds within available-for-this", func(t *testing.T) {
		svc, repo := setup()
		alloc, err := svc.Reallocate(context.Background(), "zone-a", "alloc-a", 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if alloc.Quantity != 1 {
			t.Fatalf("expected quantity 1, got %d", alloc.Quantity)
		}
		if got := repo.allocs["alloc-a"].Quantity; got != 1 {
			t.Fatalf("expected persisted quantity 1, got %d", got)
		}
	})

	t.Run("raising beyond what others leave fails with available figure", func(t *testing.T) {
		svc, _ := setup()
		_, err := svc.Reallocate(context.Background(), "zone-a", "alloc-a", 4)
		ce, ok := domain.AsCapacityError(err)
		if !ok {
			t.Fatalf("expected CapacityError, got %v", err)
		}
		if ce.Available != 3 {
			t.Fatalf("expected available 3, got %d", ce.Available)
		}
	})

	t.Run("own quantity does not count against itself", func(t *testing.T) {
		svc, _ := setup()
		if _, err := svc.Reallocate(context.Background(), "zone-a", "alloc-a", 3); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("cannot drop below placed objects", func(t *testing.T) {
		svc, repo := setup()
		repo.addObject(domain.ZoneObject{ID: "obj-1", ZoneID: "zone-a", AllocationID: "alloc-a"})
		repo.addObject(domain.ZoneObject{ID: "obj-2", ZoneID: "zone-a", AllocationID: "alloc-a"})

		_, err := svc.Reallocate(context.Background(), "zone-a", "alloc-a", 1)
		if !errors.Is(err, domain.ErrAllocationInUse) {
			t.Fatalf("expected ErrAllocationInUse, got %v", err)
		}
	})

	t.Run("wrong zone", func(t *testing.T) {
		svc, _ := setup()
		_, err := svc.Reallocate(context.Background(), "zone-b", "alloc-a", 1)
		if !errors.Is(err, domain.ErrZoneMismatch) {
			t.Fatalf("expected ErrZoneMismatch, got %v", err)
		}
	})

	t.Run("unknown allocation", func(t *testing.T) {
		svc, _ := setup()
		_, err := svc.Reallocate(context.Background(), "zone-a", "missing", 1)
		if !errors.Is(err, domain.ErrAllocationNotFound) {
			t.Fatalf("expected ErrAllocationNotFound, got %v", err)
		}
	})
}

func TestAllocationService_Deallocate(t *testing.T) {
	t.Parallel()

	t.Run("removes allocation and its objects", func(t *testing.T) {
		repo := newFakeAllocationRepo()
		repo.addZone(domain.Zone{ID: "zone-a", FloorID: "floor-1"})
		repo.addStock(domain.FloorStock{ID: "stock-1", FloorID: "floor-1", Count: 5})
		repo.addAllocation(domain.ZoneAllocation{ID: "alloc-a", ZoneID: "zone-a", FloorStockID: "stock-1", Quantity: 2})
		repo.addObject(domain.ZoneObject{ID: "obj-1", ZoneID: "zone-a", AllocationID: "alloc-a"})
		repo.addObject(domain.ZoneObject{ID: "obj-2", ZoneID: "zone-a", AllocationID: "alloc-a"})
		svc := NewAllocationService(repo)

		if err := svc.Deallocate(context.Background(), "zone-a", "alloc-a"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(repo.allocs) != 0 {
			t.Fatalf("expected no allocations, got %d", len(repo.allocs))
		}
		if len(repo.objects) != 0 {
			t.Fatalf("expected no objects, got %d", len(repo.objects))
		}
	})

	t.Run("wrong zone leaves everything in place", func(t *testing.T) {
		repo := newFakeAllocationRepo()
		repo.addZone(domain.Zone{ID: "zone-a", FloorID: "floor-1"})
		repo.addStock(domain.FloorStock{ID: "stock-1", FloorID: "floor-1", Count: 5})
		repo.addAllocation(domain.ZoneAllocation{ID: "alloc-a", ZoneID: "zone-a", FloorStockID: "stock-1", Quantity: 2})
		svc := NewAllocationService(repo)

		err := svc.Deallocate(context.Background(), "zone-b", "alloc-a")
		if !errors.Is(err, domain.ErrZoneMismatch) {
			t.Fatalf("expected ErrZoneMismatch, got %v", err)
		}
		if len(repo.allocs) != 1 {
			t.Fatalf("expected allocation untouched, got %d", len(repo.allocs))
		}
	})
}

func TestAllocationService_ZoneUsage(t *testing.T) {
	t.Parallel()

	repo := newFakeAllocationRepo()
	repo.addZone(domain.Zone{ID: "zone-a", FloorID: "floor-1"})
	repo.addStock(domain.FloorStock{ID: "stock-1", FloorID: "floor-1", CatalogID: "chair", Count: 5})
	repo.addAllocation(domain.ZoneAllocation{ID: "alloc-a", ZoneID: "zone-a", FloorStockID: "stock-1", Quantity: 3})
	repo.addObject(domain.ZoneObject{ID: "obj-1", ZoneID: "zone-a", AllocationID: "alloc-a"})
	svc := NewAllocationService(repo)

	first, err := svc.ZoneUsage(context.Background(), "zone-a")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(first) != 1 || first[0].Placed != 1 || first[0].Remaining() != 2 {
		t.Fatalf("unexpected usage: %+v", first)
	}

	// Reads are idempotent: a second call with no writes in between
	// reports the same figures.
	second, err := svc.ZoneUsage(context.Background(), "zone-a")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(second) != 1 || second[0] != first[0] {
		t.Fatalf("expected identical usage, got %+v vs %+v", first, second)
	}

	if _, err := svc.ZoneUsage(context.Background(), "missing"); !errors.Is(err, domain.ErrZoneNotFound) {
		t.Fatalf("expected ErrZoneNotFound, got %v", err)
	}
}

// fakeAllocationRepo is an in-memory AllocationRepository. WithTx runs
// fn directly; service tests cover ordering and arithmetic, the real
// transactional behavior is covered by the postgres package tests.
type fakeAllocationRepo struct {
	zones   map[string]domain.Zone
	stocks  map[string]domain.FloorStock
	allocs  map[string]domain.ZoneAllocation
	objects map[string]domain.ZoneObject
}

func newFakeAllocationRepo() *fakeAllocationRepo {
	return &fakeAllocationRepo{
		zones:   make(map[string]domain.Zone),
		stocks:  make(map[string]domain.FloorStock),
		allocs:  make(map[string]domain.ZoneAllocation),
		objects: make(map[string]domain.ZoneObject),
	}
}

func (f *fakeAllocationRepo) addZone(z domain.Zone) { f.zones[z.ID] = z }

func (f *fakeAllocationRepo) addStock(s domain.FloorStock) { f.stocks[s.ID] = s }

func (f *fakeAllocationRepo) addAllocation(a domain.ZoneAllocation) { f.allocs[a.ID] = a }

func (f *fakeAllocationRepo) addObject(o domain.ZoneObject) { f.objects[o.ID] = o }

func (f *fakeAllocationRepo) sumFor(floorStockID string) int {
	total := 0
	for _, a := range f.allocs {
		if a.FloorStockID == floorStockID {
			total += a.Quantity
		}
	}
	return total
}

func (f *fakeAllocationRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeAllocationRepo) GetZone(_ context.Context, zoneID string) (domain.Zone, error) {
	z, ok := f.zones[zoneID]
	if !ok {
		return domain.Zone{}, domain.ErrZoneNotFound
	}
	return z, nil
}

func (f *fakeAllocationRepo) GetStockForUpdate(_ context.Context, stockID string) (domain.FloorStock, error) {
	s, ok := f.stocks[stockID]
	if !ok {
		return domain.FloorStock{}, domain.ErrStockNotFound
	}
	return s, nil
}

func (f *fakeAllocationRepo) FindAllocation(_ context.Context, zoneID, floorStockID string) (*domain.ZoneAllocation, error) {
	for _, a := range f.allocs {
		if a.ZoneID == zoneID && a.FloorStockID == floorStockID {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAllocationRepo) GetAllocationForUpdate(_ context.Context, allocationID string) (domain.ZoneAllocation, error) {
	a, ok := f.allocs[allocationID]
	if !ok {
		return domain.ZoneAllocation{}, domain.ErrAllocationNotFound
	}
	return a, nil
}

func (f *fakeAllocationRepo) SumAllocations(_ context.Context, floorStockID string) (int, error) {
	return f.sumFor(floorStockID), nil
}

func (f *fakeAllocationRepo) SumAllocationsExcluding(_ context.Context, floorStockID, allocationID string) (int, error) {
	total := 0
	for _, a := range f.allocs {
		if a.FloorStockID == floorStockID && a.ID != allocationID {
			total += a.Quantity
		}
	}
	return total, nil
}

func (f *fakeAllocationRepo) CountObjects(_ context.Context, allocationID string) (int, error) {
	total := 0
	for _, o := range f.objects {
		if o.AllocationID == allocationID {
			total++
		}
	}
	return total, nil
}

func (f *fakeAllocationRepo) CreateAllocation(_ context.Context, alloc domain.ZoneAllocation) error {
	for _, a := range f.allocs {
		if a.ZoneID == alloc.ZoneID && a.FloorStockID == alloc.FloorStockID {
			return domain.ErrAllocationAlreadyExists
		}
	}
	f.allocs[alloc.ID] = alloc
	return nil
}

func (f *fakeAllocationRepo) UpdateAllocationQuantity(_ context.Context, allocationID string, quantity int) error {
	a, ok := f.allocs[allocationID]
	if !ok {
		return domain.ErrAllocationNotFound
	}
	a.Quantity = quantity
	f.allocs[allocationID] = a
	return nil
}

func (f *fakeAllocationRepo) DeleteObjectsByAllocation(_ context.Context, allocationID string) error {
	for id, o := range f.objects {
		if o.AllocationID == allocationID {
			delete(f.objects, id)
		}
	}
	return nil
}

func (f *fakeAllocationRepo) DeleteAllocation(_ context.Context, allocationID string) error {
	if _, ok := f.allocs[allocationID]; !ok {
		return domain.ErrAllocationNotFound
	}
	delete(f.allocs, allocationID)
	return nil
}

func (f *fakeAllocationRepo) ListZoneUsage(_ context.Context, zoneID string) ([]domain.ZoneAllocationUsage, error) {
	var usages []domain.ZoneAllocationUsage
	for _, a := range f.allocs {
		if a.ZoneID != zoneID {
			continue
		}
		placed, _ := f.CountObjects(context.Background(), a.ID)
		stock := f.stocks[a.FloorStockID]
		usages = append(usages, domain.ZoneAllocationUsage{
			Allocation: a,
			Item:       domain.CatalogItem{ID: stock.CatalogID},
			Placed:     placed,
		})
	}
	return usages, nil
}
