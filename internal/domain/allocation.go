package domain

// ZoneAllocation reserves units of a floor-stock entry for one zone.
// Unique per (ZoneID, FloorStockID). Quantity is the reserved figure and
// changes only through explicit re-allocation; the number of placed
// objects is derived by counting placement rows, never stored here.
type ZoneAllocation struct {
	ID           string
	ZoneID       string
	FloorStockID string
	Quantity     int
}

// ZoneAllocationUsage joins an allocation with its catalog metadata and
// the derived placed count for display.
type ZoneAllocationUsage struct {
	Allocation ZoneAllocation
	Item       CatalogItem
	Placed     int
}

// Remaining is the number of objects that can still be placed.
func (u ZoneAllocationUsage) Remaining() int {
	remaining := u.Allocation.Quantity - u.Placed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}
