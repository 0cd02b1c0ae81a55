package domain

// FloorStock is the total units of one catalog item available on a floor.
// Unique per (FloorID, CatalogID).
type FloorStock struct {
	ID        string
	FloorID   string
	CatalogID string
	Count     int
}

// StockUsage is the computed capacity picture of one stock entry.
// Available is clamped at zero: lowering a count below what is already
// allocated is allowed, and must not report negative availability.
type StockUsage struct {
	Count     int
	Used      int
	Available int
}

// NewStockUsage derives the usage figures from a count and an allocated sum.
func NewStockUsage(count, used int) StockUsage {
	available := count - used
	if available < 0 {
		available = 0
	}
	return StockUsage{Count: count, Used: used, Available: available}
}
