package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOfficeNotFound     = errors.New("office not found")
	ErrFloorNotFound      = errors.New("floor not found")
	ErrLayerNotFound      = errors.New("layer not found")
	ErrZoneNotFound       = errors.New("zone not found")
	ErrCatalogItemUnknown = errors.New("catalog item unknown")
	ErrStockNotFound      = errors.New("stock entry not found")
	ErrAllocationNotFound = errors.New("allocation not found")
	ErrObjectNotFound     = errors.New("object not found")

	ErrStockAlreadyExists      = errors.New("stock entry already exists for this floor and item")
	ErrAllocationAlreadyExists = errors.New("allocation already exists for this zone and stock entry")

	// ErrZoneMismatch covers references that exist but belong to another
	// zone (allocation/object operations addressed through the wrong zone).
	ErrZoneMismatch = errors.New("resource belongs to a different zone")
	// ErrFloorMismatch covers allocating stock into a zone that is not on
	// the stock entry's floor.
	ErrFloorMismatch = errors.New("zone and stock entry belong to different floors")
	// ErrLayerMismatch covers creating a zone under a layer of another floor.
	ErrLayerMismatch = errors.New("layer belongs to a different floor")

	ErrInvalidQuantity = errors.New("quantity must be zero or positive")
	ErrInvalidCount    = errors.New("count must be zero or positive")
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidID       = errors.New("invalid id")
	ErrEmptyUpdate     = errors.New("no fields to update")

	// ErrAllocationInUse rejects lowering a reservation below the number of
	// objects already placed against it.
	ErrAllocationInUse = errors.New("allocation has objects placed beyond the requested quantity")
)

// CapacityError reports a rejected quantity change together with the
// capacity still available at the checked tier.
type CapacityError struct {
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity exceeded: %d available", e.Available)
}

// AsCapacityError unwraps err into a CapacityError when it is one.
func AsCapacityError(err error) (*CapacityError, bool) {
	var ce *CapacityError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
