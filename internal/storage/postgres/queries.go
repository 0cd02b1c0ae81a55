package postgres

import (
	"context"
	"fmt"

	"github.com/gridplan/gridplan/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Row-level queries shared by the stock, allocation and object
// repositories. FOR UPDATE variants take the aggregate-root lock that
// serializes capacity checks against the same row.

func getZone(ctx context.Context, q querier, zoneID string) (domain.Zone, error) {
	const query = `SELECT id, floor_id, layer_id, name FROM zones WHERE id = $1`
	var z domain.Zone
	err := q.queryRow(ctx, query, zoneID).Scan(&z.ID, &z.FloorID, &z.LayerID, &z.Name)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Zone{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Zone{}, domain.ErrZoneNotFound
		}
		return domain.Zone{}, fmt.Errorf("get zone: %w", err)
	}
	return z, nil
}

func getStock(ctx context.Context, q querier, stockID string, forUpdate bool) (domain.FloorStock, error) {
	query := `SELECT id, floor_id, catalog_id, count FROM floor_stock WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s domain.FloorStock
	err := q.queryRow(ctx, query, stockID).Scan(&s.ID, &s.FloorID, &s.CatalogID, &s.Count)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.FloorStock{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.FloorStock{}, domain.ErrStockNotFound
		}
		return domain.FloorStock{}, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

func getAllocationForUpdate(ctx context.Context, q querier, allocationID string) (domain.ZoneAllocation, error) {
	const query = `
SELECT id, zone_id, floor_stock_id, quantity
FROM zone_allocations
WHERE id = $1
FOR UPDATE`
	var a domain.ZoneAllocation
	err := q.queryRow(ctx, query, allocationID).Scan(&a.ID, &a.ZoneID, &a.FloorStockID, &a.Quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ZoneAllocation{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.ZoneAllocation{}, domain.ErrAllocationNotFound
		}
		return domain.ZoneAllocation{}, fmt.Errorf("get allocation: %w", err)
	}
	return a, nil
}

func sumAllocations(ctx context.Context, q querier, floorStockID string) (int, error) {
	const query = `
SELECT COALESCE(SUM(quantity), 0)
FROM zone_allocations
WHERE floor_stock_id = $1`
	var total int
	if err := q.queryRow(ctx, query, floorStockID).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("sum allocations: %w", err)
	}
	return total, nil
}

func countObjects(ctx context.Context, q querier, allocationID string) (int, error) {
	const query = `SELECT COUNT(*) FROM zone_objects WHERE allocation_id = $1`
	var total int
	if err := q.queryRow(ctx, query, allocationID).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("count objects: %w", err)
	}
	return total, nil
}
