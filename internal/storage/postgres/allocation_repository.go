package postgres

import (
	"context"
	"fmt"

	"github.com/gridplan/gridplan/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AllocationRepository struct {
	q querier
}

func NewAllocationRepository(pool *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{q: querier{pool: pool}}
}

func (r *AllocationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.q.pool, fn)
}

func (r *AllocationRepository) GetZone(ctx context.Context, zoneID string) (domain.Zone, error) {
	return getZone(ctx, r.q, zoneID)
}

func (r *AllocationRepository) GetStockForUpdate(ctx context.Context, stockID string) (domain.FloorStock, error) {
	return getStock(ctx, r.q, stockID, true)
}

func (r *AllocationRepository) FindAllocation(ctx context.Context, zoneID, floorStockID string) (*domain.ZoneAllocation, error) {
	const query = `
SELECT id, zone_id, floor_stock_id, quantity
FROM zone_allocations
WHERE zone_id = $1 AND floor_stock_id = $2`

	var a domain.ZoneAllocation
	err := r.q.queryRow(ctx, query, zoneID, floorStockID).
		Scan(&a.ID, &a.ZoneID, &a.FloorStockID, &a.Quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find allocation: %w", err)
	}
	return &a, nil
}

func (r *AllocationRepository) GetAllocationForUpdate(ctx context.Context, allocationID string) (domain.ZoneAllocation, error) {
	return getAllocationForUpdate(ctx, r.q, allocationID)
}

func (r *AllocationRepository) SumAllocations(ctx context.Context, floorStockID string) (int, error) {
	return sumAllocations(ctx, r.q, floorStockID)
}

func (r *AllocationRepository) SumAllocationsExcluding(ctx context.Context, floorStockID, allocationID string) (int, error) {
	const query = `
SELECT COALESCE(SUM(quantity), 0)
FROM zone_allocations
WHERE floor_stock_id = $1 AND id <> $2`

	var total int
	if err := r.q.queryRow(ctx, query, floorStockID, allocationID).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("sum allocations excluding: %w", err)
	}
	return total, nil
}

func (r *AllocationRepository) CountObjects(ctx context.Context, allocationID string) (int, error) {
	return countObjects(ctx, r.q, allocationID)
}

func (r *AllocationRepository) CreateAllocation(ctx context.Context, alloc domain.ZoneAllocation) error {
	const stmt = `
INSERT INTO zone_allocations (id, zone_id, floor_stock_id, quantity)
VALUES ($1, $2, $3, $4)`

	_, err := r.q.exec(ctx, stmt, alloc.ID, alloc.ZoneID, alloc.FloorStockID, alloc.Quantity)
	if err != nil {
		// A concurrent insert for the same (zone, stock) pair loses here.
		if isUniqueViolation(err) {
			return domain.ErrAllocationAlreadyExists
		}
		switch foreignKeyConstraint(err) {
		case "zone_allocations_zone_id_fkey":
			return domain.ErrZoneNotFound
		case "zone_allocations_floor_stock_id_fkey":
			return domain.ErrStockNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create allocation: %w", err)
	}
	return nil
}

func (r *AllocationRepository) UpdateAllocationQuantity(ctx context.Context, allocationID string, quantity int) error {
	const stmt = `UPDATE zone_allocations SET quantity = $2 WHERE id = $1`

	tag, err := r.q.exec(ctx, stmt, allocationID, quantity)
	if err != nil {
		return fmt.Errorf("update allocation quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAllocationNotFound
	}
	return nil
}

func (r *AllocationRepository) DeleteObjectsByAllocation(ctx context.Context, allocationID string) error {
	const stmt = `DELETE FROM zone_objects WHERE allocation_id = $1`
	if _, err := r.q.exec(ctx, stmt, allocationID); err != nil {
		return fmt.Errorf("delete objects by allocation: %w", err)
	}
	return nil
}

func (r *AllocationRepository) DeleteAllocation(ctx context.Context, allocationID string) error {
	const stmt = `DELETE FROM zone_allocations WHERE id = $1`
	tag, err := r.q.exec(ctx, stmt, allocationID)
	if err != nil {
		return fmt.Errorf("delete allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAllocationNotFound
	}
	return nil
}

func (r *AllocationRepository) ListZoneUsage(ctx context.Context, zoneID string) ([]domain.ZoneAllocationUsage, error) {
	const query = `
SELECT a.id, a.zone_id, a.floor_stock_id, a.quantity,
       c.id, c.display_name, c.icon_key, COALESCE(c.category, ''),
       COALESCE(o.placed, 0)
FROM zone_allocations a
JOIN floor_stock s ON s.id = a.floor_stock_id
JOIN catalog_items c ON c.id = s.catalog_id
LEFT JOIN (
	SELECT allocation_id, COUNT(*) AS placed
	FROM zone_objects
	GROUP BY allocation_id
) o ON o.allocation_id = a.id
WHERE a.zone_id = $1
ORDER BY c.display_name ASC`

	rows, err := r.q.query(ctx, query, zoneID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list zone usage: %w", err)
	}
	defer rows.Close()

	var usages []domain.ZoneAllocationUsage
	for rows.Next() {
		var u domain.ZoneAllocationUsage
		if err := rows.Scan(
			&u.Allocation.ID, &u.Allocation.ZoneID, &u.Allocation.FloorStockID, &u.Allocation.Quantity,
			&u.Item.ID, &u.Item.DisplayName, &u.Item.IconKey, &u.Item.Category,
			&u.Placed,
		); err != nil {
			return nil, fmt.Errorf("scan zone usage: %w", err)
		}
		usages = append(usages, u)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate zone usage: %w", rows.Err())
	}
	return usages, nil
}
