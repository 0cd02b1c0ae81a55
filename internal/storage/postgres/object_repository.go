package postgres

import (
	"context"
	"fmt"

	"github.com/gridplan/gridplan/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ObjectRepository struct {
	q querier
}

func NewObjectRepository(pool *pgxpool.Pool) *ObjectRepository {
	return &ObjectRepository{q: querier{pool: pool}}
}

func (r *ObjectRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.q.pool, fn)
}

func (r *ObjectRepository) GetZone(ctx context.Context, zoneID string) (domain.Zone, error) {
	return getZone(ctx, r.q, zoneID)
}

func (r *ObjectRepository) GetAllocationForUpdate(ctx context.Context, allocationID string) (domain.ZoneAllocation, error) {
	return getAllocationForUpdate(ctx, r.q, allocationID)
}

func (r *ObjectRepository) CountObjects(ctx context.Context, allocationID string) (int, error) {
	return countObjects(ctx, r.q, allocationID)
}

func (r *ObjectRepository) CreateObject(ctx context.Context, obj domain.ZoneObject) error {
	const stmt = `
INSERT INTO zone_objects (id, zone_id, allocation_id, x, y, rotation)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.q.exec(ctx, stmt, obj.ID, obj.ZoneID, obj.AllocationID, obj.X, obj.Y, obj.Rotation)
	if err != nil {
		switch foreignKeyConstraint(err) {
		case "zone_objects_zone_id_fkey":
			return domain.ErrZoneNotFound
		case "zone_objects_allocation_id_fkey":
			return domain.ErrAllocationNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create object: %w", err)
	}
	return nil
}

func (r *ObjectRepository) GetObject(ctx context.Context, objectID string) (domain.ZoneObject, error) {
	const query = `
SELECT id, zone_id, allocation_id, x, y, rotation
FROM zone_objects
WHERE id = $1`

	var o domain.ZoneObject
	err := r.q.queryRow(ctx, query, objectID).
		Scan(&o.ID, &o.ZoneID, &o.AllocationID, &o.X, &o.Y, &o.Rotation)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ZoneObject{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.ZoneObject{}, domain.ErrObjectNotFound
		}
		return domain.ZoneObject{}, fmt.Errorf("get object: %w", err)
	}
	return o, nil
}

func (r *ObjectRepository) UpdateObject(ctx context.Context, objectID string, x, y, rotation *float64) error {
	const stmt = `
UPDATE zone_objects
SET x = COALESCE($2, x),
    y = COALESCE($3, y),
    rotation = COALESCE($4, rotation)
WHERE id = $1`

	tag, err := r.q.exec(ctx, stmt, objectID, x, y, rotation)
	if err != nil {
		return fmt.Errorf("update object: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}

func (r *ObjectRepository) DeleteObject(ctx context.Context, objectID string) error {
	const stmt = `DELETE FROM zone_objects WHERE id = $1`
	tag, err := r.q.exec(ctx, stmt, objectID)
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}

func (r *ObjectRepository) ListObjectsByZone(ctx context.Context, zoneID string) ([]domain.ZoneObject, error) {
	const query = `
SELECT id, zone_id, allocation_id, x, y, rotation
FROM zone_objects
WHERE zone_id = $1
ORDER BY created_at ASC`

	rows, err := r.q.query(ctx, query, zoneID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer rows.Close()

	var objects []domain.ZoneObject
	for rows.Next() {
		var o domain.ZoneObject
		if err := rows.Scan(&o.ID, &o.ZoneID, &o.AllocationID, &o.X, &o.Y, &o.Rotation); err != nil {
			return nil, fmt.Errorf("scan object: %w", err)
		}
		objects = append(objects, o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate objects: %w", rows.Err())
	}
	return objects, nil
}
