package postgres

import (
	"context"
	"fmt"

	"github.com/gridplan/gridplan/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	q querier
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{q: querier{pool: pool}}
}

func (r *AdminRepository) CreateOffice(ctx context.Context, office domain.Office) error {
	const stmt = `INSERT INTO offices (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := r.q.exec(ctx, stmt, office.ID, office.Name, office.CreatedAt); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create office: %w", err)
	}
	return nil
}

func (r *AdminRepository) ListOffices(ctx context.Context) ([]domain.Office, error) {
	const query = `SELECT id, name, created_at FROM offices ORDER BY created_at ASC`
	rows, err := r.q.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list offices: %w", err)
	}
	defer rows.Close()

	var offices []domain.Office
	for rows.Next() {
		var o domain.Office
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan office: %w", err)
		}
		offices = append(offices, o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate offices: %w", rows.Err())
	}
	return offices, nil
}

func (r *AdminRepository) CreateFloor(ctx context.Context, floor domain.Floor) error {
	const stmt = `
INSERT INTO floors (id, office_id, name, level, created_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.exec(ctx, stmt, floor.ID, floor.OfficeID, floor.Name, floor.Level, floor.CreatedAt); err != nil {
		if foreignKeyConstraint(err) != "" {
			return domain.ErrOfficeNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create floor: %w", err)
	}
	return nil
}

func (r *AdminRepository) ListFloorsByOffice(ctx context.Context, officeID string) ([]domain.Floor, error) {
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM offices WHERE id = $1)`
	var exists bool
	if err := r.q.queryRow(ctx, existsQuery, officeID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("check office: %w", err)
	}
	if !exists {
		return nil, domain.ErrOfficeNotFound
	}

	const query = `
SELECT id, office_id, name, level, created_at
FROM floors
WHERE office_id = $1
ORDER BY level ASC`
	rows, err := r.q.query(ctx, query, officeID)
	if err != nil {
		return nil, fmt.Errorf("list floors: %w", err)
	}
	defer rows.Close()

	var floors []domain.Floor
	for rows.Next() {
		var f domain.Floor
		if err := rows.Scan(&f.ID, &f.OfficeID, &f.Name, &f.Level, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan floor: %w", err)
		}
		floors = append(floors, f)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate floors: %w", rows.Err())
	}
	return floors, nil
}

func (r *AdminRepository) CreateLayer(ctx context.Context, layer domain.Layer) error {
	const stmt = `
INSERT INTO layers (id, floor_id, name, sort_order)
VALUES ($1, $2, $3, $4)`
	if _, err := r.q.exec(ctx, stmt, layer.ID, layer.FloorID, layer.Name, layer.SortOrder); err != nil {
		if foreignKeyConstraint(err) != "" {
			return domain.ErrFloorNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create layer: %w", err)
	}
	return nil
}

func (r *AdminRepository) ListLayersByFloor(ctx context.Context, floorID string) ([]domain.Layer, error) {
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM floors WHERE id = $1)`
	var exists bool
	if err := r.q.queryRow(ctx, existsQuery, floorID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("check floor: %w", err)
	}
	if !exists {
		return nil, domain.ErrFloorNotFound
	}

	const query = `
SELECT id, floor_id, name, sort_order
FROM layers
WHERE floor_id = $1
ORDER BY sort_order ASC`
	rows, err := r.q.query(ctx, query, floorID)
	if err != nil {
		return nil, fmt.Errorf("list layers: %w", err)
	}
	defer rows.Close()

	var layers []domain.Layer
	for rows.Next() {
		var l domain.Layer
		if err := rows.Scan(&l.ID, &l.FloorID, &l.Name, &l.SortOrder); err != nil {
			return nil, fmt.Errorf("scan layer: %w", err)
		}
		layers = append(layers, l)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate layers: %w", rows.Err())
	}
	return layers, nil
}

func (r *AdminRepository) GetLayer(ctx context.Context, layerID string) (domain.Layer, error) {
	const query = `SELECT id, floor_id, name, sort_order FROM layers WHERE id = $1`
	var l domain.Layer
	err := r.q.queryRow(ctx, query, layerID).Scan(&l.ID, &l.FloorID, &l.Name, &l.SortOrder)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Layer{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Layer{}, domain.ErrLayerNotFound
		}
		return domain.Layer{}, fmt.Errorf("get layer: %w", err)
	}
	return l, nil
}

func (r *AdminRepository) CreateZone(ctx context.Context, zone domain.Zone) error {
	const stmt = `
INSERT INTO zones (id, floor_id, layer_id, name)
VALUES ($1, $2, $3, $4)`
	if _, err := r.q.exec(ctx, stmt, zone.ID, zone.FloorID, zone.LayerID, zone.Name); err != nil {
		switch foreignKeyConstraint(err) {
		case "zones_floor_id_fkey":
			return domain.ErrFloorNotFound
		case "zones_layer_id_fkey":
			return domain.ErrLayerNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create zone: %w", err)
	}
	return nil
}

func (r *AdminRepository) ListZonesByFloor(ctx context.Context, floorID string) ([]domain.Zone, error) {
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM floors WHERE id = $1)`
	var exists bool
	if err := r.q.queryRow(ctx, existsQuery, floorID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("check floor: %w", err)
	}
	if !exists {
		return nil, domain.ErrFloorNotFound
	}

	const query = `
SELECT id, floor_id, layer_id, name
FROM zones
WHERE floor_id = $1
ORDER BY created_at ASC`
	rows, err := r.q.query(ctx, query, floorID)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var zones []domain.Zone
	for rows.Next() {
		var z domain.Zone
		if err := rows.Scan(&z.ID, &z.FloorID, &z.LayerID, &z.Name); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		zones = append(zones, z)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate zones: %w", rows.Err())
	}
	return zones, nil
}
