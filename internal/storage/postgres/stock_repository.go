package postgres

import (
	"context"
	"fmt"

	"github.com/gridplan/gridplan/internal/app"
	"github.com/gridplan/gridplan/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StockRepository struct {
	q querier
}

func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{q: querier{pool: pool}}
}

func (r *StockRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.q.pool, fn)
}

func (r *StockRepository) CreateStock(ctx context.Context, stock domain.FloorStock) error {
	const stmt = `
INSERT INTO floor_stock (id, floor_id, catalog_id, count)
VALUES ($1, $2, $3, $4)`

	_, err := r.q.exec(ctx, stmt, stock.ID, stock.FloorID, stock.CatalogID, stock.Count)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrStockAlreadyExists
		}
		switch foreignKeyConstraint(err) {
		case "floor_stock_floor_id_fkey":
			return domain.ErrFloorNotFound
		case "floor_stock_catalog_id_fkey":
			return domain.ErrCatalogItemUnknown
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create stock: %w", err)
	}
	return nil
}

func (r *StockRepository) GetStock(ctx context.Context, stockID string) (domain.FloorStock, error) {
	return getStock(ctx, r.q, stockID, false)
}

func (r *StockRepository) GetStockForUpdate(ctx context.Context, stockID string) (domain.FloorStock, error) {
	return getStock(ctx, r.q, stockID, true)
}

func (r *StockRepository) UpdateStockCount(ctx context.Context, stockID string, count int) error {
	const stmt = `UPDATE floor_stock SET count = $2 WHERE id = $1`

	tag, err := r.q.exec(ctx, stmt, stockID, count)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update stock count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStockNotFound
	}
	return nil
}

func (r *StockRepository) SumAllocations(ctx context.Context, floorStockID string) (int, error) {
	return sumAllocations(ctx, r.q, floorStockID)
}

func (r *StockRepository) ListStockByFloor(ctx context.Context, floorID string) ([]app.StockEntry, error) {
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
SELECT s.id, s.floor_id, s.catalog_id, s.count,
       c.id, c.display_name, c.icon_key, COALESCE(c.category, ''),
       COALESCE(a.used, 0)
FROM floor_stock s
JOIN catalog_items c ON c.id = s.catalog_id
LEFT JOIN (
	SELECT floor_stock_id, SUM(quantity) AS used
	FROM zone_allocations
	GROUP BY floor_stock_id
) a ON a.floor_stock_id = s.id
WHERE s.floor_id = $1
ORDER BY c.display_name ASC`

	rows, err := r.q.query(ctx, query, floorID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var entries []app.StockEntry
	for rows.Next() {
		var e app.StockEntry
		if err := rows.Scan(
			&e.Stock.ID, &e.Stock.FloorID, &e.Stock.CatalogID, &e.Stock.Count,
			&e.Item.ID, &e.Item.DisplayName, &e.Item.IconKey, &e.Item.Category,
			&e.Used,
		); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate stock entries: %w", rows.Err())
	}
	return entries, nil
}

func (r *StockRepository) DeleteObjectsByStock(ctx context.Context, stockID string) error {
	const stmt = `
DELETE FROM zone_objects
WHERE allocation_id IN (
	SELECT id FROM zone_allocations WHERE floor_stock_id = $1
)`
	if _, err := r.q.exec(ctx, stmt, stockID); err != nil {
		return fmt.Errorf("delete objects by stock: %w", err)
	}
	return nil
}

func (r *StockRepository) DeleteAllocationsByStock(ctx context.Context, stockID string) error {
	const stmt = `DELETE FROM zone_allocations WHERE floor_stock_id = $1`
	if _, err := r.q.exec(ctx, stmt, stockID); err != nil {
		return fmt.Errorf("delete allocations by stock: %w", err)
	}
	return nil
}

func (r *StockRepository) DeleteStock(ctx context.Context, stockID string) error {
	const stmt = `DELETE FROM floor_stock WHERE id = $1`
	tag, err := r.q.exec(ctx, stmt, stockID)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStockNotFound
	}
	return nil
}
