package postgres

import (
	"context"
	"fmt"

	"github.com/gridplan/gridplan/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	q querier
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{q: querier{pool: pool}}
}

func (r *CatalogRepository) ListCatalogItems(ctx context.Context) ([]domain.CatalogItem, error) {
	const query = `
SELECT id, display_name, icon_key, COALESCE(category, '')
FROM catalog_items
ORDER BY display_name ASC`

	rows, err := r.q.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var item domain.CatalogItem
		if err := rows.Scan(&item.ID, &item.DisplayName, &item.IconKey, &item.Category); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate catalog items: %w", rows.Err())
	}
	return items, nil
}
