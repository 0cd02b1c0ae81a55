package app

import (
	"context"

	"github.com/gridplan/gridplan/internal/domain"
)

type CatalogRepository interface {
	ListCatalogItems(ctx context.Context) ([]domain.CatalogItem, error)
}

// CatalogService exposes the seeded item-type reference list.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.repo.ListCatalogItems(ctx)
}
