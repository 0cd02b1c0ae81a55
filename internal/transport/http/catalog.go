package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gridplan/gridplan/internal/domain"
)

// CatalogLister is the minimal interface needed to serve the catalog.
type CatalogLister interface {
	List(ctx context.Context) ([]domain.CatalogItem, error)
}

// HandleListCatalog returns an HTTP handler for the item-type reference list.
func HandleListCatalog(svc CatalogLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]catalogItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, catalogItemResponse{
				ID:          item.ID,
				DisplayName: item.DisplayName,
				IconKey:     item.IconKey,
				Category:    item.Category,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type catalogItemResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IconKey     string `json:"icon_key"`
	Category    string `json:"category,omitempty"`
}
