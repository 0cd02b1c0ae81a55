package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gridplan/gridplan/internal/app"
	"github.com/gridplan/gridplan/internal/domain"
)

// StockService is the surface needed by the floor stock endpoints.
type StockService interface {
	Create(ctx context.Context, in app.CreateStockInput) (domain.FloorStock, error)
	UpdateCount(ctx context.Context, stockID string, count int) (domain.FloorStock, error)
	Delete(ctx context.Context, stockID string) error
	Usage(ctx context.Context, stockID string) (domain.StockUsage, error)
	ListByFloor(ctx context.Context, floorID string) ([]app.StockEntry, error)
}

func handleCreateStock(svc StockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CatalogID string `json:"catalog_id"`
			Count     *int   `json:"count"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Count == nil {
			writeError(w, http.StatusBadRequest, codeInvalidCount, domain.ErrInvalidCount.Error())
			return
		}
		stock, err := svc.Create(r.Context(), app.CreateStockInput{
			FloorID:   chi.URLParam(r, "floorID"),
			CatalogID: req.CatalogID,
			Count:     *req.Count,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, stockToResponse(stock))
	}
}

func handleListStock(svc StockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.ListByFloor(r.Context(), chi.URLParam(r, "floorID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]stockEntryResponse, 0, len(entries))
		for _, e := range entries {
			usage := domain.NewStockUsage(e.Stock.Count, e.Used)
			resp = append(resp, stockEntryResponse{
				stockResponse: stockToResponse(e.Stock),
				Item: catalogItemResponse{
					ID:          e.Item.ID,
					DisplayName: e.Item.DisplayName,
					IconKey:     e.Item.IconKey,
					Category:    e.Item.Category,
				},
				Used:      usage.Used,
				Available: usage.Available,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleUpdateStock(svc StockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Count *int `json:"count"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Count == nil {
			writeError(w, http.StatusBadRequest, codeInvalidCount, domain.ErrInvalidCount.Error())
			return
		}
		stock, err := svc.UpdateCount(r.Context(), chi.URLParam(r, "stockID"), *req.Count)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stockToResponse(stock))
	}
}

func handleDeleteStock(svc StockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "stockID")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleStockUsage(svc StockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usage, err := svc.Usage(r.Context(), chi.URLParam(r, "stockID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stockUsageResponse{
			Count:     usage.Count,
			Used:      usage.Used,
			Available: usage.Available,
		})
	}
}

type stockResponse struct {
	ID        string `json:"id"`
	FloorID   string `json:"floor_id"`
	CatalogID string `json:"catalog_id"`
	Count     int    `json:"count"`
}

func stockToResponse(s domain.FloorStock) stockResponse {
	return stockResponse{ID: s.ID, FloorID: s.FloorID, CatalogID: s.CatalogID, Count: s.Count}
}

type stockEntryResponse struct {
	stockResponse
	Item      catalogItemResponse `json:"item"`
	Used      int                 `json:"used"`
	Available int                 `json:"available"`
}

type stockUsageResponse struct {
	Count     int `json:"count"`
	Used      int `json:"used"`
	Available int `json:"available"`
}
