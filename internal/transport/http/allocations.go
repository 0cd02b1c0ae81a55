package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gridplan/gridplan/internal/app"
	"github.com/gridplan/gridplan/internal/domain"
)

// AllocationService is the surface needed by the zone allocation endpoints.
type AllocationService interface {
	Allocate(ctx context.Context, in app.AllocateInput) (domain.ZoneAllocation, error)
	Reallocate(ctx context.Context, zoneID, allocationID string, quantity int) (domain.ZoneAllocation, error)
	Deallocate(ctx context.Context, zoneID, allocationID string) error
	ZoneUsage(ctx context.Context, zoneID string) ([]domain.ZoneAllocationUsage, error)
}

func handleAllocate(svc AllocationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FloorStockID string `json:"floor_stock_id"`
			Quantity     *int   `json:"quantity"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Quantity == nil {
			writeError(w, http.StatusBadRequest, codeInvalidQuantity, domain.ErrInvalidQuantity.Error())
			return
		}
		alloc, err := svc.Allocate(r.Context(), app.AllocateInput{
			ZoneID:       chi.URLParam(r, "zoneID"),
			FloorStockID: req.FloorStockID,
			Quantity:     *req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, allocationToResponse(alloc))
	}
}

func handleReallocate(svc AllocationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Quantity *int `json:"quantity"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Quantity == nil {
			writeError(w, http.StatusBadRequest, codeInvalidQuantity, domain.ErrInvalidQuantity.Error())
			return
		}
		alloc, err := svc.Reallocate(r.Context(),
			chi.URLParam(r, "zoneID"),
			chi.URLParam(r, "allocationID"),
			*req.Quantity,
		)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, allocationToResponse(alloc))
	}
}

func handleDeallocate(svc AllocationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Deallocate(r.Context(),
			chi.URLParam(r, "zoneID"),
			chi.URLParam(r, "allocationID"),
		)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleZoneUsage(svc AllocationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usages, err := svc.ZoneUsage(r.Context(), chi.URLParam(r, "zoneID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]zoneUsageResponse, 0, len(usages))
		for _, u := range usages {
			resp = append(resp, zoneUsageResponse{
				allocationResponse: allocationToResponse(u.Allocation),
				Item: catalogItemResponse{
					ID:          u.Item.ID,
					DisplayName: u.Item.DisplayName,
					IconKey:     u.Item.IconKey,
					Category:    u.Item.Category,
				},
				Placed:    u.Placed,
				Remaining: u.Remaining(),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type allocationResponse struct {
	ID           string `json:"id"`
	ZoneID       string `json:"zone_id"`
	FloorStockID string `json:"floor_stock_id"`
	Quantity     int    `json:"quantity"`
}

func allocationToResponse(a domain.ZoneAllocation) allocationResponse {
	return allocationResponse{
		ID:           a.ID,
		ZoneID:       a.ZoneID,
		FloorStockID: a.FloorStockID,
		Quantity:     a.Quantity,
	}
}

type zoneUsageResponse struct {
	allocationResponse
	Item      catalogItemResponse `json:"item"`
	Placed    int                 `json:"placed"`
	Remaining int                 `json:"remaining"`
}
