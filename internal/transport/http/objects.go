package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gridplan/gridplan/internal/app"
	"github.com/gridplan/gridplan/internal/domain"
)

// ObjectService is the surface needed by the zone object endpoints.
type ObjectService interface {
	Place(ctx context.Context, in app.PlaceObjectInput) (domain.ZoneObject, error)
	Move(ctx context.Context, zoneID, objectID string, in app.MoveObjectInput) (domain.ZoneObject, error)
	Remove(ctx context.Context, zoneID, objectID string) error
	ListByZone(ctx context.Context, zoneID string) ([]domain.ZoneObject, error)
}

func handlePlaceObject(svc ObjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AllocationID string  `json:"allocation_id"`
			X            float64 `json:"x"`
			Y            float64 `json:"y"`
			Rotation     float64 `json:"rotation"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		obj, err := svc.Place(r.Context(), app.PlaceObjectInput{
			ZoneID:       chi.URLParam(r, "zoneID"),
			AllocationID: req.AllocationID,
			X:            req.X,
			Y:            req.Y,
			Rotation:     req.Rotation,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, objectToResponse(obj))
	}
}

func handleMoveObject(svc ObjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			X        *float64 `json:"x"`
			Y        *float64 `json:"y"`
			Rotation *float64 `json:"rotation"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		obj, err := svc.Move(r.Context(),
			chi.URLParam(r, "zoneID"),
			chi.URLParam(r, "objectID"),
			app.MoveObjectInput{X: req.X, Y: req.Y, Rotation: req.Rotation},
		)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, objectToResponse(obj))
	}
}

func handleRemoveObject(svc ObjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Remove(r.Context(),
			chi.URLParam(r, "zoneID"),
			chi.URLParam(r, "objectID"),
		)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListObjects(svc ObjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objects, err := svc.ListByZone(r.Context(), chi.URLParam(r, "zoneID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]objectResponse, 0, len(objects))
		for _, o := range objects {
			resp = append(resp, objectToResponse(o))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type objectResponse struct {
	ID           string  `json:"id"`
	ZoneID       string  `json:"zone_id"`
	AllocationID string  `json:"allocation_id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Rotation     float64 `json:"rotation"`
}

func objectToResponse(o domain.ZoneObject) objectResponse {
	return objectResponse{
		ID:           o.ID,
		ZoneID:       o.ZoneID,
		AllocationID: o.AllocationID,
		X:            o.X,
		Y:            o.Y,
		Rotation:     o.Rotation,
	}
}
