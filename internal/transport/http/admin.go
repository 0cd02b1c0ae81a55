package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gridplan/gridplan/internal/app"
	"github.com/gridplan/gridplan/internal/domain"
)

// AdminService is the surface needed by the office/floor/layer/zone
// admin endpoints.
type AdminService interface {
	CreateOffice(ctx context.Context, in app.CreateOfficeInput) (domain.Office, error)
	ListOffices(ctx context.Context) ([]domain.Office, error)
	CreateFloor(ctx context.Context, in app.CreateFloorInput) (domain.Floor, error)
	ListFloors(ctx context.Context, officeID string) ([]domain.Floor, error)
	CreateLayer(ctx context.Context, in app.CreateLayerInput) (domain.Layer, error)
	ListLayers(ctx context.Context, floorID string) ([]domain.Layer, error)
	CreateZone(ctx context.Context, in app.CreateZoneInput) (domain.Zone, error)
	ListZones(ctx context.Context, floorID string) ([]domain.Zone, error)
}

func handleCreateOffice(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		office, err := svc.CreateOffice(r.Context(), app.CreateOfficeInput{Name: req.Name})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, officeResponse{
			ID: office.ID, Name: office.Name, CreatedAt: office.CreatedAt,
		})
	}
}

func handleListOffices(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offices, err := svc.ListOffices(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]officeResponse, 0, len(offices))
		for _, o := range offices {
			resp = append(resp, officeResponse{ID: o.ID, Name: o.Name, CreatedAt: o.CreatedAt})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleCreateFloor(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name  string `json:"name"`
			Level int    `json:"level"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		floor, err := svc.CreateFloor(r.Context(), app.CreateFloorInput{
			OfficeID: chi.URLParam(r, "officeID"),
			Name:     req.Name,
			Level:    req.Level,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, floorToResponse(floor))
	}
}

func handleListFloors(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		floors, err := svc.ListFloors(r.Context(), chi.URLParam(r, "officeID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]floorResponse, 0, len(floors))
		for _, f := range floors {
			resp = append(resp, floorToResponse(f))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleCreateLayer(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name      string `json:"name"`
			SortOrder int    `json:"sort_order"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		layer, err := svc.CreateLayer(r.Context(), app.CreateLayerInput{
			FloorID:   chi.URLParam(r, "floorID"),
			Name:      req.Name,
			SortOrder: req.SortOrder,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, layerToResponse(layer))
	}
}

func handleListLayers(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		layers, err := svc.ListLayers(r.Context(), chi.URLParam(r, "floorID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]layerResponse, 0, len(layers))
		for _, l := range layers {
			resp = append(resp, layerToResponse(l))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleCreateZone(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			LayerID string `json:"layer_id"`
			Name    string `json:"name"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		zone, err := svc.CreateZone(r.Context(), app.CreateZoneInput{
			FloorID: chi.URLParam(r, "floorID"),
			LayerID: req.LayerID,
			Name:    req.Name,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, zoneToResponse(zone))
	}
}

func handleListZones(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zones, err := svc.ListZones(r.Context(), chi.URLParam(r, "floorID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]zoneResponse, 0, len(zones))
		for _, z := range zones {
			resp = append(resp, zoneToResponse(z))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type officeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type floorResponse struct {
	ID       string `json:"id"`
	OfficeID string `json:"office_id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
}

func floorToResponse(f domain.Floor) floorResponse {
	return floorResponse{ID: f.ID, OfficeID: f.OfficeID, Name: f.Name, Level: f.Level}
}

type layerResponse struct {
	ID        string `json:"id"`
	FloorID   string `json:"floor_id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

func layerToResponse(l domain.Layer) layerResponse {
	return layerResponse{ID: l.ID, FloorID: l.FloorID, Name: l.Name, SortOrder: l.SortOrder}
}

type zoneResponse struct {
	ID      string `json:"id"`
	FloorID string `json:"floor_id"`
	LayerID string `json:"layer_id"`
	Name    string `json:"name"`
}

func zoneToResponse(z domain.Zone) zoneResponse {
	return zoneResponse{ID: z.ID, FloorID: z.FloorID, LayerID: z.LayerID, Name: z.Name}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
