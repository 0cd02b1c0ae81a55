package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gridplan/gridplan/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidID          = "invalid_id"
	codeNameRequired       = "name_required"
	codeInvalidQuantity    = "invalid_quantity"
	codeInvalidCount       = "invalid_count"
	codeEmptyUpdate        = "empty_update"
	codeOfficeNotFound     = "office_not_found"
	codeFloorNotFound      = "floor_not_found"
	codeLayerNotFound      = "layer_not_found"
	codeZoneNotFound       = "zone_not_found"
	codeCatalogUnknown     = "catalog_item_unknown"
	codeStockNotFound      = "stock_not_found"
	codeAllocationNotFound = "allocation_not_found"
	codeObjectNotFound     = "object_not_found"
	codeStockExists        = "stock_already_exists"
	codeAllocationExists   = "allocation_already_exists"
	codeAllocationInUse    = "allocation_in_use"
	codeZoneMismatch       = "zone_mismatch"
	codeFloorMismatch      = "floor_mismatch"
	codeLayerMismatch      = "layer_mismatch"
	codeCapacityExceeded   = "capacity_exceeded"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// Available is set only for capacity_exceeded responses.
	Available *int `json:"available,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError translates a service failure into a protocol
// response with a stable machine-readable code. Capacity failures carry
// the available figure in the body.
func writeDomainError(w http.ResponseWriter, err error) {
	if ce, ok := domain.AsCapacityError(err); ok {
		available := ce.Available
		writeErrorResponse(w, http.StatusConflict, errorResponse{
			Error:     ce.Error(),
			Code:      codeCapacityExceeded,
			Available: &available,
		})
		return
	}

	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeError(w, status, code, msg)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, codeInvalidID
	case errors.Is(err, domain.ErrNameRequired):
		return http.StatusBadRequest, codeNameRequired
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, codeInvalidQuantity
	case errors.Is(err, domain.ErrInvalidCount):
		return http.StatusBadRequest, codeInvalidCount
	case errors.Is(err, domain.ErrEmptyUpdate):
		return http.StatusBadRequest, codeEmptyUpdate
	case errors.Is(err, domain.ErrOfficeNotFound):
		return http.StatusNotFound, codeOfficeNotFound
	case errors.Is(err, domain.ErrFloorNotFound):
		return http.StatusNotFound, codeFloorNotFound
	case errors.Is(err, domain.ErrLayerNotFound):
		return http.StatusNotFound, codeLayerNotFound
	case errors.Is(err, domain.ErrZoneNotFound):
		return http.StatusNotFound, codeZoneNotFound
	case errors.Is(err, domain.ErrStockNotFound):
		return http.StatusNotFound, codeStockNotFound
	case errors.Is(err, domain.ErrAllocationNotFound):
		return http.StatusNotFound, codeAllocationNotFound
	case errors.Is(err, domain.ErrObjectNotFound):
		return http.StatusNotFound, codeObjectNotFound
	case errors.Is(err, domain.ErrCatalogItemUnknown):
		return http.StatusUnprocessableEntity, codeCatalogUnknown
	case errors.Is(err, domain.ErrZoneMismatch):
		return http.StatusUnprocessableEntity, codeZoneMismatch
	case errors.Is(err, domain.ErrFloorMismatch):
		return http.StatusUnprocessableEntity, codeFloorMismatch
	case errors.Is(err, domain.ErrLayerMismatch):
		return http.StatusUnprocessableEntity, codeLayerMismatch
	case errors.Is(err, domain.ErrStockAlreadyExists):
		return http.StatusConflict, codeStockExists
	case errors.Is(err, domain.ErrAllocationAlreadyExists):
		return http.StatusConflict, codeAllocationExists
	case errors.Is(err, domain.ErrAllocationInUse):
		return http.StatusConflict, codeAllocationInUse
	default:
		return http.StatusInternalServerError, codeInternalError
	}
}
