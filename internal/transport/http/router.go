package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig bundles the services and knobs the router needs.
type RouterConfig struct {
	Catalog     CatalogLister
	Admin       AdminService
	Stock       StockService
	Allocations AllocationService
	Objects     ObjectService

	Logger         *log.Logger
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	ServiceName    string
}

// NewRouter wires every endpoint with the shared middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", HealthHandler)
	r.Get("/catalog", HandleListCatalog(cfg.Catalog))

	r.Route("/admin", func(r chi.Router) {
		r.Post("/offices", handleCreateOffice(cfg.Admin))
		r.Get("/offices", handleListOffices(cfg.Admin))
		r.Post("/offices/{officeID}/floors", handleCreateFloor(cfg.Admin))
		r.Get("/offices/{officeID}/floors", handleListFloors(cfg.Admin))
		r.Post("/floors/{floorID}/layers", handleCreateLayer(cfg.Admin))
		r.Get("/floors/{floorID}/layers", handleListLayers(cfg.Admin))
		r.Post("/floors/{floorID}/zones", handleCreateZone(cfg.Admin))
		r.Get("/floors/{floorID}/zones", handleListZones(cfg.Admin))

		r.Post("/floors/{floorID}/stock", handleCreateStock(cfg.Stock))
		r.Get("/floors/{floorID}/stock", handleListStock(cfg.Stock))
		r.Put("/stock/{stockID}", handleUpdateStock(cfg.Stock))
		r.Delete("/stock/{stockID}", handleDeleteStock(cfg.Stock))
		r.Get("/stock/{stockID}/usage", handleStockUsage(cfg.Stock))
	})

	r.Route("/zones/{zoneID}", func(r chi.Router) {
		r.Post("/allocations", handleAllocate(cfg.Allocations))
		r.Get("/allocations", handleZoneUsage(cfg.Allocations))
		r.Put("/allocations/{allocationID}", handleReallocate(cfg.Allocations))
		r.Delete("/allocations/{allocationID}", handleDeallocate(cfg.Allocations))

		r.Post("/objects", handlePlaceObject(cfg.Objects))
		r.Get("/objects", handleListObjects(cfg.Objects))
		r.Patch("/objects/{objectID}", handleMoveObject(cfg.Objects))
		r.Delete("/objects/{objectID}", handleRemoveObject(cfg.Objects))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	var handler http.Handler = r
	handler = RateLimit(handler, cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler = CORS(cfg.CORSOrigins, handler)
	handler = Trace(handler, cfg.ServiceName)
	handler = RequestLogger(handler, cfg.Logger)
	return handler
}
