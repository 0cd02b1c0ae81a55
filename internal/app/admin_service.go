package app

import (
	"context"

	"github.com/gridplan/gridplan/internal/clock"
	"github.com/gridplan/gridplan/internal/domain"
)

type AdminRepository interface {
	CreateOffice(ctx context.Context, office domain.Office) error
	ListOffices(ctx context.Context) ([]domain.Office, error)
	CreateFloor(ctx context.Context, floor domain.Floor) error
	ListFloorsByOffice(ctx context.Context, officeID string) ([]domain.Floor, error)
	CreateLayer(ctx context.Context, layer domain.Layer) error
	ListLayersByFloor(ctx context.Context, floorID string) ([]domain.Layer, error)
	GetLayer(ctx context.Context, layerID string) (domain.Layer, error)
	CreateZone(ctx context.Context, zone domain.Zone) error
	ListZonesByFloor(ctx context.Context, floorID string) ([]domain.Zone, error)
}

// AdminService carries the plain CRUD around the inventory core:
// offices, floors, layout layers and zones. No capacity logic lives here.
type AdminService struct {
	repo  AdminRepository
	clock clock.Clock
}

func NewAdminService(repo AdminRepository, clk clock.Clock) *AdminService {
	return &AdminService{repo: repo, clock: clk}
}

type CreateOfficeInput struct {
	Name string
}

func (s *AdminService) CreateOffice(ctx context.Context, in CreateOfficeInput) (domain.Office, error) {
	if in.Name == "" {
		return domain.Office{}, domain.ErrNameRequired
	}
	office := domain.Office{
		ID:        newID(),
		Name:      in.Name,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateOffice(ctx, office); err != nil {
		return domain.Office{}, err
	}
	return office, nil
}

func (s *AdminService) ListOffices(ctx context.Context) ([]domain.Office, error) {
	return s.repo.ListOffices(ctx)
}

type CreateFloorInput struct {
	OfficeID string
	Name     string
	Level    int
}

func (s *AdminService) CreateFloor(ctx context.Context, in CreateFloorInput) (domain.Floor, error) {
	if in.OfficeID == "" {
		return domain.Floor{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Floor{}, domain.ErrNameRequired
	}
	floor := domain.Floor{
		ID:        newID(),
		OfficeID:  in.OfficeID,
		Name:      in.Name,
		Level:     in.Level,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateFloor(ctx, floor); err != nil {
		return domain.Floor{}, err
	}
	return floor, nil
}

func (s *AdminService) ListFloors(ctx context.Context, officeID string) ([]domain.Floor, error) {
	if officeID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListFloorsByOffice(ctx, officeID)
}

type CreateLayerInput struct {
	FloorID   string
	Name      string
	SortOrder int
}

func (s *AdminService) CreateLayer(ctx context.Context, in CreateLayerInput) (domain.Layer, error) {
	if in.FloorID == "" {
		return domain.Layer{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Layer{}, domain.ErrNameRequired
	}
	layer := domain.Layer{
		ID:        newID(),
		FloorID:   in.FloorID,
		Name:      in.Name,
		SortOrder: in.SortOrder,
	}
	if err := s.repo.CreateLayer(ctx, layer); err != nil {
		return domain.Layer{}, err
	}
	return layer, nil
}

func (s *AdminService) ListLayers(ctx context.Context, floorID string) ([]domain.Layer, error) {
	if floorID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListLayersByFloor(ctx, floorID)
}

type CreateZoneInput struct {
	FloorID string
	LayerID string
	Name    string
}

func (s *AdminService) CreateZone(ctx context.Context, in CreateZoneInput) (domain.Zone, error) {
	if in.FloorID == "" || in.LayerID == "" {
		return domain.Zone{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Zone{}, domain.ErrNameRequired
	}

	layer, err := s.repo.GetLayer(ctx, in.LayerID)
	if err != nil {
		return domain.Zone{}, err
	}
	if layer.FloorID != in.FloorID {
		return domain.Zone{}, domain.ErrLayerMismatch
	}

	zone := domain.Zone{
		ID:      newID(),
		FloorID: in.FloorID,
		LayerID: in.LayerID,
		Name:    in.Name,
	}
	if err := s.repo.CreateZone(ctx, zone); err != nil {
		return domain.Zone{}, err
	}
	return zone, nil
}

func (s *AdminService) ListZones(ctx context.Context, floorID string) ([]domain.Zone, error) {
	if floorID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListZonesByFloor(ctx, floorID)
}
