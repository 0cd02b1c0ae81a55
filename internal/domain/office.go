package domain

import "time"

// Office is the top-level grouping for floors.
type Office struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Floor is one level of an office building.
type Floor struct {
	ID        string
	OfficeID  string
	Name      string
	Level     int
	CreatedAt time.Time
}

// Layer groups zones of a floor plan for display stacking.
type Layer struct {
	ID        string
	FloorID   string
	Name      string
	SortOrder int
}

// Zone is a region of a floor plan that inventory can be allocated to.
// Polygon geometry lives outside this service; zones are addressed by id.
type Zone struct {
	ID      string
	FloorID string
	LayerID string
	Name    string
}
