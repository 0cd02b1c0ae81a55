package domain

// ZoneObject is one concrete placed instance on the plan. Each object
// consumes exactly one unit of its allocation.
type ZoneObject struct {
	ID           string
	ZoneID       string
	AllocationID string
	X            float64
	Y            float64
	Rotation     float64
}
