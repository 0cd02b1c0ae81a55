package domain

// CatalogItem is a reusable type of furnishable object ("chair", "desk").
// Reference data: seeded once, never mutated by the runtime.
type CatalogItem struct {
	ID          string
	DisplayName string
	IconKey     string
	Category    string
}
