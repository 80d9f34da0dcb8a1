package catalog

import "context"

// CatalogSource supplies catalog snapshots to the planner.
// Implementations read game data from files, databases or the game itself.
type CatalogSource interface {
	// Load returns a fresh snapshot of the full catalog
	Load(ctx context.Context) (*Catalog, error)
}

// CatalogStore is a CatalogSource that can also be written to
type CatalogStore interface {
	CatalogSource

	// Save replaces the stored catalog with the given snapshot
	Save(ctx context.Context, c *Catalog) error
}
