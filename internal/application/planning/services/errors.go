package services

// ErrCatalogNotLoaded indicates a planning operation ran before the first successful ReloadCatalog
type ErrCatalogNotLoaded struct{}

func (e *ErrCatalogNotLoaded) Error() string {
	return "catalog not loaded: run a catalog reload first"
}
