package catalog

import "fmt"

// ErrItemNotFound indicates no item matches the requested id or display name
type ErrItemNotFound struct {
	Query string
}

func (e *ErrItemNotFound) Error() string {
	return fmt.Sprintf("item not found: %s", e.Query)
}

// ErrInvalidCatalog indicates a catalog snapshot failed structural validation
type ErrInvalidCatalog struct {
	Reason string
}

func (e *ErrInvalidCatalog) Error() string {
	return fmt.Sprintf("invalid catalog: %s", e.Reason)
}
