package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// MockCatalogSource is a test double for the CatalogSource interface
type MockCatalogSource struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	err     error
	loads   int
}

// NewMockCatalogSource creates a source serving c
func NewMockCatalogSource(c *catalog.Catalog) *MockCatalogSource {
	return &MockCatalogSource{catalog: c}
}

// SetCatalog changes the snapshot served by subsequent loads
func (m *MockCatalogSource) SetCatalog(c *catalog.Catalog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = c
	m.err = nil
}

// SetError makes subsequent loads fail with err
func (m *MockCatalogSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Load returns the configured snapshot or error
func (m *MockCatalogSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

// Loads returns how many times Load was called
func (m *MockCatalogSource) Loads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loads
}
