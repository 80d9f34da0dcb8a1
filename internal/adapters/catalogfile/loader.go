package catalogfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// FileCatalogSource loads the catalog from a YAML or JSON file on every Load,
// so edits to the file are picked up by a catalog reload.
type FileCatalogSource struct {
	path string
}

// NewFileCatalogSource creates a source reading path
func NewFileCatalogSource(path string) *FileCatalogSource {
	return &FileCatalogSource{path: path}
}

// Path returns the file the source reads
func (s *FileCatalogSource) Path() string {
	return s.path
}

// Load reads and validates the catalog file
func (s *FileCatalogSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", s.path, err)
	}
	return c, nil
}

// Decode parses a catalog document. JSON input is accepted as YAML flow syntax.
func Decode(r io.Reader) (*catalog.Catalog, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, &catalog.ErrInvalidCatalog{Reason: "empty document"}
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return doc.toCatalog()
}

// Encode writes c as a YAML catalog document
func Encode(w io.Writer, c *catalog.Catalog) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(fromCatalog(c)); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return encoder.Close()
}

// WriteFile saves c to path in YAML form
func WriteFile(path string, c *catalog.Catalog) error {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}
