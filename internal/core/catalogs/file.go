package catalogs

import (
	"errors"
	"fmt"
	"os"

	"github.com/JonMunkholm/partsearch/internal/core"
	"gopkg.in/yaml.v3"
)

// File is the deploy-time catalog mapping:
//
//	catalogs:
//	  - key: engines
//	    label: Engines
//	    file: engines.xlsx
type File struct {
	Catalogs []core.CatalogDefinition `yaml:"catalogs"`
}

// LoadFile reads and validates a catalog mapping file.
func LoadFile(path string) ([]core.CatalogDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog mapping document.
func Parse(data []byte) ([]core.CatalogDefinition, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(f.Catalogs) == 0 {
		return nil, errors.New("catalog file defines no catalogs")
	}

	seen := make(map[string]bool, len(f.Catalogs))
	var errs []error
	for _, def := range f.Catalogs {
		if err := core.ValidateDefinition(def); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[def.Key] {
			errs = append(errs, fmt.Errorf("duplicate catalog key: %s", def.Key))
		}
		seen[def.Key] = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f.Catalogs, nil
}

// Replace swaps the registered catalogs for defs.
func Replace(defs []core.CatalogDefinition) {
	core.Clear()
	for _, def := range defs {
		core.Register(def)
	}
}
