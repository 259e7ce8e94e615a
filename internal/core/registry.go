package core

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]CatalogDefinition)
	registryMu sync.RWMutex
)

var keyPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// reservedKeys are API path segments that would shadow a catalog route.
var reservedKeys = map[string]bool{
	"test":     true,
	"refresh":  true,
	"catalogs": true,
	"upload":   true,
}

// ValidateDefinition reports whether def can be registered.
func ValidateDefinition(def CatalogDefinition) error {
	if !keyPattern.MatchString(def.Key) {
		return fmt.Errorf("invalid catalog key %q: must match %s", def.Key, keyPattern)
	}
	if reservedKeys[def.Key] {
		return fmt.Errorf("invalid catalog key %q: reserved path segment", def.Key)
	}
	if def.File == "" {
		return fmt.Errorf("catalog %q: file is required", def.Key)
	}
	return nil
}

// Register adds a catalog definition to the registry.
// Panics if the definition is invalid or the key is already registered.
func Register(def CatalogDefinition) {
	if err := ValidateDefinition(def); err != nil {
		panic(err.Error())
	}
	if def.Label == "" {
		def.Label = def.Key
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Key]; exists {
		panic(fmt.Sprintf("catalog already registered: %s", def.Key))
	}
	registry[def.Key] = def
}

// Get returns a catalog definition by key.
// Returns false if not found.
func Get(key string) (CatalogDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns all registered definitions sorted by key.
func All() []CatalogDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]CatalogDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// Count returns the number of registered catalogs.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered catalogs.
// Used when a deploy-time catalog file replaces the built-in set, and in tests.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]CatalogDefinition)
}
