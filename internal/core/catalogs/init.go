// Package catalogs registers the built-in catalog definitions with the core registry.
// Import this package to ensure they are registered.
package catalogs

import "github.com/JonMunkholm/partsearch/internal/core"

func init() {
	registerParts()
}

func registerParts() {
	core.Register(core.CatalogDefinition{Key: "engines", Label: "Engines", File: "engines.xlsx"})
	core.Register(core.CatalogDefinition{Key: "filters", Label: "Filters", File: "filters.xlsx"})
	core.Register(core.CatalogDefinition{Key: "sparkplugs", Label: "Spark Plugs", File: "sparkplugs.xlsx"})
}
