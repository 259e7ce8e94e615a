package core

import "errors"

// Catalog error taxonomy. Callers match with errors.Is; the wrapped message
// carries the catalog key or path.
var (
	// ErrFileMissing means the catalog's source file was absent at load time.
	ErrFileMissing = errors.New("file not found")

	// ErrLoadFailure means the source file exists but could not be parsed.
	ErrLoadFailure = errors.New("load failed")

	// ErrUnknownCatalog means the key is not configured.
	ErrUnknownCatalog = errors.New("unknown catalog")

	// ErrCatalogNotLoaded means the key is configured but no load has succeeded yet.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")

	// ErrInvalidPage means page or page_size is below 1.
	ErrInvalidPage = errors.New("invalid page parameters")
)
