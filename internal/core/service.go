package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JonMunkholm/partsearch/internal/logging"
	"github.com/google/uuid"
)

// Observer is notified of loads and searches. The metrics package implements it.
type Observer interface {
	CatalogLoaded(key string, rows int, d time.Duration, err error)
	CatalogSearched(key string, matched int, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) CatalogLoaded(string, int, time.Duration, error) {}
func (nopObserver) CatalogSearched(string, int, time.Duration)      {}

// Service is the entry point for catalog operations: load, refresh, search, upload.
type Service struct {
	store    *Store
	defs     map[string]CatalogDefinition
	keys     []string
	dataDir  string
	uploads  *UploadLimiter
	observer Observer

	// locks serializes load-and-publish per catalog so an older file's table
	// can never be installed over a newer one.
	locks map[string]*sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithDataDir sets the directory relative catalog files resolve against.
func WithDataDir(dir string) Option {
	return func(s *Service) { s.dataDir = dir }
}

// WithUploadLimiter replaces the default upload limiter.
func WithUploadLimiter(l *UploadLimiter) Option {
	return func(s *Service) { s.uploads = l }
}

// WithObserver attaches an Observer.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// NewService creates a Service serving defs out of store.
func NewService(store *Store, defs []CatalogDefinition, opts ...Option) (*Service, error) {
	s := &Service{
		store:    store,
		defs:     make(map[string]CatalogDefinition, len(defs)),
		locks:    make(map[string]*sync.Mutex, len(defs)),
		dataDir:  ".",
		observer: nopObserver{},
	}

	for _, def := range defs {
		if err := ValidateDefinition(def); err != nil {
			return nil, err
		}
		if _, dup := s.defs[def.Key]; dup {
			return nil, fmt.Errorf("duplicate catalog key: %s", def.Key)
		}
		if def.Label == "" {
			def.Label = def.Key
		}
		s.defs[def.Key] = def
		s.keys = append(s.keys, def.Key)
		s.locks[def.Key] = &sync.Mutex{}
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.uploads == nil {
		s.uploads = NewUploadLimiter(DefaultMaxConcurrentUploads, DefaultMaxWaitTime)
	}

	return s, nil
}

// Definitions returns the configured catalogs in configuration order.
func (s *Service) Definitions() []CatalogDefinition {
	out := make([]CatalogDefinition, len(s.keys))
	for i, k := range s.keys {
		out[i] = s.defs[k]
	}
	return out
}

// Definition returns the configured catalog for key.
func (s *Service) Definition(key string) (CatalogDefinition, bool) {
	def, ok := s.defs[key]
	return def, ok
}

// SourcePath resolves a definition's file against the data directory.
func (s *Service) SourcePath(def CatalogDefinition) string {
	if filepath.IsAbs(def.File) {
		return def.File
	}
	return filepath.Join(s.dataDir, def.File)
}

// Refresh re-reads the catalog's source file and installs the new table.
// On failure the previously installed table, if any, stays in place.
func (s *Service) Refresh(ctx context.Context, key string) (*Table, error) {
	def, ok := s.defs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCatalog, key)
	}

	lock := s.locks[key]
	lock.Lock()
	defer lock.Unlock()

	return s.install(ctx, def, s.SourcePath(def))
}

// LoadAll loads every configured catalog, best-effort. Failures are logged and
// returned per key; they never stop the remaining catalogs from loading.
func (s *Service) LoadAll(ctx context.Context) map[string]error {
	failed := make(map[string]error)
	for _, key := range s.keys {
		if _, err := s.Refresh(ctx, key); err != nil {
			failed[key] = err
		}
	}
	return failed
}

// install loads path for def and swaps the result into the store.
func (s *Service) install(ctx context.Context, def CatalogDefinition, path string) (*Table, error) {
	t, err := s.load(ctx, def, path)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, t)
	return t, nil
}

// load parses path into a table for def without installing it.
func (s *Service) load(ctx context.Context, def CatalogDefinition, path string) (*Table, error) {
	start := time.Now()
	t, err := LoadTable(def, path)
	elapsed := time.Since(start)
	if err != nil {
		s.observer.CatalogLoaded(def.Key, 0, elapsed, err)
		logging.WithFields(ctx, "catalog", def.Key, "path", path).Error("catalog load failed", "error", err)
		return nil, fmt.Errorf("load %s: %w", def.Key, err)
	}
	s.observer.CatalogLoaded(def.Key, t.Len(), elapsed, nil)
	logging.FromContext(ctx).Debug("catalog parsed",
		"catalog", def.Key,
		"path", path,
		"rows", t.Len(),
		"duration_ms", elapsed.Milliseconds(),
	)
	return t, nil
}

// publish makes t the current table of its catalog.
func (s *Service) publish(ctx context.Context, t *Table) {
	s.store.Put(t)
	logging.FromContext(ctx).Info("catalog loaded",
		"catalog", t.Key,
		"path", t.Path,
		"rows", t.Len(),
		"sheets", len(t.Sheets),
		"generation", t.Generation,
	)
}

// Table returns the current table for key.
func (s *Service) Table(key string) (*Table, error) {
	if _, ok := s.defs[key]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCatalog, key)
	}
	t, ok := s.store.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCatalogNotLoaded, key)
	}
	return t, nil
}

// Search returns one page of the rows of catalog key matching query.
func (s *Service) Search(ctx context.Context, key, query string, page, pageSize int) (*Page, error) {
	t, err := s.Table(key)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := Search(t, query, page, pageSize)
	if err != nil {
		return nil, err
	}
	s.observer.CatalogSearched(key, result.Total, time.Since(start))

	logging.FromContext(ctx).Debug("catalog searched",
		"catalog", key,
		"query", query,
		"total", result.Total,
		"generation", t.Generation,
	)
	return result, nil
}

// CatalogForFile maps an uploaded file name to a catalog key: the lowercased
// base name without extension, so "Engines.xlsx" selects "engines".
func CatalogForFile(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ReplaceSource stores r as the new source file of catalog key and installs it.
//
// The upload is written next to the current file and parsed from there. Only
// a successful load renames it over the source; otherwise it is removed and
// both the old file and the old table stay as they were.
func (s *Service) ReplaceSource(ctx context.Context, key string, r io.Reader) (*Table, error) {
	def, ok := s.defs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCatalog, key)
	}

	if err := s.uploads.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.uploads.Release()

	lock := s.locks[key]
	lock.Lock()
	defer lock.Unlock()

	path := s.SourcePath(def)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.upload%s", def.Key, uuid.NewString(), filepath.Ext(path)))
	if err := writeFile(tmp, r); err != nil {
		os.Remove(tmp)
		return nil, err
	}

	t, err := s.load(ctx, def, tmp)
	if err != nil {
		os.Remove(tmp)
		return nil, err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("replace %s: %w", path, err)
	}
	t.Path = path
	s.publish(ctx, t)

	return t, nil
}

func writeFile(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write upload file: %w", err)
	}
	return f.Close()
}

// Status reports every configured catalog, sorted by key.
func (s *Service) Status() []CatalogStatus {
	keys := append([]string(nil), s.keys...)
	sort.Strings(keys)

	out := make([]CatalogStatus, 0, len(keys))
	for _, key := range keys {
		def := s.defs[key]
		st := CatalogStatus{Key: def.Key, Label: def.Label, File: s.SourcePath(def)}
		if t, ok := s.store.Get(def.Key); ok {
			loadedAt := t.LoadedAt
			st.Loaded = true
			st.Rows = t.Len()
			st.Sheets = t.Sheets
			st.Generation = t.Generation
			st.LoadedAt = &loadedAt
		}
		out = append(out, st)
	}
	return out
}

// UploadLimiterStatus returns the upload limiter state.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.uploads.Status()
}

// WaitForUploads blocks until in-flight uploads finish or ctx is done.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.uploads.WaitForDrain(ctx)
}
