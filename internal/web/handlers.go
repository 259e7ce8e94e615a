package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/partsearch/internal/core"
	"github.com/JonMunkholm/partsearch/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// errNoFile is returned when an upload has no "file" part.
var errNoFile = errors.New("no file provided")

// handleTest is the health check.
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListCatalogs reports every configured catalog and its load state.
func (s *Server) handleListCatalogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"catalogs": s.service.Status()})
}

// handleSearch serves GET /api/{catalog}?q=&page=&page_size=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "catalog")

	page, pageSize, err := s.parsePaging(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	result, err := s.service.Search(r.Context(), key, r.URL.Query().Get("q"), page, pageSize)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleRefresh reloads a catalog from its source file.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "catalog")
	if _, ok := s.service.Definition(key); !ok {
		respondError(w, r, fmt.Errorf("%w: %s", core.ErrUnknownCatalog, key), http.StatusNotFound)
		return
	}

	t, err := s.service.Refresh(r.Context(), key)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "reloaded", "rows": t.Len()})
}

// handleUpload replaces a catalog's spreadsheet. The catalog is chosen by the
// uploaded file's name, so engines.xlsx replaces the engines catalog.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		if isTooLarge(err) {
			respondError(w, r, err, http.StatusRequestEntityTooLarge)
			return
		}
		respondError(w, r, fmt.Errorf("invalid form: %w", err), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	key := core.CatalogForFile(header.Filename)
	if _, ok := s.service.Definition(key); !ok {
		respondError(w, r, fmt.Errorf("%w: %s (from %s)", core.ErrUnknownCatalog, key, header.Filename), http.StatusNotFound)
		return
	}

	t, err := s.service.ReplaceSource(r.Context(), key, file)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Uploaded and refreshed " + header.Filename,
		"catalog": key,
		"rows":    t.Len(),
	})
}

// isTooLarge reports whether err came from the MaxBytesReader. The multipart
// reader does not always wrap it, so the message is checked too.
func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}

// handleDashboard renders the catalog overview page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(s.service.Status()).Render(r.Context(), w); err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
	}
}
