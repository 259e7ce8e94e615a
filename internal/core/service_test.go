package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefs = []CatalogDefinition{
	{Key: "engines", Label: "Engines", File: "engines.xlsx"},
	{Key: "filters", Label: "Filters", File: "filters.xlsx"},
	{Key: "sparkplugs", Label: "Spark Plugs", File: "sparkplugs.xlsx"},
}

type loadEvent struct {
	key  string
	rows int
	err  error
}

type recordingObserver struct {
	mu       sync.Mutex
	loads    []loadEvent
	searches []string
}

func (o *recordingObserver) CatalogLoaded(key string, rows int, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loads = append(o.loads, loadEvent{key, rows, err})
}

func (o *recordingObserver) CatalogSearched(key string, _ int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.searches = append(o.searches, key)
}

func newTestService(t *testing.T, dir string, opts ...Option) *Service {
	t.Helper()
	svc, err := NewService(NewStore(), testDefs, append([]Option{WithDataDir(dir)}, opts...)...)
	require.NoError(t, err)
	return svc
}

func TestNewService_RejectsBadDefinitions(t *testing.T) {
	_, err := NewService(NewStore(), []CatalogDefinition{
		{Key: "engines", File: "a.xlsx"},
		{Key: "engines", File: "b.xlsx"},
	})
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewService(NewStore(), []CatalogDefinition{{Key: "catalogs", File: "c.xlsx"}})
	assert.Error(t, err)
}

func TestService_DefinitionsKeepOrder(t *testing.T) {
	svc := newTestService(t, t.TempDir())

	var keys []string
	for _, def := range svc.Definitions() {
		keys = append(keys, def.Key)
	}
	assert.Equal(t, []string{"engines", "filters", "sparkplugs"}, keys)
}

func TestService_SourcePath(t *testing.T) {
	svc := newTestService(t, "/srv/data")

	assert.Equal(t, filepath.Join("/srv/data", "engines.xlsx"), svc.SourcePath(testDefs[0]))
	assert.Equal(t, "/abs/x.xlsx", svc.SourcePath(CatalogDefinition{Key: "x", File: "/abs/x.xlsx"}))
}

func TestService_LoadAllIsBestEffort(t *testing.T) {
	dir := t.TempDir()
	engineWorkbook(t, dir)
	obs := &recordingObserver{}
	svc := newTestService(t, dir, WithObserver(obs))

	failed := svc.LoadAll(context.Background())

	require.Len(t, failed, 2)
	assert.ErrorIs(t, failed["filters"], ErrFileMissing)
	assert.ErrorIs(t, failed["sparkplugs"], ErrFileMissing)

	table, err := svc.Table("engines")
	require.NoError(t, err)
	assert.Equal(t, 20, table.Len())

	_, err = svc.Table("filters")
	assert.ErrorIs(t, err, ErrCatalogNotLoaded)

	require.Len(t, obs.loads, 3)
	assert.Equal(t, loadEvent{"engines", 20, nil}, obs.loads[0])
	assert.Error(t, obs.loads[1].err)
}

func TestService_Search(t *testing.T) {
	dir := t.TempDir()
	engineWorkbook(t, dir)
	obs := &recordingObserver{}
	svc := newTestService(t, dir, WithObserver(obs))
	ctx := context.Background()

	_, err := svc.Refresh(ctx, "engines")
	require.NoError(t, err)

	page, err := svc.Search(ctx, "engines", "v8", 1, 30)
	require.NoError(t, err)
	assert.Equal(t, 10, page.Total)
	for _, r := range page.Results {
		desc, _ := r.Get("Description")
		assert.Equal(t, "V-8 Engine", desc)
	}
	assert.Equal(t, []string{"engines"}, obs.searches)

	_, err = svc.Search(ctx, "pistons", "", 1, 30)
	assert.ErrorIs(t, err, ErrUnknownCatalog)

	_, err = svc.Search(ctx, "filters", "", 1, 30)
	assert.ErrorIs(t, err, ErrCatalogNotLoaded)

	_, err = svc.Search(ctx, "engines", "", 0, 30)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestService_RefreshKeepsOldTableOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := engineWorkbook(t, dir)
	svc := newTestService(t, dir)
	ctx := context.Background()

	before, err := svc.Refresh(ctx, "engines")
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	_, err = svc.Refresh(ctx, "engines")
	assert.ErrorIs(t, err, ErrFileMissing)

	after, err := svc.Table("engines")
	require.NoError(t, err)
	assert.Same(t, before, after)

	_, err = svc.Refresh(ctx, "pistons")
	assert.ErrorIs(t, err, ErrUnknownCatalog)
}

func TestService_RefreshPicksUpNewFile(t *testing.T) {
	dir := t.TempDir()
	engineWorkbook(t, dir)
	svc := newTestService(t, dir)
	ctx := context.Background()

	first, err := svc.Refresh(ctx, "engines")
	require.NoError(t, err)

	writeWorkbook(t, filepath.Join(dir, "engines.xlsx"),
		fixtureSheet{name: "V8", rows: partRows("E8", "V-8 Engine", 3)})

	second, err := svc.Refresh(ctx, "engines")
	require.NoError(t, err)
	assert.Equal(t, 3, second.Len())
	assert.NotEqual(t, first.Generation, second.Generation)
	assert.Equal(t, 20, first.Len(), "earlier snapshot is unchanged")
}

func TestService_RefreshUnchangedFileRestoresTable(t *testing.T) {
	dir := t.TempDir()
	engineWorkbook(t, dir)
	svc := newTestService(t, dir)
	ctx := context.Background()

	first, err := svc.Refresh(ctx, "engines")
	require.NoError(t, err)
	second, err := svc.Refresh(ctx, "engines")
	require.NoError(t, err)

	assert.Equal(t, first.Len(), second.Len())
	assert.NotEqual(t, first.Generation, second.Generation)
	if diff := cmp.Diff(first.Columns, second.Columns); diff != "" {
		t.Errorf("columns changed on reload (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Records(), second.Records(), cmp.Comparer(recordsEqual)); diff != "" {
		t.Errorf("rows changed on reload (-first +second):\n%s", diff)
	}
}

func TestCatalogForFile(t *testing.T) {
	tests := map[string]string{
		"engines.xlsx":             "engines",
		"Engines.XLSX":             "engines",
		"sparkplugs":               "sparkplugs",
		"/tmp/uploads/filters.xls": "filters",
		`C:\Users\me\filters.xlsx`: "filters",
		"spark plugs.xlsx":         "spark plugs",
	}
	for in, want := range tests {
		assert.Equal(t, want, CatalogForFile(in), in)
	}
}

func TestService_ReplaceSource(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, filepath.Join(dir, "data"))
	ctx := context.Background()

	upload := filepath.Join(dir, "upload.xlsx")
	writeWorkbook(t, upload, fixtureSheet{name: "Plugs", rows: partRows("SP", "Iridium", 25)})
	data, err := os.ReadFile(upload)
	require.NoError(t, err)

	table, err := svc.ReplaceSource(ctx, "sparkplugs", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 25, table.Len())

	dest := filepath.Join(dir, "data", "sparkplugs.xlsx")
	assert.Equal(t, dest, table.Path)
	onDisk, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)

	current, err := svc.Table("sparkplugs")
	require.NoError(t, err)
	assert.Same(t, table, current)
	assert.Equal(t, 0, svc.UploadLimiterStatus().Active)

	_, err = svc.ReplaceSource(ctx, "pistons", bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrUnknownCatalog)
}

func TestService_ReplaceSourceRejectsBadWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := engineWorkbook(t, dir)
	svc := newTestService(t, dir)
	ctx := context.Background()

	before, err := svc.Refresh(ctx, "engines")
	require.NoError(t, err)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = svc.ReplaceSource(ctx, "engines", bytes.NewReader([]byte("not a workbook")))
	assert.ErrorIs(t, err, ErrLoadFailure)

	current, err := svc.Table("engines")
	require.NoError(t, err)
	assert.Same(t, before, current)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, onDisk)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary upload file is removed")
}

func TestService_ConcurrentRefreshAndUploadMatchFile(t *testing.T) {
	dir := t.TempDir()
	path := engineWorkbook(t, dir)
	limiter := NewUploadLimiter(4, 5*time.Second)
	svc := newTestService(t, dir, WithUploadLimiter(limiter))
	ctx := context.Background()

	uploads := make([][]byte, 3)
	for i := range uploads {
		src := filepath.Join(t.TempDir(), "src.xlsx")
		writeWorkbook(t, src, fixtureSheet{name: "V8", rows: partRows("E8", "V-8 Engine", i+1)})
		data, err := os.ReadFile(src)
		require.NoError(t, err)
		uploads[i] = data
	}

	for round := 0; round < 10; round++ {
		var wg sync.WaitGroup
		for i, data := range uploads {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = svc.Refresh(ctx, "engines")
			}()
			go func(data []byte, n int) {
				defer wg.Done()
				table, err := svc.ReplaceSource(ctx, "engines", bytes.NewReader(data))
				if assert.NoError(t, err) {
					assert.Equal(t, n, table.Len())
				}
			}(data, i+1)
		}
		wg.Wait()

		onDisk, err := LoadTable(testDefs[0], path)
		require.NoError(t, err)
		current, err := svc.Table("engines")
		require.NoError(t, err)
		assert.Equal(t, onDisk.Len(), current.Len(), "installed table matches the file on disk")
	}
}

func TestService_ReplaceSourceBusy(t *testing.T) {
	limiter := NewUploadLimiter(1, 20*time.Millisecond)
	svc := newTestService(t, t.TempDir(), WithUploadLimiter(limiter))

	require.NoError(t, limiter.Acquire(context.Background()))
	defer limiter.Release()

	_, err := svc.ReplaceSource(context.Background(), "engines", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrTooManyUploads)
}

func TestService_Status(t *testing.T) {
	dir := t.TempDir()
	engineWorkbook(t, dir)
	svc := newTestService(t, dir)
	_, err := svc.Refresh(context.Background(), "engines")
	require.NoError(t, err)

	status := svc.Status()
	require.Len(t, status, 3)

	assert.Equal(t, "engines", status[0].Key)
	assert.True(t, status[0].Loaded)
	assert.Equal(t, 20, status[0].Rows)
	assert.Equal(t, []string{"V8", "V6"}, status[0].Sheets)
	assert.NotNil(t, status[0].LoadedAt)

	assert.Equal(t, "filters", status[1].Key)
	assert.False(t, status[1].Loaded)
	assert.Nil(t, status[1].LoadedAt)
}
