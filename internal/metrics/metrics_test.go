package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/JonMunkholm/partsearch/internal/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

var _ core.Observer = (*Recorder)(nil)

func TestRecorder_Loads(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.CatalogLoaded("engines", 20, time.Millisecond, nil)
	r.CatalogLoaded("engines", 0, time.Millisecond, errors.New("file not found"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.loads.WithLabelValues("engines", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.loads.WithLabelValues("engines", "error")))
	assert.Equal(t, 20.0, testutil.ToFloat64(r.rows.WithLabelValues("engines")))
}

func TestRecorder_Searches(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.CatalogSearched("filters", 3, 2*time.Millisecond)
	r.CatalogSearched("filters", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.searches.WithLabelValues("filters")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.searchDuration))
}
