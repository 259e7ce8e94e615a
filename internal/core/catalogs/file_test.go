package catalogs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/partsearch/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogs(t *testing.T) {
	for key, label := range map[string]string{
		"engines":    "Engines",
		"filters":    "Filters",
		"sparkplugs": "Spark Plugs",
	} {
		def, ok := core.Get(key)
		require.True(t, ok, "catalog %s not registered", key)
		assert.Equal(t, label, def.Label)
		assert.Equal(t, key+".xlsx", def.File)
	}
}

func TestParse(t *testing.T) {
	defs, err := Parse([]byte(`
catalogs:
  - key: engines
    label: Engines
    file: engines.xlsx
  - key: belts
    label: Belts
    file: /srv/parts/belts.xlsx
`))
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, core.CatalogDefinition{Key: "belts", Label: "Belts", File: "/srv/parts/belts.xlsx"}, defs[1])
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":         "catalogs: []",
		"bad yaml":      "catalogs: [",
		"bad key":       "catalogs:\n  - key: Engines!\n    file: e.xlsx",
		"reserved key":  "catalogs:\n  - key: refresh\n    file: r.xlsx",
		"missing file":  "catalogs:\n  - key: engines",
		"duplicate key": "catalogs:\n  - key: engines\n    file: a.xlsx\n  - key: engines\n    file: b.xlsx",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFileAndReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalogs:\n  - key: belts\n    label: Belts\n    file: belts.xlsx\n"), 0o644))

	defs, err := LoadFile(path)
	require.NoError(t, err)

	saved := core.All()
	t.Cleanup(func() { Replace(saved) })

	Replace(defs)
	assert.Equal(t, 1, core.Count())
	_, ok := core.Get("engines")
	assert.False(t, ok)
	def, ok := core.Get("belts")
	require.True(t, ok)
	assert.Equal(t, "Belts", def.Label)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
