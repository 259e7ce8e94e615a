package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeEngines(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "V8"))
	require.NoError(t, f.SetSheetRow("V8", "A1", &[]any{"Part", "Description"}))
	for i := 1; i <= 5; i++ {
		row := []any{fmt.Sprintf("E8-%02d", i), "V-8 Engine"}
		require.NoError(t, f.SetSheetRow("V8", fmt.Sprintf("A%d", i+1), &row))
	}
	_, err := f.NewSheet("V6")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("V6", "A1", &[]any{"Part", "Bore"}))
	require.NoError(t, f.SetSheetRow("V6", "A2", &[]any{"E6-01", 3.5}))

	path := filepath.Join(dir, "engines.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	path := writeEngines(t, t.TempDir())

	out, err := run(t, "inspect", path)
	require.NoError(t, err)

	var got struct {
		Catalog string   `json:"catalog"`
		Label   string   `json:"label"`
		Sheets  []string `json:"sheets"`
		Columns []string `json:"columns"`
		Rows    int      `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "engines", got.Catalog)
	assert.Equal(t, "Engines", got.Label)
	assert.Equal(t, []string{"V8", "V6"}, got.Sheets)
	assert.Equal(t, []string{"Part", "Description", "source", "sheet", "Bore"}, got.Columns)
	assert.Equal(t, 6, got.Rows)
}

func TestSearch(t *testing.T) {
	dir := t.TempDir()
	writeEngines(t, dir)

	out, err := run(t, "search", "engines", "v8", "--data-dir", dir, "--page-size", "2")
	require.NoError(t, err)

	var got struct {
		Total   int              `json:"total"`
		HasMore bool             `json:"has_more"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 5, got.Total)
	assert.True(t, got.HasMore)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "E8-01", got.Results[0]["Part"])
}

func TestSearch_UnknownCatalog(t *testing.T) {
	_, err := run(t, "search", "pistons", "--data-dir", t.TempDir())
	assert.ErrorContains(t, err, "unknown catalog")
}
