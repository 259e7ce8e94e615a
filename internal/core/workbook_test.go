package core

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fixtureSheet is a sheet written by writeWorkbook. A nil row leaves a blank line.
type fixtureSheet struct {
	name string
	rows [][]any
}

// writeWorkbook saves sheets as an .xlsx file at path.
func writeWorkbook(t *testing.T, path string, sheets ...fixtureSheet) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			if row == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

// partRows builds a header plus n rows of part numbers prefixed with prefix.
func partRows(prefix, desc string, n int) [][]any {
	rows := [][]any{{"Part", "Description", "Price"}}
	for i := 1; i <= n; i++ {
		rows = append(rows, []any{fmt.Sprintf("%s-%02d", prefix, i), desc, float64(100 + i)})
	}
	return rows
}

// engineWorkbook writes the two-sheet engines fixture: V8 and V6, ten rows each.
func engineWorkbook(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "engines.xlsx")
	writeWorkbook(t, path,
		fixtureSheet{name: "V8", rows: partRows("E8", "V-8 Engine", 10)},
		fixtureSheet{name: "V6", rows: partRows("E6", "V6", 10)},
	)
	return path
}
