package core

// loader.go turns a multi-sheet workbook into one flat Table.
//
// The first non-blank row of each sheet is its header. Empty header cells are
// named "Unnamed: <index>" and repeated names get ".1", ".2" suffixes. Every
// row gains the source and sheet columns. Columns are the union across sheets
// in first-seen order; a row lacking a column holds nil for it.

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// naTokens are text values read as missing, matching common spreadsheet exports.
var naTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// sheetData is one parsed sheet before flattening.
type sheetData struct {
	name    string
	columns []string
	rows    [][]any
}

// LoadTable reads every sheet of the workbook at path into a new Table for def.
// It returns ErrFileMissing when path does not exist and ErrLoadFailure when
// the workbook cannot be parsed. It has no side effects.
func LoadTable(def CatalogDefinition, path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, path)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrLoadFailure, path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrLoadFailure, path, err)
	}
	defer f.Close()

	var sheets []sheetData
	for _, name := range f.GetSheetList() {
		sd, err := readSheet(f, name, def.Label)
		if err != nil {
			return nil, fmt.Errorf("%w: %s sheet %q: %v", ErrLoadFailure, path, name, err)
		}
		sheets = append(sheets, sd)
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no sheets", ErrLoadFailure, path)
	}

	columns, rows := flatten(sheets)

	names := make([]string, len(sheets))
	for i, sd := range sheets {
		names[i] = sd.name
	}

	return &Table{
		Key:        def.Key,
		Label:      def.Label,
		Path:       path,
		Generation: uuid.NewString(),
		LoadedAt:   time.Now().UTC(),
		Sheets:     names,
		Columns:    columns,
		rows:       rows,
	}, nil
}

// readSheet parses one sheet and tags each row with label and the sheet name.
func readSheet(f *excelize.File, sheet, label string) (sheetData, error) {
	// Raw values, so number formats (currency, percent) never reach convertCell.
	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return sheetData{}, err
	}

	sd := sheetData{name: sheet}

	headerRow := -1
	width := 0
	for i, cells := range grid {
		if headerRow < 0 && !isBlank(cells) {
			headerRow = i
		}
		if headerRow >= 0 && len(cells) > width {
			width = len(cells)
		}
	}

	var header []string
	if headerRow >= 0 {
		header = headerNames(grid[headerRow], width)
	}
	sd.columns = withMeta(header)
	sourceIdx, sheetIdx := indexOf(sd.columns, ColumnSource), indexOf(sd.columns, ColumnSheet)

	if headerRow < 0 {
		return sd, nil
	}

	for i := headerRow + 1; i < len(grid); i++ {
		cells := grid[i]
		if isBlank(cells) {
			continue
		}

		row := make([]any, len(sd.columns))
		for col, text := range cells {
			if text == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return sheetData{}, err
			}
			typ, err := f.GetCellType(sheet, cellName)
			if err != nil {
				return sheetData{}, err
			}
			row[col] = convertCell(text, typ)
		}
		row[sourceIdx] = label
		row[sheetIdx] = sheet
		sd.rows = append(sd.rows, row)
	}

	return sd, nil
}

// headerNames builds unique column names for a header row padded to width.
func headerNames(cells []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(cells) {
			name = cells[i]
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for n := 1; seen[name]; n++ {
			name = base + "." + strconv.Itoa(n)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

// withMeta appends the source and sheet columns unless the header already has them,
// in which case the loader overwrites those cells.
func withMeta(header []string) []string {
	cols := append([]string(nil), header...)
	for _, meta := range []string{ColumnSource, ColumnSheet} {
		if indexOf(cols, meta) < 0 {
			cols = append(cols, meta)
		}
	}
	return cols
}

// convertCell maps the raw text of a cell to nil, string, float64 or bool.
func convertCell(text string, typ excelize.CellType) any {
	switch typ {
	case excelize.CellTypeBool:
		switch text {
		case "TRUE", "1":
			return true
		case "FALSE", "0":
			return false
		}
		return text
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil
			}
			return f
		}
	}

	if naTokens[text] {
		return nil
	}
	return text
}

// flatten concatenates sheets in order into one column set and row list.
func flatten(sheets []sheetData) ([]string, [][]any) {
	var columns []string
	index := make(map[string]int)
	total := 0
	for _, sd := range sheets {
		for _, c := range sd.columns {
			if _, ok := index[c]; !ok {
				index[c] = len(columns)
				columns = append(columns, c)
			}
		}
		total += len(sd.rows)
	}

	rows := make([][]any, 0, total)
	for _, sd := range sheets {
		for _, r := range sd.rows {
			out := make([]any, len(columns))
			for j, c := range sd.columns {
				out[index[c]] = r[j]
			}
			rows = append(rows, out)
		}
	}
	return columns, rows
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
