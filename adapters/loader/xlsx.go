package loader

import (
	"bytes"
	"errors"
	"strings"

	"datasight/domain/core"
	"datasight/domain/table"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first worksheet. The first row is the header. Native
// cell types decide storage: cells typed as text stay text even when they
// look numeric.
func (l *Loader) readXLSX(data []byte, name string) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, core.NewLoadError("xlsx", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.NewLoadError("xlsx", errors.New("workbook has no sheets"))
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, core.NewLoadError("xlsx", err)
	}
	if len(rows) == 0 {
		return nil, core.NewLoadError("xlsx", errors.New("no header row"))
	}

	header := rows[0]
	width := len(header)
	for _, row := range rows[1:] {
		if len(row) > width {
			width = len(row)
		}
	}
	for len(header) < width {
		header = append(header, "")
	}

	values := make([][]table.Value, 0, len(rows)-1)
	for i, raw := range rows[1:] {
		rowNum := i + 2
		row := make([]table.Value, len(raw))
		for j, cell := range raw {
			row[j] = l.xlsxCell(f, sheet, j+1, rowNum, cell)
		}
		values = append(values, row)
	}

	l.logger.Trace("[Loader] xlsx sheet %q: %d header cells, %d data rows", sheet, len(header), len(values))
	return assemble(name, header, values)
}

func (l *Loader) xlsxCell(f *excelize.File, sheet string, col, row int, raw string) table.Value {
	if l.coercer.IsMissing(raw) {
		return table.Missing()
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return l.coercer.CoerceString(raw)
	}
	cellType, err := f.GetCellType(sheet, ref)
	if err != nil {
		return l.coercer.CoerceString(raw)
	}

	switch cellType {
	case excelize.CellTypeInlineString, excelize.CellTypeSharedString:
		return l.coercer.CoerceText(raw)
	case excelize.CellTypeBool:
		switch strings.ToUpper(strings.TrimSpace(raw)) {
		case "1", "TRUE":
			return table.NewBooleanValue(true)
		case "0", "FALSE":
			return table.NewBooleanValue(false)
		}
		return l.coercer.CoerceText(raw)
	case excelize.CellTypeError:
		return table.Missing()
	case excelize.CellTypeDate:
		formatted, err := f.GetCellValue(sheet, ref)
		if err != nil || formatted == "" {
			formatted = raw
		}
		return l.coercer.CoerceText(formatted)
	default:
		// numbers are usually written without an explicit type
		return l.coercer.CoerceString(raw)
	}
}
