// Package loader reads uploaded files (delimited text, JSON, spreadsheets)
// into in-memory tables.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"datasight/domain/core"
	"datasight/domain/table"
	"datasight/internal"
)

// Format is a supported input file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	// FormatXLS is recognised so it can be rejected with a clear message
	FormatXLS Format = "xls"
)

// SupportedFormats lists the formats Load can read
var SupportedFormats = []Format{FormatCSV, FormatTXT, FormatJSON, FormatXLSX}

// FormatFromFilename derives the format from the file extension
func FormatFromFilename(name string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch Format(ext) {
	case FormatCSV, FormatTXT, FormatJSON, FormatXLSX:
		return Format(ext), nil
	case FormatXLS:
		return "", fmt.Errorf("%w: legacy .xls workbooks are not supported, save as .xlsx", core.ErrUnsupportedFormat)
	case "":
		return "", fmt.Errorf("%w: %q has no extension", core.ErrUnsupportedFormat, name)
	default:
		return "", fmt.Errorf("%w: .%s", core.ErrUnsupportedFormat, ext)
	}
}

// Config holds loader settings
type Config struct {
	Coercion CoercionConfig
	// MaxBytes bounds how much of the input is read; 0 means unlimited
	MaxBytes int64
}

// DefaultConfig returns the loader defaults
func DefaultConfig() Config {
	return Config{Coercion: DefaultCoercionConfig()}
}

// Loader reads supported file formats into tables
type Loader struct {
	config  Config
	coercer *Coercer
	logger  *internal.Logger
}

// New creates a loader
func New(config Config, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.NopLogger()
	}
	return &Loader{config: config, coercer: NewCoercer(config.Coercion), logger: logger}
}

// Load reads r as the format implied by filename. The table is named after
// the file without its extension.
func (l *Loader) Load(r io.Reader, filename string) (*table.Table, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return l.LoadFormat(r, name, format)
}

// LoadFormat reads r as format
func (l *Loader) LoadFormat(r io.Reader, name string, format Format) (*table.Table, error) {
	start := time.Now()

	data, err := l.readAll(r)
	if err != nil {
		return nil, err
	}

	var t *table.Table
	switch format {
	case FormatCSV:
		t, err = l.readDelimited(data, name, ',')
	case FormatTXT:
		t, err = l.readDelimited(data, name, SniffDelimiter(data))
	case FormatJSON:
		t, err = l.readJSON(data, name)
	case FormatXLSX:
		t, err = l.readXLSX(data, name)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, format)
	}
	if err != nil {
		l.logger.Warn("[Loader] %s %q rejected: %v", format, name, err)
		return nil, err
	}

	l.logger.Debug("[Loader] %s %q loaded in %.2fms (%d columns, %d rows)",
		format, name, float64(time.Since(start).Nanoseconds())/1e6, t.ColumnCount(), t.RowCount())
	return t, nil
}

func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	if l.config.MaxBytes > 0 {
		r = io.LimitReader(r, l.config.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, core.NewLoadError("read", err)
	}
	if l.config.MaxBytes > 0 && int64(len(data)) > l.config.MaxBytes {
		return nil, core.NewLoadError("read", fmt.Errorf("input exceeds %d bytes", l.config.MaxBytes))
	}
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), nil
}

// assemble builds the table from a header and typed rows. Short rows are
// padded with missing cells.
func assemble(name string, headers []string, rows [][]table.Value) (*table.Table, error) {
	names := DedupHeaders(headers)
	cols := make([]*table.Column, len(names))
	for j, colName := range names {
		values := make([]table.Value, len(rows))
		for i, row := range rows {
			if j < len(row) {
				values[i] = row[j]
			}
		}
		cols[j] = table.NewColumn(colName, values)
	}
	t, err := table.New(name, len(rows), cols...)
	if err != nil {
		return nil, core.NewLoadError("table", err)
	}
	return t, nil
}

// DedupHeaders trims header names, names blank headers column_N (1-based)
// and suffixes repeats with _2, _3, ...
func DedupHeaders(headers []string) []string {
	out := make([]string, len(headers))
	used := make(map[string]struct{}, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		candidate := h
		for n := 2; ; n++ {
			if _, taken := used[candidate]; !taken {
				break
			}
			candidate = fmt.Sprintf("%s_%d", h, n)
		}
		used[candidate] = struct{}{}
		out[i] = candidate
	}
	return out
}
