package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"datasight/domain/core"
	"datasight/domain/table"
)

// splitDocument is the {"columns": [...], "data": [[...], ...]} layout
type splitDocument struct {
	Columns []string        `json:"columns"`
	Data    [][]interface{} `json:"data"`
}

// readJSON accepts an array of records, where column order is the order in
// which keys are first seen, or a split document.
func (l *Loader) readJSON(data []byte, name string) (*table.Table, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, core.NewLoadError("json", errors.New("empty document"))
	}

	switch trimmed[0] {
	case '[':
		return l.readRecords(trimmed, name)
	case '{':
		return l.readSplit(trimmed, name)
	default:
		return nil, core.NewLoadError("json", errors.New("expected an array of records or a columns/data object"))
	}
}

func (l *Loader) readRecords(data []byte, name string) (*table.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil {
		return nil, core.NewLoadError("json", err)
	}

	var headers []string
	seen := make(map[string]int)
	var records []map[string]interface{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, core.NewLoadError("json", err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, core.NewLoadError("json", fmt.Errorf("record %d is not an object", len(records)))
		}

		rec := make(map[string]interface{})
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, core.NewLoadError("json", err)
			}
			key, _ := keyTok.(string)
			var v interface{}
			if err := dec.Decode(&v); err != nil {
				return nil, core.NewLoadError("json", err)
			}
			if _, ok := seen[key]; !ok {
				seen[key] = len(headers)
				headers = append(headers, key)
			}
			rec[key] = v
		}
		if _, err := dec.Token(); err != nil {
			return nil, core.NewLoadError("json", err)
		}
		records = append(records, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, core.NewLoadError("json", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, core.NewLoadError("json", errors.New("trailing data after array"))
	}

	rows := make([][]table.Value, len(records))
	for i, rec := range records {
		row := make([]table.Value, len(headers))
		for key, v := range rec {
			row[seen[key]] = l.coercer.CoerceValue(v)
		}
		rows[i] = row
	}
	return assemble(name, headers, rows)
}

func (l *Loader) readSplit(data []byte, name string) (*table.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc splitDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, core.NewLoadError("json", err)
	}
	if doc.Columns == nil {
		return nil, core.NewLoadError("json", errors.New(`object documents need a "columns" list`))
	}

	rows := make([][]table.Value, len(doc.Data))
	for i, raw := range doc.Data {
		if len(raw) > len(doc.Columns) {
			return nil, core.NewLoadError("json",
				fmt.Errorf("data row %d has %d values, %d columns declared", i, len(raw), len(doc.Columns)))
		}
		row := make([]table.Value, len(raw))
		for j, v := range raw {
			row[j] = l.coercer.CoerceValue(v)
		}
		rows[i] = row
	}
	return assemble(name, doc.Columns, rows)
}
