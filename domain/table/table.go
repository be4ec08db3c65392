// Package table holds the in-memory tabular model every profiling and
// rendering operation reads from. Tables are immutable once built.
package table

import (
	"fmt"
	"strings"

	"datasight/domain/core"
)

// StorageType is the declared (or loader-inferred) storage type of a column
type StorageType string

const (
	StorageNumeric StorageType = "numeric"
	StorageText    StorageType = "text"
	StorageBoolean StorageType = "boolean"
	StorageMixed   StorageType = "mixed"
	StorageUnknown StorageType = "unknown"
)

// ColumnReader is the narrow read-only view the profiler needs. Any column
// storage (columnar arrays, row records, a database cursor materialised in
// memory) can be profiled by implementing it.
type ColumnReader interface {
	Name() string
	Storage() StorageType
	Len() int
	At(i int) Value
}

// Column is a named, typed sequence of cells
type Column struct {
	name    string
	storage StorageType
	values  []Value
}

// NewColumn builds a column and infers its storage type from the values
func NewColumn(name string, values []Value) *Column {
	return NewColumnWithStorage(name, InferStorage(values), values)
}

// NewColumnWithStorage builds a column with an explicitly declared storage
// type, as loaders do when the source format carries its own type
// information.
func NewColumnWithStorage(name string, storage StorageType, values []Value) *Column {
	cp := make([]Value, len(values))
	copy(cp, values)
	return &Column{name: name, storage: storage, values: cp}
}

func (c *Column) Name() string         { return c.name }
func (c *Column) Storage() StorageType { return c.storage }
func (c *Column) Len() int             { return len(c.values) }
func (c *Column) At(i int) Value       { return c.values[i] }

// InferStorage derives a storage type from cell types: a single non-missing
// cell type wins, more than one yields mixed, none yields unknown.
func InferStorage(values []Value) StorageType {
	seen := ""
	for _, v := range values {
		t := v.Type()
		if t == ValueTypeMissing {
			continue
		}
		if seen == "" {
			seen = string(t)
			continue
		}
		if seen != string(t) {
			return StorageMixed
		}
	}
	switch ValueType(seen) {
	case ValueTypeNumeric:
		return StorageNumeric
	case ValueTypeString:
		return StorageText
	case ValueTypeBoolean:
		return StorageBoolean
	default:
		return StorageUnknown
	}
}

// Table is an ordered set of equally long, uniquely named columns
type Table struct {
	name    string
	rows    int
	columns []*Column
	index   map[string]int
}

// New validates and assembles a table. rows is explicit so that a table
// with no columns can still report how many records the source held.
func New(name string, rows int, columns ...*Column) (*Table, error) {
	if rows < 0 {
		return nil, fmt.Errorf("%w: negative row count %d", core.ErrInvalidTable, rows)
	}
	t := &Table{
		name:    name,
		rows:    rows,
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		if col == nil {
			return nil, fmt.Errorf("%w: nil column", core.ErrInvalidTable)
		}
		if strings.TrimSpace(col.name) == "" {
			return nil, fmt.Errorf("%w: column %d has no name", core.ErrInvalidTable, len(t.columns))
		}
		if _, dup := t.index[col.name]; dup {
			return nil, fmt.Errorf("%w: duplicate column name %q", core.ErrInvalidTable, col.name)
		}
		if col.Len() != rows {
			return nil, fmt.Errorf("%w: column %q has %d values, expected %d",
				core.ErrInvalidTable, col.name, col.Len(), rows)
		}
		t.index[col.name] = len(t.columns)
		t.columns = append(t.columns, col)
	}
	return t, nil
}

// FromColumns builds a table whose row count is taken from the first column
func FromColumns(name string, columns ...*Column) (*Table, error) {
	rows := 0
	if len(columns) > 0 && columns[0] != nil {
		rows = columns[0].Len()
	}
	return New(name, rows, columns...)
}

func (t *Table) Name() string     { return t.name }
func (t *Table) RowCount() int    { return t.rows }
func (t *Table) ColumnCount() int { return len(t.columns) }

// Columns returns the columns in table order
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column looks a column up by name
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// ColumnNames returns the column names in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}
