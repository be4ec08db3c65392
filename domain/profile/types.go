// Package profile defines the statistical profile produced for an uploaded
// table. Field names on the wire follow the analysis payload the web client
// consumes (rows, missing_values, unique_values, ...).
package profile

import (
	"datasight/domain/chart"
	"datasight/domain/core"
)

// ColumnKind is the profiler's classification of a column
type ColumnKind string

const (
	KindNumeric     ColumnKind = "number"
	KindCategorical ColumnKind = "text"
	KindOther       ColumnKind = "other"
)

// ColumnProfile holds per-column statistics. Min, Max, Mean and Std are only
// set for numeric columns, and stay nil when the statistic is undefined.
type ColumnProfile struct {
	Name         string     `json:"-"`
	Kind         ColumnKind `json:"type"`
	MissingCount int        `json:"missing"`
	UniqueCount  int        `json:"unique_values"`
	Min          *float64   `json:"min,omitempty"`
	Max          *float64   `json:"max,omitempty"`
	Mean         *float64   `json:"mean,omitempty"`
	Std          *float64   `json:"std,omitempty"`
}

// ColumnType pairs a column name with its kind
type ColumnType struct {
	Name string
	Kind ColumnKind
}

// DatasetSummary aggregates dataset-level counts
type DatasetSummary struct {
	RowCount          int         `json:"rows"`
	ColumnCount       int         `json:"columns"`
	TotalMissingCount int         `json:"missing_values"`
	DataTypes         ColumnTypes `json:"data_types"`
}

// DatasetProfile is the complete, immutable analysis of one table
type DatasetProfile struct {
	Summary     DatasetSummary     `json:"summary"`
	Columns     ColumnProfiles     `json:"columns"`
	Suggestions []chart.Suggestion `json:"suggested_charts"`
	Insights    []string           `json:"insights"`
}

// Lookup returns the profile of the named column
func (p *DatasetProfile) Lookup(name string) (ColumnProfile, bool) {
	for _, c := range p.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnProfile{}, false
}

// ByName indexes the column profiles by name
func (p *DatasetProfile) ByName() map[string]ColumnProfile {
	out := make(map[string]ColumnProfile, len(p.Columns))
	for _, c := range p.Columns {
		out[c.Name] = c
	}
	return out
}

// StoredProfile is a profile persisted for later recall, keyed by the id of
// the upload it was computed from.
type StoredProfile struct {
	FileID    core.FileID     `json:"file_id"`
	Filename  string          `json:"filename"`
	Profile   *DatasetProfile `json:"analysis"`
	CreatedAt core.Timestamp  `json:"created_at"`
}
