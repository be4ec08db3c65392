// Package profiling turns an in-memory table into a DatasetProfile: column
// classification, per-column statistics, dataset summary, chart suggestions
// and insights. Everything here is a pure function of the input table.
package profiling

import (
	"datasight/domain/chart"
	"datasight/domain/profile"
	"datasight/domain/table"
	"datasight/internal/recommend"
)

// DataProfiler orchestrates classification and statistics across a dataset
type DataProfiler struct {
	insights InsightConfig
}

// NewDataProfiler creates a new data profiler
func NewDataProfiler() *DataProfiler {
	return &DataProfiler{insights: DefaultInsightConfig()}
}

// NewDataProfilerWithConfig creates a profiler with custom insight settings
func NewDataProfilerWithConfig(cfg InsightConfig) *DataProfiler {
	return &DataProfiler{insights: cfg}
}

// ProfileColumn classifies a column and computes its statistics
func (dp *DataProfiler) ProfileColumn(col table.ColumnReader) profile.ColumnProfile {
	return ProfileColumn(col, Classify(col))
}

// ProfileColumn computes the statistics for a column already classified as
// kind. Numeric statistics are only computed for KindNumeric.
func ProfileColumn(col table.ColumnReader, kind profile.ColumnKind) profile.ColumnProfile {
	p := profile.ColumnProfile{
		Name: col.Name(),
		Kind: kind,
	}

	distinct := make(map[string]struct{})
	var numbers []float64
	for i := 0; i < col.Len(); i++ {
		v := col.At(i)
		if v.IsMissing() {
			p.MissingCount++
			continue
		}
		distinct[v.Key()] = struct{}{}
		if kind == profile.KindNumeric {
			if f, ok := v.Float(); ok {
				numbers = append(numbers, f)
			}
		}
	}
	p.UniqueCount = len(distinct)

	if kind == profile.KindNumeric {
		s := Summarize(numbers)
		p.Min, p.Max, p.Mean, p.Std = s.Min, s.Max, s.Mean, s.Std
	}
	return p
}

// ProfileDataset analyzes all columns in a table and assembles the summary,
// chart suggestions and insights. A nil or column-less table yields a valid,
// empty profile.
func (dp *DataProfiler) ProfileDataset(t *table.Table) *profile.DatasetProfile {
	result := &profile.DatasetProfile{
		Summary: profile.DatasetSummary{
			DataTypes: profile.ColumnTypes{},
		},
		Columns:     profile.ColumnProfiles{},
		Suggestions: []chart.Suggestion{},
		Insights:    []string{},
	}
	if t == nil {
		return result
	}

	result.Summary.RowCount = t.RowCount()
	result.Summary.ColumnCount = t.ColumnCount()

	var numericCols, categoricalCols []string
	numericReaders := make([]table.ColumnReader, 0)
	for _, col := range t.Columns() {
		p := dp.ProfileColumn(col)
		result.Columns = append(result.Columns, p)
		result.Summary.DataTypes = append(result.Summary.DataTypes, profile.ColumnType{Name: p.Name, Kind: p.Kind})
		result.Summary.TotalMissingCount += p.MissingCount

		if p.Kind == profile.KindNumeric {
			numericCols = append(numericCols, p.Name)
			numericReaders = append(numericReaders, col)
		} else {
			categoricalCols = append(categoricalCols, p.Name)
		}
	}

	result.Suggestions = recommend.Suggest(numericCols, categoricalCols, result.ByName())
	result.Insights = dp.generateInsights(numericReaders, len(categoricalCols), result.Summary.TotalMissingCount)

	return result
}

// Profile is a convenience wrapper around a default DataProfiler
func Profile(t *table.Table) *profile.DatasetProfile {
	return NewDataProfiler().ProfileDataset(t)
}
