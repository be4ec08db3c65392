// Package recommend derives chart suggestions from a profiled dataset using
// fixed, ordered rules. The first suggestion is the most prominent one.
package recommend

import (
	"datasight/domain/chart"
	"datasight/domain/profile"
)

const (
	// MaxHistograms is how many numeric columns get a histogram
	MaxHistograms = 3
	// MaxBarCharts is how many categorical columns are considered for bar charts
	MaxBarCharts = 2
	// BarCardinalityCap is the largest unique_count still readable as a bar chart
	BarCardinalityCap = 20
	// PieCardinalityCap is the largest unique_count still readable as a pie chart
	PieCardinalityCap = 10
)

// Suggest returns the ordered chart suggestions for the given column
// partitions. profiles supplies unique counts for the cardinality caps; a
// categorical column without a profile is never suggested as bar or pie.
func Suggest(numericCols, categoricalCols []string, profiles map[string]profile.ColumnProfile) []chart.Suggestion {
	out := []chart.Suggestion{}
	seen := make(map[string]struct{})
	add := func(s chart.Suggestion) {
		k := key(s)
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}

	if len(numericCols) >= 2 {
		x, y := numericCols[0], numericCols[1]
		add(xy(chart.TypeScatter, x, y))
		add(chart.Suggestion{
			Type:    chart.TypeCorrelationHeatmap,
			Title:   chart.DefaultTitle(chart.TypeCorrelationHeatmap, "", "", ""),
			Columns: append([]string(nil), numericCols...),
		})
		add(xy(chart.TypeLine, x, y))
		add(xy(chart.TypeArea, x, y))
	}

	for i, col := range numericCols {
		if i >= MaxHistograms {
			break
		}
		add(single(chart.TypeHistogram, col))
	}

	if len(categoricalCols) >= 1 {
		for i, col := range categoricalCols {
			if i >= MaxBarCharts {
				break
			}
			if withinCap(profiles, col, BarCardinalityCap) {
				add(single(chart.TypeBar, col))
			}
		}
		if withinCap(profiles, categoricalCols[0], PieCardinalityCap) {
			add(single(chart.TypePie, categoricalCols[0]))
		}
	}

	if len(categoricalCols) >= 1 && len(numericCols) >= 1 {
		add(xy(chart.TypeBox, categoricalCols[0], numericCols[0]))
	}

	return out
}

func withinCap(profiles map[string]profile.ColumnProfile, col string, limit int) bool {
	p, ok := profiles[col]
	return ok && p.UniqueCount <= limit
}

func single(t chart.Type, col string) chart.Suggestion {
	return chart.Suggestion{Type: t, Title: chart.DefaultTitle(t, col, "", ""), Column: col}
}

func xy(t chart.Type, x, y string) chart.Suggestion {
	return chart.Suggestion{Type: t, Title: chart.DefaultTitle(t, "", x, y), XColumn: x, YColumn: y}
}

func key(s chart.Suggestion) string {
	k := string(s.Type) + "\x00" + s.Column + "\x00" + s.XColumn + "\x00" + s.YColumn
	for _, c := range s.Columns {
		k += "\x00" + c
	}
	return k
}
