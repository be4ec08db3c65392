package render

import (
	"math"
	"sort"

	"datasight/domain/chart"
	"datasight/domain/core"
	"datasight/domain/profile"
	"datasight/domain/table"
	"datasight/internal/profiling"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var xyTraces = map[chart.Type]chart.Trace{
	chart.TypeScatter: {Kind: "scatter", Mode: "markers"},
	chart.TypeLine:    {Kind: "line", Mode: "lines"},
	chart.TypeArea:    {Kind: "area", Mode: "lines", Fill: "tozeroy"},
	chart.TypeBox:     {Kind: "box"},
}

// renderXY passes both columns through row by row; missing cells stay null
func renderXY(t *table.Table, cfg chart.Config, title string) (*chart.Description, error) {
	xCol, err := lookup(t, cfg.Type, cfg.XColumn)
	if err != nil {
		return nil, err
	}
	yCol, err := lookup(t, cfg.Type, cfg.YColumn)
	if err != nil {
		return nil, err
	}

	trace := xyTraces[cfg.Type]
	trace.Name = yCol.Name()
	trace.X = cells(xCol)
	trace.Y = cells(yCol)

	return &chart.Description{
		Type:   cfg.Type,
		Title:  title,
		Traces: []chart.Trace{trace},
		Layout: chart.Layout{
			Title: title,
			XAxis: chart.Axis{Title: xCol.Name()},
			YAxis: chart.Axis{Title: yCol.Name()},
		},
	}, nil
}

func cells(col table.ColumnReader) []interface{} {
	out := make([]interface{}, col.Len())
	for i := range out {
		out[i] = col.At(i).Interface()
	}
	return out
}

func renderHistogram(t *table.Table, cfg chart.Config, title string) (*chart.Description, error) {
	col, err := lookup(t, cfg.Type, cfg.Column)
	if err != nil {
		return nil, err
	}
	if kind := profiling.Classify(col); kind != profile.KindNumeric {
		return nil, fail(cfg.Type, core.ErrCompute, "column %q is %s, histogram needs numeric values", col.Name(), kind)
	}

	values := profiling.NumericValues(col)
	bins := Bins(values)

	x := make([]interface{}, len(values))
	for i, v := range values {
		x[i] = v
	}
	return &chart.Description{
		Type:  cfg.Type,
		Title: title,
		Traces: []chart.Trace{{
			Kind: "histogram",
			Name: col.Name(),
			X:    x,
			Bins: bins,
		}},
		Layout: chart.Layout{
			Title: title,
			XAxis: chart.Axis{Title: col.Name()},
			YAxis: chart.Axis{Title: "Count"},
		},
	}, nil
}

// SturgesBins returns ceil(log2 n) + 1, the bin count used for histograms
func SturgesBins(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// Bins splits values into equal-width bins over [min, max]. Every bin is
// half open except the last, which also holds max. The input is not modified.
func Bins(values []float64) []chart.Bin {
	if len(values) == 0 {
		return []chart.Bin{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []chart.Bin{{Start: lo, End: hi, Count: len(sorted)}}
	}

	k := SturgesBins(len(sorted))
	dividers := binEdges(lo, hi, k)
	// stat.Histogram bins are [d[i], d[i+1]), so nudge the top edge past max
	dividers[k] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	bins := make([]chart.Bin, k)
	for i := range bins {
		end := dividers[i+1]
		if i == k-1 {
			end = hi
		}
		bins[i] = chart.Bin{Start: dividers[i], End: end, Count: int(counts[i])}
	}
	return bins
}

// binEdges returns k+1 equally spaced edges from lo to hi. When hi-lo
// overflows float64 the edges are interpolated from the endpoints instead.
func binEdges(lo, hi float64, k int) []float64 {
	edges := make([]float64, k+1)
	if !math.IsInf(hi-lo, 0) {
		return floats.Span(edges, lo, hi)
	}
	for i := range edges {
		t := float64(i) / float64(k)
		edges[i] = lo*(1-t) + hi*t
	}
	edges[k] = hi
	return edges
}

// ValueCount is one distinct cell value and how often it occurs
type ValueCount struct {
	Label string
	Count int
}

// CountValues tallies non-missing values, most frequent first. Ties keep
// the order in which values first appear.
func CountValues(col table.ColumnReader) []ValueCount {
	index := make(map[string]int)
	var counts []ValueCount
	for i := 0; i < col.Len(); i++ {
		v := col.At(i)
		if v.IsMissing() {
			continue
		}
		key := v.Key()
		if j, ok := index[key]; ok {
			counts[j].Count++
			continue
		}
		index[key] = len(counts)
		counts = append(counts, ValueCount{Label: v.String(), Count: 1})
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}

func renderBar(t *table.Table, cfg chart.Config, title string) (*chart.Description, error) {
	col, err := lookup(t, cfg.Type, cfg.Column)
	if err != nil {
		return nil, err
	}

	counts := CountValues(col)
	trace := chart.Trace{
		Kind:   "bar",
		Name:   col.Name(),
		X:      make([]interface{}, len(counts)),
		Y:      make([]interface{}, len(counts)),
		Counts: make([]int, len(counts)),
	}
	for i, vc := range counts {
		trace.X[i] = vc.Label
		trace.Y[i] = vc.Count
		trace.Counts[i] = vc.Count
	}

	return &chart.Description{
		Type:   cfg.Type,
		Title:  title,
		Traces: []chart.Trace{trace},
		Layout: chart.Layout{
			Title: title,
			XAxis: chart.Axis{Title: col.Name()},
			YAxis: chart.Axis{Title: "Count"},
		},
	}, nil
}

func renderPie(t *table.Table, cfg chart.Config, title string) (*chart.Description, error) {
	col, err := lookup(t, cfg.Type, cfg.Column)
	if err != nil {
		return nil, err
	}

	counts := CountValues(col)
	total := 0
	for _, vc := range counts {
		total += vc.Count
	}
	trace := chart.Trace{
		Kind:   "pie",
		Name:   col.Name(),
		Labels: make([]string, len(counts)),
		Values: make([]float64, len(counts)),
		Counts: make([]int, len(counts)),
	}
	for i, vc := range counts {
		trace.Labels[i] = vc.Label
		trace.Values[i] = float64(vc.Count) / float64(total)
		trace.Counts[i] = vc.Count
	}

	return &chart.Description{
		Type:   cfg.Type,
		Title:  title,
		Traces: []chart.Trace{trace},
		Layout: chart.Layout{Title: title},
	}, nil
}

func renderHeatmap(t *table.Table, cfg chart.Config, title string) (*chart.Description, error) {
	numeric := make([]table.ColumnReader, 0, len(cfg.Columns))
	for _, name := range cfg.Columns {
		col, err := lookup(t, cfg.Type, name)
		if err != nil {
			return nil, err
		}
		if profiling.Classify(col) == profile.KindNumeric {
			numeric = append(numeric, col)
		}
	}
	if len(numeric) == 0 {
		return nil, fail(cfg.Type, core.ErrCompute, "none of the requested columns are numeric")
	}

	m := profiling.Correlate(numeric)
	axis := make([]interface{}, len(m.Columns))
	for i, name := range m.Columns {
		axis[i] = name
	}

	return &chart.Description{
		Type:  cfg.Type,
		Title: title,
		Traces: []chart.Trace{{
			Kind: "heatmap",
			X:    axis,
			Y:    axis,
			Z:    m.Values,
		}},
		Layout: chart.Layout{Title: title},
	}, nil
}
