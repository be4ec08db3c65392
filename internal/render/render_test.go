package render

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"datasight/domain/chart"
	"datasight/domain/core"
	"datasight/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vals(in ...interface{}) []table.Value {
	out := make([]table.Value, len(in))
	for i, v := range in {
		switch x := v.(type) {
		case nil:
			out[i] = table.Missing()
		case int:
			out[i] = table.NewNumericValue(float64(x))
		case float64:
			out[i] = table.NewNumericValue(x)
		case string:
			out[i] = table.NewStringValue(x)
		}
	}
	return out
}

func employees(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.FromColumns("employees",
		table.NewColumn("Age", vals(22, 30, 65, nil)),
		table.NewColumn("Salary", vals(40000, 52000, 90000, 61000)),
		table.NewColumn("Department", vals("A", "B", "A", "B")),
		table.NewColumn("Flat", vals(1, 1, 1, 1)),
	)
	require.NoError(t, err)
	return tbl
}

func TestRender_BindingFailures(t *testing.T) {
	tbl := employees(t)
	tests := []struct {
		name string
		cfg  chart.Config
		kind error
	}{
		{"scatter without y", chart.Config{Type: chart.TypeScatter, XColumn: "Age"}, core.ErrBindingMissing},
		{"box with blank x", chart.Config{Type: chart.TypeBox, XColumn: "  ", YColumn: "Age"}, core.ErrBindingMissing},
		{"histogram without column", chart.Config{Type: chart.TypeHistogram}, core.ErrBindingMissing},
		{"heatmap without columns", chart.Config{Type: chart.TypeCorrelationHeatmap, Columns: []string{""}}, core.ErrBindingMissing},
		{"unknown type", chart.Config{Type: "radar", Column: "Age"}, core.ErrUnknownChartType},
		{"unknown column", chart.Config{Type: chart.TypeBar, Column: "Region"}, core.ErrColumnNotFound},
		{"unknown heatmap column", chart.Config{Type: chart.TypeCorrelationHeatmap, Columns: []string{"Age", "Nope"}}, core.ErrColumnNotFound},
		{"histogram of text", chart.Config{Type: chart.TypeHistogram, Column: "Department"}, core.ErrCompute},
		{"heatmap of text", chart.Config{Type: chart.TypeCorrelationHeatmap, Columns: []string{"Department"}}, core.ErrCompute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Render(tbl, tt.cfg)
			require.Error(t, err)
			assert.Nil(t, desc)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			f, ok := AsFailure(err)
			require.True(t, ok)
			assert.NotEmpty(t, f.Reason)
		})
	}
}

func TestRender_ScatterWithoutYIsBindingError(t *testing.T) {
	_, err := Render(employees(t), chart.Config{Type: chart.TypeScatter, XColumn: "Age"})
	require.Error(t, err)
	assert.True(t, core.IsBindingError(err))
	assert.Contains(t, err.Error(), "y_column")
}

func TestRender_NilTable(t *testing.T) {
	_, err := Render(nil, chart.Config{Type: chart.TypeBar, Column: "x"})
	assert.True(t, core.IsComputeError(err))
}

func TestRender_XYPassThrough(t *testing.T) {
	tbl := employees(t)
	for _, ct := range []chart.Type{chart.TypeScatter, chart.TypeLine, chart.TypeArea, chart.TypeBox} {
		t.Run(string(ct), func(t *testing.T) {
			desc, err := Render(tbl, chart.Config{Type: ct, XColumn: "Age", YColumn: "Salary"})
			require.NoError(t, err)
			require.Len(t, desc.Traces, 1)

			tr := desc.Traces[0]
			assert.Equal(t, string(ct), tr.Kind)
			assert.Equal(t, []interface{}{22.0, 30.0, 65.0, nil}, tr.X)
			assert.Equal(t, []interface{}{40000.0, 52000.0, 90000.0, 61000.0}, tr.Y)
			assert.Equal(t, "Age", desc.Layout.XAxis.Title)
			assert.Equal(t, "Salary", desc.Layout.YAxis.Title)
		})
	}

	area, err := Render(tbl, chart.Config{Type: chart.TypeArea, XColumn: "Age", YColumn: "Salary"})
	require.NoError(t, err)
	assert.Equal(t, "tozeroy", area.Traces[0].Fill)
	assert.Equal(t, "Area Chart: Age vs Salary", area.Title)
}

func TestRender_KeepsCallerTitle(t *testing.T) {
	desc, err := Render(employees(t), chart.Config{Type: chart.TypeBar, Column: "Department", Title: "Headcount"})
	require.NoError(t, err)
	assert.Equal(t, "Headcount", desc.Title)
	assert.Equal(t, "Headcount", desc.Layout.Title)
}

func TestRender_Histogram(t *testing.T) {
	desc, err := Render(employees(t), chart.Config{Type: chart.TypeHistogram, Column: "Age"})
	require.NoError(t, err)
	assert.Equal(t, "Distribution of Age", desc.Title)

	bins := desc.Traces[0].Bins
	require.Len(t, bins, 3)
	assert.Equal(t, 22.0, bins[0].Start)
	assert.Equal(t, 65.0, bins[2].End)
	assert.Equal(t, []int{2, 0, 1}, []int{bins[0].Count, bins[1].Count, bins[2].Count})
}

func TestBins(t *testing.T) {
	assert.Empty(t, Bins(nil))

	constant := Bins([]float64{4, 4, 4})
	require.Len(t, constant, 1)
	assert.Equal(t, chart.Bin{Start: 4, End: 4, Count: 3}, constant[0])

	data := []float64{9, 1, 5, 3, 7, 2, 8, 4, 6, 10}
	bins := Bins(data)
	assert.Len(t, bins, SturgesBins(len(data)))
	total := 0
	for i, b := range bins {
		total += b.Count
		assert.Less(t, b.Start, b.End)
		if i > 0 {
			assert.Equal(t, bins[i-1].End, b.Start)
		}
	}
	assert.Equal(t, len(data), total)
	assert.Equal(t, []float64{9, 1, 5, 3, 7, 2, 8, 4, 6, 10}, data, "input must not be reordered")
}

func TestBins_RangeBeyondFloatMax(t *testing.T) {
	bins := Bins([]float64{-1e308, 1e308, 0})
	require.Len(t, bins, SturgesBins(3))

	total := 0
	for _, b := range bins {
		total += b.Count
		assert.False(t, math.IsNaN(b.Start) || math.IsInf(b.Start, 0))
		assert.Less(t, b.Start, b.End)
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, -1e308, bins[0].Start)
	assert.Equal(t, 1e308, bins[len(bins)-1].End)
}

func TestRender_HistogramHugeRange(t *testing.T) {
	tbl, err := table.FromColumns("wide", table.NewColumn("v", vals(-1e308, 1e308, 0)))
	require.NoError(t, err)

	desc, err := Render(tbl, chart.Config{Type: chart.TypeHistogram, Column: "v"})
	require.NoError(t, err)
	assert.Equal(t, chart.TypeHistogram, desc.Type)
}

func TestSturgesBins(t *testing.T) {
	assert.Equal(t, 1, SturgesBins(0))
	assert.Equal(t, 1, SturgesBins(1))
	assert.Equal(t, 2, SturgesBins(2))
	assert.Equal(t, 3, SturgesBins(3))
	assert.Equal(t, 5, SturgesBins(10))
	assert.Equal(t, 11, SturgesBins(1000))
}

func TestRender_BarOrdersByCountThenFirstAppearance(t *testing.T) {
	tbl, err := table.FromColumns("t",
		table.NewColumn("c", vals("x", "y", "z", "y", nil, "z", "w")),
	)
	require.NoError(t, err)

	desc, err := Render(tbl, chart.Config{Type: chart.TypeBar, Column: "c"})
	require.NoError(t, err)
	tr := desc.Traces[0]
	assert.Equal(t, []interface{}{"y", "z", "x", "w"}, tr.X)
	assert.Equal(t, []int{2, 2, 1, 1}, tr.Counts)
}

func TestRender_PieProportions(t *testing.T) {
	desc, err := Render(employees(t), chart.Config{Type: chart.TypePie, Column: "Department"})
	require.NoError(t, err)
	tr := desc.Traces[0]
	assert.Equal(t, []string{"A", "B"}, tr.Labels)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, tr.Values, 1e-12)
	assert.Equal(t, "Proportion by Department", desc.Title)
}

func TestRender_Heatmap(t *testing.T) {
	desc, err := Render(employees(t), chart.Config{
		Type:    chart.TypeCorrelationHeatmap,
		Columns: []string{"Age", "Department", "Salary", "Flat", "Age"},
	})
	require.NoError(t, err)

	tr := desc.Traces[0]
	assert.Equal(t, []interface{}{"Age", "Salary", "Flat"}, tr.X)
	assert.Equal(t, tr.X, tr.Y)
	require.Len(t, tr.Z, 3)

	require.NotNil(t, tr.Z[0][0])
	assert.Equal(t, 1.0, *tr.Z[0][0])
	require.NotNil(t, tr.Z[0][1])
	assert.Equal(t, *tr.Z[0][1], *tr.Z[1][0])
	assert.Nil(t, tr.Z[2][2], "constant column has no defined correlation")
	assert.Nil(t, tr.Z[0][2])

	data, err := json.Marshal(desc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "null")
}

func TestRender_Idempotent(t *testing.T) {
	tbl := employees(t)
	cfgs := []chart.Config{
		{Type: chart.TypeHistogram, Column: "Salary"},
		{Type: chart.TypeBar, Column: "Department"},
		{Type: chart.TypeCorrelationHeatmap, Columns: []string{"Age", "Salary"}},
		{Type: chart.TypeBox, XColumn: "Department", YColumn: "Age"},
	}
	for _, cfg := range cfgs {
		first, err := Render(tbl, cfg)
		require.NoError(t, err)
		second, err := Render(tbl, cfg)
		require.NoError(t, err)

		a, _ := json.Marshal(first)
		b, _ := json.Marshal(second)
		assert.JSONEq(t, string(a), string(b))
	}
}
