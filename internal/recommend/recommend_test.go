package recommend

import (
	"testing"

	"datasight/domain/chart"
	"datasight/domain/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profilesWith(unique map[string]int) map[string]profile.ColumnProfile {
	out := make(map[string]profile.ColumnProfile, len(unique))
	for name, n := range unique {
		out[name] = profile.ColumnProfile{Name: name, Kind: profile.KindCategorical, UniqueCount: n}
	}
	return out
}

func types(s []chart.Suggestion) []chart.Type {
	out := make([]chart.Type, len(s))
	for i, sg := range s {
		out[i] = sg.Type
	}
	return out
}

func TestSuggest_FullRuleOrder(t *testing.T) {
	got := Suggest(
		[]string{"Age", "Salary", "Experience", "Bonus"},
		[]string{"Department", "Name"},
		profilesWith(map[string]int{"Department": 4, "Name": 100}),
	)

	assert.Equal(t, []chart.Type{
		chart.TypeScatter,
		chart.TypeCorrelationHeatmap,
		chart.TypeLine,
		chart.TypeArea,
		chart.TypeHistogram,
		chart.TypeHistogram,
		chart.TypeHistogram,
		chart.TypeBar,
		chart.TypePie,
		chart.TypeBox,
	}, types(got))

	assert.Equal(t, chart.Suggestion{Type: chart.TypeScatter, Title: "Scatter Plot: Age vs Salary", XColumn: "Age", YColumn: "Salary"}, got[0])
	assert.Equal(t, []string{"Age", "Salary", "Experience", "Bonus"}, got[1].Columns)
	assert.Equal(t, "Experience", got[6].Column, "only the first three numeric columns get histograms")
	assert.Equal(t, "Department", got[7].Column)
	assert.Equal(t, chart.Suggestion{Type: chart.TypeBox, Title: "Age by Department", XColumn: "Department", YColumn: "Age"}, got[9])
}

func TestSuggest_BarCapIsInclusive(t *testing.T) {
	at := Suggest(nil, []string{"c"}, profilesWith(map[string]int{"c": BarCardinalityCap}))
	over := Suggest(nil, []string{"c"}, profilesWith(map[string]int{"c": BarCardinalityCap + 1}))

	assert.Equal(t, []chart.Type{chart.TypeBar}, types(at))
	assert.Empty(t, over)
}

func TestSuggest_PieCapIsInclusive(t *testing.T) {
	at := Suggest(nil, []string{"c"}, profilesWith(map[string]int{"c": PieCardinalityCap}))
	over := Suggest(nil, []string{"c"}, profilesWith(map[string]int{"c": PieCardinalityCap + 1}))

	assert.Equal(t, []chart.Type{chart.TypeBar, chart.TypePie}, types(at))
	assert.Equal(t, []chart.Type{chart.TypeBar}, types(over))
}

func TestSuggest_PieOnlyConsidersFirstCategorical(t *testing.T) {
	got := Suggest(nil, []string{"wide", "narrow"}, profilesWith(map[string]int{"wide": 15, "narrow": 3}))
	assert.Equal(t, []chart.Type{chart.TypeBar, chart.TypeBar}, types(got))
}

func TestSuggest_SingleNumericSkipsPairCharts(t *testing.T) {
	got := Suggest([]string{"Age"}, []string{"Department"}, profilesWith(map[string]int{"Department": 2}))
	assert.Equal(t, []chart.Type{chart.TypeHistogram, chart.TypeBar, chart.TypePie, chart.TypeBox}, types(got))
}

func TestSuggest_EmptyInputs(t *testing.T) {
	got := Suggest(nil, nil, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggest_CategoricalWithoutProfileIsSkipped(t *testing.T) {
	got := Suggest([]string{"x"}, []string{"unknown"}, nil)
	assert.Equal(t, []chart.Type{chart.TypeHistogram, chart.TypeBox}, types(got))
}

func TestSuggest_Deterministic(t *testing.T) {
	profiles := profilesWith(map[string]int{"a": 2, "b": 5})
	first := Suggest([]string{"x", "y"}, []string{"a", "b"}, profiles)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Suggest([]string{"x", "y"}, []string{"a", "b"}, profiles))
	}
}

func TestSuggest_NoDuplicateBindings(t *testing.T) {
	got := Suggest([]string{"x", "y"}, []string{"c", "c"}, profilesWith(map[string]int{"c": 2}))
	seen := map[string]bool{}
	for _, s := range got {
		k := key(s)
		assert.False(t, seen[k], "duplicate suggestion %+v", s)
		seen[k] = true
	}
}
