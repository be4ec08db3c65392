package chart

import (
	"fmt"
)

// Type enumerates the chart kinds the recommender and renderer understand
type Type string

const (
	TypeScatter            Type = "scatter"
	TypeHistogram          Type = "histogram"
	TypeBar                Type = "bar"
	TypeBox                Type = "box"
	TypeCorrelationHeatmap Type = "correlation_heatmap"
	TypeLine               Type = "line"
	TypeArea               Type = "area"
	TypePie                Type = "pie"
)

// AllTypes lists every supported chart type
var AllTypes = []Type{
	TypeScatter, TypeHistogram, TypeBar, TypeBox,
	TypeCorrelationHeatmap, TypeLine, TypeArea, TypePie,
}

// Valid reports whether t is a known chart type
func (t Type) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Binding is the shape of column roles a chart type requires
type Binding string

const (
	BindingSingle  Binding = "column"
	BindingXY      Binding = "x_column+y_column"
	BindingColumns Binding = "columns"
)

// Binding returns the binding shape required by t
func (t Type) Binding() Binding {
	switch t {
	case TypeHistogram, TypeBar, TypePie:
		return BindingSingle
	case TypeCorrelationHeatmap:
		return BindingColumns
	default:
		return BindingXY
	}
}

// Suggestion is a recommended chart: a type plus its column bindings. Only
// the bindings matching the type's shape are populated.
type Suggestion struct {
	Type    Type     `json:"type"`
	Title   string   `json:"title"`
	Column  string   `json:"column,omitempty"`
	XColumn string   `json:"x_column,omitempty"`
	YColumn string   `json:"y_column,omitempty"`
	Columns []string `json:"columns,omitempty"`
}

// Config is a caller-supplied chart request. It has the same shape as a
// Suggestion but may have been edited by hand.
type Config Suggestion

// DefaultTitle generates the human readable title for a binding
func DefaultTitle(t Type, column, x, y string) string {
	switch t {
	case TypeScatter:
		return fmt.Sprintf("Scatter Plot: %s vs %s", x, y)
	case TypeLine:
		return fmt.Sprintf("Line Chart: %s vs %s", x, y)
	case TypeArea:
		return fmt.Sprintf("Area Chart: %s vs %s", x, y)
	case TypeBox:
		return fmt.Sprintf("%s by %s", y, x)
	case TypeHistogram:
		return fmt.Sprintf("Distribution of %s", column)
	case TypeBar:
		return fmt.Sprintf("Count by %s", column)
	case TypePie:
		return fmt.Sprintf("Proportion by %s", column)
	case TypeCorrelationHeatmap:
		return "Correlation Heatmap"
	default:
		return string(t)
	}
}

// Description is a fully rendered, self-contained chart payload. It carries
// plain data arrays only so any client-side library can draw it.
type Description struct {
	Type   Type    `json:"type"`
	Title  string  `json:"title"`
	Traces []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one data series. Which fields are set depends on Kind.
type Trace struct {
	Kind string `json:"type"`
	Mode string `json:"mode,omitempty"`
	Fill string `json:"fill,omitempty"`
	Name string `json:"name,omitempty"`

	X []interface{} `json:"x,omitempty"`
	Y []interface{} `json:"y,omitempty"`

	// Heatmap cells; nil entries are undefined coefficients
	Z [][]*float64 `json:"z,omitempty"`

	// Pie slices
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
	Counts []int     `json:"counts,omitempty"`

	// Histogram bins
	Bins []Bin `json:"bins,omitempty"`
}

// Bin is one histogram interval [Start, End). The last bin is closed.
type Bin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}

// Layout carries titles and axis labels
type Layout struct {
	Title string `json:"title"`
	XAxis Axis   `json:"xaxis"`
	YAxis Axis   `json:"yaxis"`
}

// Axis describes one chart axis
type Axis struct {
	Title string `json:"title,omitempty"`
}
