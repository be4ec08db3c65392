package profiling

import (
	"math"

	"datasight/domain/table"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix is a symmetric Pearson correlation matrix. Values[i][j]
// is nil when the coefficient is undefined: fewer than two complete pairs, or
// a zero-variance column.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]*float64
}

// Correlate computes pairwise Pearson correlations using, for each pair,
// only the rows where both columns hold a numeric value.
func Correlate(cols []table.ColumnReader) CorrelationMatrix {
	n := len(cols)
	m := CorrelationMatrix{
		Columns: make([]string, n),
		Values:  make([][]*float64, n),
	}
	for i, c := range cols {
		m.Columns[i] = c.Name()
		m.Values[i] = make([]*float64, n)
	}

	for i := 0; i < n; i++ {
		m.Values[i][i] = selfCorrelation(cols[i])
		for j := i + 1; j < n; j++ {
			r := pearson(cols[i], cols[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

// Strongest returns the pair with the largest |r|. Ties keep the first pair
// in row-major order so the result is stable.
func (m CorrelationMatrix) Strongest() (a, b string, r float64, ok bool) {
	best := -1.0
	for i := range m.Values {
		for j := i + 1; j < len(m.Values); j++ {
			v := m.Values[i][j]
			if v == nil {
				continue
			}
			if math.Abs(*v) > best {
				best = math.Abs(*v)
				a, b, r, ok = m.Columns[i], m.Columns[j], *v, true
			}
		}
	}
	return a, b, r, ok
}

func selfCorrelation(col table.ColumnReader) *float64 {
	xs := numericValues(col)
	if len(xs) < 2 {
		return nil
	}
	if v := stat.Variance(xs, nil); v == 0 || math.IsNaN(v) {
		return nil
	}
	one := 1.0
	return &one
}

func pearson(a, b table.ColumnReader) *float64 {
	rows := a.Len()
	if b.Len() < rows {
		rows = b.Len()
	}
	xs := make([]float64, 0, rows)
	ys := make([]float64, 0, rows)
	for i := 0; i < rows; i++ {
		x, okX := a.At(i).Float()
		y, okY := b.At(i).Float()
		if !okX || !okY {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 2 {
		return nil
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return nil
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	r = math.Max(-1, math.Min(1, r))
	return &r
}

// numericValues collects the non-missing numeric cells of a column
func numericValues(col table.ColumnReader) []float64 {
	out := make([]float64, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		if f, ok := col.At(i).Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// NumericValues is the exported form used by the chart renderer
func NumericValues(col table.ColumnReader) []float64 {
	return numericValues(col)
}
