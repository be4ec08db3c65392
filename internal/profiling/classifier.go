package profiling

import (
	"math"

	"datasight/domain/profile"
	"datasight/domain/table"
)

// Classify determines a column's kind from its declared storage type and its
// values. It never fails: empty, all-missing and unclassifiable columns are
// reported as KindOther.
//
// A column is numeric only when the storage type says so and every
// non-missing value is a finite real number. Numbers stored as text (for
// example a spreadsheet column formatted as text) stay categorical.
func Classify(col table.ColumnReader) profile.ColumnKind {
	present := 0
	allNumeric := true
	for i := 0; i < col.Len(); i++ {
		v := col.At(i)
		if v.IsMissing() {
			continue
		}
		present++
		f, ok := v.Float()
		if !ok || math.IsInf(f, 0) {
			allNumeric = false
		}
	}

	if present == 0 {
		return profile.KindOther
	}

	switch col.Storage() {
	case table.StorageNumeric:
		if allNumeric {
			return profile.KindNumeric
		}
		return profile.KindCategorical
	case table.StorageText, table.StorageBoolean, table.StorageMixed:
		return profile.KindCategorical
	default:
		return profile.KindOther
	}
}
