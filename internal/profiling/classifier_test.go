package profiling

import (
	"math"
	"testing"

	"datasight/domain/profile"
	"datasight/domain/table"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		col  *table.Column
		want profile.ColumnKind
	}{
		{"numeric", table.NewColumn("n", nums(1, 2.5, nil)), profile.KindNumeric},
		{"text", table.NewColumn("t", nums("a", "b")), profile.KindCategorical},
		{"boolean", table.NewColumn("b", nums(true, false)), profile.KindCategorical},
		{"mixed", table.NewColumn("m", nums(1, "a")), profile.KindCategorical},
		{"all missing", table.NewColumn("e", nums(nil, nil)), profile.KindOther},
		{"no rows", table.NewColumn("z", nil), profile.KindOther},
		{"numbers declared as text", table.NewColumnWithStorage("s", table.StorageText, nums(1, 2)), profile.KindCategorical},
		{"declared numeric holding text", table.NewColumnWithStorage("d", table.StorageNumeric, nums(1, "x")), profile.KindCategorical},
		{"unknown storage with values", table.NewColumnWithStorage("u", table.StorageUnknown, nums("x")), profile.KindOther},
		{"infinite values", table.NewColumn("i", []table.Value{table.NewNumericValue(math.Inf(1)), table.NewNumericValue(1)}), profile.KindCategorical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.col))
		})
	}
}
