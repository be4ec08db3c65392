package testkit

import (
	"bytes"
	"encoding/csv"
	"testing"

	"datasight/domain/table"
	"datasight/internal/profiling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeGenerator_Reproducible(t *testing.T) {
	a := NewEmployeeGenerator(DefaultEmployeeConfig()).Employees()
	b := NewEmployeeGenerator(DefaultEmployeeConfig()).Employees()
	assert.Equal(t, a, b)

	other := DefaultEmployeeConfig()
	other.Seed = 7
	assert.NotEqual(t, a, NewEmployeeGenerator(other).Employees())
}

func TestEmployeeGenerator_Table(t *testing.T) {
	tbl, err := EmployeeTable(200, 12345)
	require.NoError(t, err)
	assert.Equal(t, 200, tbl.RowCount())
	assert.Equal(t, []string{"EmployeeID", "Age", "Experience", "Salary", "Department", "Remote"}, tbl.ColumnNames())

	t.Run("ranges", func(t *testing.T) {
		age, _ := tbl.Column("Age")
		exp, _ := tbl.Column("Experience")
		for i := 0; i < tbl.RowCount(); i++ {
			a, ok := age.At(i).Float()
			require.True(t, ok)
			e, ok := exp.At(i).Float()
			require.True(t, ok)
			assert.GreaterOrEqual(t, a, 22.0)
			assert.LessOrEqual(t, a, 65.0)
			assert.GreaterOrEqual(t, e, 0.0)
			assert.LessOrEqual(t, e, a-22)
		}
	})

	t.Run("salary_tracks_experience", func(t *testing.T) {
		exp, _ := tbl.Column("Experience")
		salary, _ := tbl.Column("Salary")
		m := profiling.Correlate([]table.ColumnReader{exp, salary})
		require.NotNil(t, m.Values[0][1])
		assert.Greater(t, *m.Values[0][1], 0.9)
	})
}

func TestEmployeeGenerator_CSVMatchesRows(t *testing.T) {
	cfg := DefaultEmployeeConfig()
	cfg.Rows = 50
	cfg.MissingSalary = 0.2
	g := NewEmployeeGenerator(cfg)

	data, err := g.CSV()
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 51)

	employees := g.Employees()
	for i, e := range employees {
		rec := records[i+1]
		assert.Equal(t, e.ID, rec[0])
		if e.Salary == nil {
			assert.Equal(t, "NA", rec[3])
		} else {
			assert.NotEqual(t, "NA", rec[3])
		}
	}
}
