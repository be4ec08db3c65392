// Package testkit generates synthetic tables for tests and demos.
package testkit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"datasight/domain/table"
)

// EmployeeGeneratorConfig configures the employee table generator
type EmployeeGeneratorConfig struct {
	Rows           int      `json:"rows"`
	Departments    []string `json:"departments"`
	MissingSalary  float64  `json:"missing_salary"`   // probability a salary cell is missing
	SalaryPerYear  float64  `json:"salary_per_year"`  // salary gained per year of experience
	SalaryNoiseStd float64  `json:"salary_noise_std"` // std of the normal noise added to salaries
	RemoteShare    float64  `json:"remote_share"`     // probability an employee is remote
	Seed           int64    `json:"seed"`
}

// DefaultEmployeeConfig returns the defaults used across the test suites
func DefaultEmployeeConfig() EmployeeGeneratorConfig {
	return EmployeeGeneratorConfig{
		Rows:           100,
		Departments:    []string{"Engineering", "Sales", "Marketing", "HR"},
		MissingSalary:  0.05,
		SalaryPerYear:  2500,
		SalaryNoiseStd: 4000,
		RemoteShare:    0.3,
		Seed:           42,
	}
}

// Employee is one generated row
type Employee struct {
	ID         string
	Age        int
	Experience int
	Salary     *float64
	Department string
	Remote     bool
}

// EmployeeGenerator produces reproducible employee tables: experience grows
// with age and salary grows with experience, so Age, Experience and Salary
// are strongly and positively correlated.
type EmployeeGenerator struct {
	config EmployeeGeneratorConfig
}

// NewEmployeeGenerator creates a new employee generator
func NewEmployeeGenerator(config EmployeeGeneratorConfig) *EmployeeGenerator {
	if len(config.Departments) == 0 {
		config.Departments = DefaultEmployeeConfig().Departments
	}
	return &EmployeeGenerator{config: config}
}

// Employees generates the configured number of rows. Every call replays the
// same seed, so Table and CSV describe identical rows.
func (g *EmployeeGenerator) Employees() []Employee {
	rng := rand.New(rand.NewSource(g.config.Seed))
	out := make([]Employee, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		age := 22 + rng.Intn(44) // 22..65
		exp := age - 22 - rng.Intn(4)
		if exp < 0 {
			exp = 0
		}

		e := Employee{
			ID:         fmt.Sprintf("E%04d", i+1),
			Age:        age,
			Experience: exp,
			Department: g.config.Departments[rng.Intn(len(g.config.Departments))],
			Remote:     rng.Float64() < g.config.RemoteShare,
		}
		if rng.Float64() >= g.config.MissingSalary {
			salary := 35000 + g.config.SalaryPerYear*float64(exp) + rng.NormFloat64()*g.config.SalaryNoiseStd
			salary = math.Round(salary)
			e.Salary = &salary
		}
		out = append(out, e)
	}
	return out
}

// Table builds a table with columns EmployeeID, Age, Experience, Salary,
// Department and Remote.
func (g *EmployeeGenerator) Table() (*table.Table, error) {
	rows := g.Employees()
	ids := make([]table.Value, len(rows))
	ages := make([]table.Value, len(rows))
	exps := make([]table.Value, len(rows))
	salaries := make([]table.Value, len(rows))
	depts := make([]table.Value, len(rows))
	remote := make([]table.Value, len(rows))
	for i, e := range rows {
		ids[i] = table.NewStringValue(e.ID)
		ages[i] = table.NewNumericValue(float64(e.Age))
		exps[i] = table.NewNumericValue(float64(e.Experience))
		if e.Salary != nil {
			salaries[i] = table.NewNumericValue(*e.Salary)
		} else {
			salaries[i] = table.Missing()
		}
		depts[i] = table.NewStringValue(e.Department)
		remote[i] = table.NewBooleanValue(e.Remote)
	}
	return table.New("employees", len(rows),
		table.NewColumn("EmployeeID", ids),
		table.NewColumn("Age", ages),
		table.NewColumn("Experience", exps),
		table.NewColumn("Salary", salaries),
		table.NewColumn("Department", depts),
		table.NewColumn("Remote", remote),
	)
}

// CSV renders the same rows as comma separated text with a header line.
// Missing salaries are written as "NA".
func (g *EmployeeGenerator) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"EmployeeID", "Age", "Experience", "Salary", "Department", "Remote"}); err != nil {
		return nil, err
	}
	for _, e := range g.Employees() {
		salary := "NA"
		if e.Salary != nil {
			salary = strconv.FormatFloat(*e.Salary, 'f', -1, 64)
		}
		record := []string{
			e.ID, strconv.Itoa(e.Age), strconv.Itoa(e.Experience), salary,
			e.Department, strconv.FormatBool(e.Remote),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// EmployeeTable is a shortcut for the default configuration with the given
// row count and seed.
func EmployeeTable(rows int, seed int64) (*table.Table, error) {
	cfg := DefaultEmployeeConfig()
	cfg.Rows = rows
	cfg.Seed = seed
	return NewEmployeeGenerator(cfg).Table()
}

// EmployeeCSV is the CSV counterpart of EmployeeTable
func EmployeeCSV(rows int, seed int64) ([]byte, error) {
	cfg := DefaultEmployeeConfig()
	cfg.Rows = rows
	cfg.Seed = seed
	return NewEmployeeGenerator(cfg).CSV()
}
