// Package render turns a chart configuration into a self-contained chart
// description computed from an in-memory table.
package render

import (
	"errors"
	"fmt"
	"strings"

	"datasight/domain/chart"
	"datasight/domain/core"
	"datasight/domain/table"
)

// Failure is the typed error returned for every render problem. Kind is one
// of the core sentinels so callers can branch with errors.Is.
type Failure struct {
	Type   chart.Type
	Kind   error
	Reason string
}

func (f *Failure) Error() string {
	if f.Type == "" {
		return f.Reason
	}
	return fmt.Sprintf("render %s: %s", f.Type, f.Reason)
}

func (f *Failure) Unwrap() error { return f.Kind }

// AsFailure extracts a *Failure from err
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func fail(t chart.Type, kind error, format string, args ...interface{}) error {
	return &Failure{Type: t, Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

type handler func(t *table.Table, cfg chart.Config, title string) (*chart.Description, error)

// handlers is closed over the supported chart types
var handlers = map[chart.Type]handler{
	chart.TypeScatter:            renderXY,
	chart.TypeLine:               renderXY,
	chart.TypeArea:               renderXY,
	chart.TypeBox:                renderXY,
	chart.TypeHistogram:          renderHistogram,
	chart.TypeBar:                renderBar,
	chart.TypePie:                renderPie,
	chart.TypeCorrelationHeatmap: renderHeatmap,
}

// Render computes the chart described by cfg over t. It never panics: any
// internal fault is reported as a compute Failure.
func Render(t *table.Table, cfg chart.Config) (desc *chart.Description, err error) {
	defer func() {
		if r := recover(); r != nil {
			desc = nil
			err = fail(cfg.Type, core.ErrCompute, "internal error: %v", r)
		}
	}()

	if t == nil {
		return nil, fail(cfg.Type, core.ErrCompute, "no table to render")
	}
	h, ok := handlers[cfg.Type]
	if !ok {
		return nil, fail("", core.ErrUnknownChartType, "unknown chart type %q", cfg.Type)
	}

	cfg = normalize(cfg)
	if err := validateBindings(cfg); err != nil {
		return nil, err
	}

	title := cfg.Title
	if title == "" {
		title = chart.DefaultTitle(cfg.Type, cfg.Column, cfg.XColumn, cfg.YColumn)
	}
	return h(t, cfg, title)
}

// normalize trims binding names and drops blank or repeated heatmap columns
func normalize(cfg chart.Config) chart.Config {
	cfg.Title = strings.TrimSpace(cfg.Title)
	cfg.Column = strings.TrimSpace(cfg.Column)
	cfg.XColumn = strings.TrimSpace(cfg.XColumn)
	cfg.YColumn = strings.TrimSpace(cfg.YColumn)

	if len(cfg.Columns) > 0 {
		seen := make(map[string]struct{}, len(cfg.Columns))
		cols := make([]string, 0, len(cfg.Columns))
		for _, c := range cfg.Columns {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			cols = append(cols, c)
		}
		cfg.Columns = cols
	}
	return cfg
}

func validateBindings(cfg chart.Config) error {
	switch cfg.Type.Binding() {
	case chart.BindingSingle:
		if cfg.Column == "" {
			return fail(cfg.Type, core.ErrBindingMissing, "requires column")
		}
	case chart.BindingXY:
		var missing []string
		if cfg.XColumn == "" {
			missing = append(missing, "x_column")
		}
		if cfg.YColumn == "" {
			missing = append(missing, "y_column")
		}
		if len(missing) > 0 {
			return fail(cfg.Type, core.ErrBindingMissing, "requires %s", strings.Join(missing, " and "))
		}
	case chart.BindingColumns:
		if len(cfg.Columns) == 0 {
			return fail(cfg.Type, core.ErrBindingMissing, "requires a non-empty columns list")
		}
	}
	return nil
}

func lookup(t *table.Table, ct chart.Type, name string) (*table.Column, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, fail(ct, core.ErrColumnNotFound, "column %q not found", name)
	}
	return col, nil
}
