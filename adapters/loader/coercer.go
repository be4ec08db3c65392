package loader

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"datasight/domain/table"
)

// Coercer turns raw cell text into typed table values with deterministic rules
type Coercer struct {
	config CoercionConfig
	// lowercased marker set
	missing map[string]struct{}
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	MissingMarkers []string `json:"missing_markers"` // matched case-insensitively after trimming
	ParseBooleans  bool     `json:"parse_booleans"`  // "true"/"false" become boolean cells
	ParseCurrency  bool     `json:"parse_currency"`  // strip currency symbols and percent signs
}

// DefaultMissingMarkers are the cell texts read as missing
var DefaultMissingMarkers = []string{"", "NA", "N/A", "null", "NaN", "none", "-"}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		MissingMarkers: DefaultMissingMarkers,
		ParseBooleans:  true,
		ParseCurrency:  true,
	}
}

// NewCoercer creates a coercer with the given config
func NewCoercer(config CoercionConfig) *Coercer {
	c := &Coercer{config: config, missing: make(map[string]struct{}, len(config.MissingMarkers))}
	for _, m := range config.MissingMarkers {
		c.missing[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	return c
}

// IsMissing reports whether raw is one of the missing markers
func (c *Coercer) IsMissing(raw string) bool {
	_, ok := c.missing[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// CoerceString converts delimited-text cell content: missing marker, then
// number, then boolean, else trimmed text.
func (c *Coercer) CoerceString(raw string) table.Value {
	if c.IsMissing(raw) {
		return table.Missing()
	}
	s := strings.TrimSpace(raw)
	if f, ok := c.ParseNumeric(s); ok {
		return table.NewNumericValue(f)
	}
	if b, ok := c.parseBoolean(s); ok {
		return table.NewBooleanValue(b)
	}
	return table.NewStringValue(s)
}

// CoerceText keeps declared text as text; only missing markers are honored
func (c *Coercer) CoerceText(raw string) table.Value {
	if c.IsMissing(raw) {
		return table.Missing()
	}
	return table.NewStringValue(strings.TrimSpace(raw))
}

// CoerceValue converts a decoded JSON value. Numbers and booleans keep their
// JSON type; strings are text; nested values are kept as compact JSON text.
func (c *Coercer) CoerceValue(raw interface{}) table.Value {
	switch v := raw.(type) {
	case nil:
		return table.Missing()
	case json.Number:
		f, err := v.Float64()
		if err != nil || math.IsInf(f, 0) {
			return table.NewStringValue(v.String())
		}
		return table.NewNumericValue(f)
	case float64:
		return table.NewNumericValue(v)
	case bool:
		return table.NewBooleanValue(v)
	case string:
		return c.CoerceText(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return table.NewStringValue(fmt.Sprintf("%v", v))
		}
		return table.NewStringValue(string(b))
	}
}

var currencySymbols = []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY"}

// ParseNumeric attempts to parse s as a finite number.
// Handles parentheses negatives, currency symbols, percent signs and
// thousands separators in both 1,234.5 and 1.234,5 styles.
func (c *Coercer) ParseNumeric(s string) (float64, bool) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0, false
	}

	// Plain numbers are the common case
	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return f, finiteNumber(f, clean)
	}

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		negative = true
	}

	if c.config.ParseCurrency {
		for _, symbol := range currencySymbols {
			clean = strings.ReplaceAll(clean, symbol, "")
		}
		clean = strings.TrimSuffix(strings.TrimSpace(clean), "%")
	}
	clean = strings.TrimSpace(clean)

	clean, ok := normalizeSeparators(clean)
	if !ok {
		return 0, false
	}
	if negative {
		if strings.HasPrefix(clean, "-") {
			return 0, false
		}
		clean = "-" + clean
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return f, finiteNumber(f, clean)
}

// finiteNumber rejects Inf/NaN and the spelled-out forms ParseFloat accepts
func finiteNumber(f float64, text string) bool {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	lower := strings.ToLower(text)
	return !strings.Contains(lower, "inf") && !strings.Contains(lower, "nan")
}

// normalizeSeparators rewrites thousands/decimal separators into plain
// ParseFloat syntax.
func normalizeSeparators(s string) (string, bool) {
	hasComma := strings.Contains(s, ",")
	hasPeriod := strings.Contains(s, ".")
	hasSpace := strings.Contains(s, " ")

	switch {
	case hasComma && hasPeriod:
		// the separator appearing last is the decimal mark
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		parts := strings.Split(s, ",")
		if groupedThousands(parts) {
			s = strings.Join(parts, "")
		} else if len(parts) == 2 && !hasSpace {
			s = parts[0] + "." + parts[1]
		} else if len(parts) == 2 && hasSpace {
			// French style: 1 234,56
			s = strings.ReplaceAll(parts[0], " ", "") + "." + parts[1]
		} else {
			return "", false
		}
	}
	s = strings.ReplaceAll(s, " ", "")
	return s, s != ""
}

// groupedThousands reports whether parts look like 1,234,567
func groupedThousands(parts []string) bool {
	if len(parts) < 2 {
		return false
	}
	head := strings.TrimPrefix(parts[0], "-")
	if len(head) == 0 || len(head) > 3 || !digits(head) {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 || !digits(p) {
			return false
		}
	}
	return true
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c *Coercer) parseBoolean(s string) (bool, bool) {
	if !c.config.ParseBooleans {
		return false, false
	}
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
