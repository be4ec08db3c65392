// Package chat answers free-text questions about an uploaded dataset with
// sentences derived from its profile and, when available, its table.
package chat

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"datasight/domain/profile"
	"datasight/domain/table"
	"datasight/internal/profiling"
)

// Greeting prefixes every reply
const Greeting = "I'm here to help you analyze your data! "

// Topic is the question category detected from a message
type Topic string

const (
	TopicCorrelation  Topic = "correlation"
	TopicDistribution Topic = "distribution"
	TopicTrend        Topic = "trend"
	TopicSummary      Topic = "summary"
	TopicHelp         Topic = "help"
)

const (
	helpText   = "You can ask me about correlations, distributions, trends, or request a summary of your data. I'll provide insights based on the uploaded dataset."
	noDataText = "Upload a dataset first and I'll answer from its contents."

	// maxDescribed caps how many columns a distribution answer lists
	maxDescribed = 3
)

// DetectTopic classifies a message by keyword. Earlier topics win when a
// message mentions several.
func DetectTopic(message string) Topic {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "correlation"):
		return TopicCorrelation
	case strings.Contains(m, "distribution"):
		return TopicDistribution
	case strings.Contains(m, "trend"):
		return TopicTrend
	case strings.Contains(m, "summary"), strings.Contains(m, "overview"):
		return TopicSummary
	default:
		return TopicHelp
	}
}

// Dataset is what a reply may draw on. Table may be nil, in which case
// answers needing raw values fall back to profile statistics.
type Dataset struct {
	Profile *profile.DatasetProfile
	Table   *table.Table
}

// Responder turns messages into replies
type Responder struct{}

// NewResponder creates a responder
func NewResponder() *Responder {
	return &Responder{}
}

// Reply answers message. A nil dataset yields the help text for every topic
// other than help itself.
func (r *Responder) Reply(message string, ds *Dataset) string {
	topic := DetectTopic(message)
	if topic == TopicHelp {
		return Greeting + helpText
	}
	if ds == nil || ds.Profile == nil {
		return Greeting + noDataText + " " + helpText
	}

	switch topic {
	case TopicCorrelation:
		return Greeting + correlationAnswer(ds)
	case TopicDistribution:
		return Greeting + distributionAnswer(ds.Profile)
	case TopicTrend:
		return Greeting + trendAnswer(ds)
	default:
		return Greeting + summaryAnswer(ds.Profile)
	}
}

func numericColumns(ds *Dataset) []table.ColumnReader {
	if ds.Table == nil {
		return nil
	}
	var cols []table.ColumnReader
	for _, ct := range ds.Profile.Summary.DataTypes {
		if ct.Kind != profile.KindNumeric {
			continue
		}
		if c, ok := ds.Table.Column(ct.Name); ok {
			cols = append(cols, c)
		}
	}
	return cols
}

func strength(r float64) string {
	switch a := math.Abs(r); {
	case a >= 0.7:
		return "strong"
	case a >= 0.4:
		return "moderate"
	default:
		return "weak"
	}
}

func direction(r float64) string {
	if r < 0 {
		return "negative"
	}
	return "positive"
}

func correlationAnswer(ds *Dataset) string {
	cols := numericColumns(ds)
	if len(cols) < 2 {
		return "I need at least two numeric columns with data to look for correlations."
	}
	a, b, rr, ok := profiling.Correlate(cols).Strongest()
	if !ok {
		return "None of the numeric column pairs vary together enough to compute a correlation."
	}
	return fmt.Sprintf("The strongest relationship is between %s and %s (r = %.2f), a %s %s correlation.",
		a, b, rr, strength(rr), direction(rr))
}

func trendAnswer(ds *Dataset) string {
	cols := numericColumns(ds)
	if len(cols) < 2 {
		return "I need at least two numeric columns to describe a trend."
	}
	a, b, rr, ok := profiling.Correlate(cols).Strongest()
	if !ok {
		return "I couldn't find a trend between the numeric columns."
	}
	if strength(rr) == "weak" {
		return fmt.Sprintf("There's no clear trend: the closest pair, %s and %s, only has r = %.2f.", a, b, rr)
	}
	verb := "rises"
	if rr < 0 {
		verb = "falls"
	}
	return fmt.Sprintf("%s generally %s as %s increases (r = %.2f).", b, verb, a, rr)
}

func distributionAnswer(p *profile.DatasetProfile) string {
	var parts []string
	for _, c := range p.Columns {
		if len(parts) == maxDescribed {
			break
		}
		switch c.Kind {
		case profile.KindNumeric:
			if c.Min == nil || c.Max == nil || c.Mean == nil {
				continue
			}
			s := fmt.Sprintf("%s ranges from %s to %s with a mean of %s",
				c.Name, formatNumber(*c.Min), formatNumber(*c.Max), formatNumber(*c.Mean))
			if c.Std != nil {
				s += fmt.Sprintf(" (std %s)", formatNumber(*c.Std))
			}
			parts = append(parts, s+".")
		case profile.KindCategorical:
			parts = append(parts, fmt.Sprintf("%s has %d distinct values.", c.Name, c.UniqueCount))
		}
	}
	if len(parts) == 0 {
		return "There are no columns with values to describe yet."
	}
	return strings.Join(parts, " ")
}

func summaryAnswer(p *profile.DatasetProfile) string {
	var numeric, categorical int
	for _, ct := range p.Summary.DataTypes {
		switch ct.Kind {
		case profile.KindNumeric:
			numeric++
		case profile.KindCategorical:
			categorical++
		}
	}
	s := fmt.Sprintf("Your dataset contains %d rows and %d columns (%d numeric, %d categorical) with %d missing values.",
		p.Summary.RowCount, p.Summary.ColumnCount, numeric, categorical, p.Summary.TotalMissingCount)
	for _, c := range p.Columns {
		if c.Kind == profile.KindNumeric && c.Mean != nil {
			s += fmt.Sprintf(" The average %s is %s.", c.Name, formatNumber(*c.Mean))
			break
		}
	}
	return s
}

// formatNumber prints integers without decimals and everything else with two
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
