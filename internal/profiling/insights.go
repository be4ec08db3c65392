package profiling

import (
	"fmt"
	"math"

	"datasight/domain/table"
)

// InsightConfig controls the optional correlation insight
type InsightConfig struct {
	// CorrelationInsights enables the correlation sentence. It is only ever
	// emitted from a coefficient that was actually computed.
	CorrelationInsights bool
	// StrongCorrelation is the minimum |r| reported as a strong correlation
	StrongCorrelation float64
}

// DefaultInsightConfig returns the defaults used by the service
func DefaultInsightConfig() InsightConfig {
	return InsightConfig{
		CorrelationInsights: true,
		StrongCorrelation:   0.7,
	}
}

// generateInsights builds the fixed, deterministic insight sentences from
// counts the profiler already derived.
func (dp *DataProfiler) generateInsights(numeric []table.ColumnReader, categoricalCount, missing int) []string {
	insights := []string{}

	if len(numeric) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Dataset contains %d numeric columns suitable for statistical analysis.", len(numeric)))
	}
	if categoricalCount > 0 {
		insights = append(insights, fmt.Sprintf(
			"Dataset contains %d categorical columns for grouping and segmentation.", categoricalCount))
	}
	if missing > 0 {
		insights = append(insights, fmt.Sprintf(
			"Dataset has %d missing values that may need attention.", missing))
	}

	if dp.insights.CorrelationInsights && len(numeric) >= 2 {
		if sentence, ok := correlationInsight(numeric, dp.insights.StrongCorrelation); ok {
			insights = append(insights, sentence)
		}
	}

	return insights
}

func correlationInsight(numeric []table.ColumnReader, threshold float64) (string, bool) {
	a, b, r, ok := Correlate(numeric).Strongest()
	if !ok || math.Abs(r) < threshold {
		return "", false
	}
	direction := "positive"
	if r < 0 {
		direction = "negative"
	}
	return fmt.Sprintf("Strong %s correlation between %s and %s (r = %.2f).", direction, a, b, r), true
}
