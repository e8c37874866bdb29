package analytics

import (
	"time"

	"linklytics/internal/models"
)

// preferredMetricOrder pins the headline site metrics to the front of every
// metric listing; anything else follows in the export's own column order.
var preferredMetricOrder = []string{
	"Impressions (total)",
	"Clicks (total)",
	"Reactions (total)",
	"Comments (total)",
	"Reposts (total)",
	"Engagement rate (total)",
}

// defaultMetricCount is how many of the ordered metrics start out selected.
const defaultMetricCount = 3

// TrendPoint is one long-form observation: a date, a metric name, a value.
// The chart layer consumes nothing but slices of these.
type TrendPoint struct {
	Date   time.Time `json:"date"`
	Metric string    `json:"metric"`
	Value  float64   `json:"value"`
}

// OrderedMetricNames lists the table's metric columns with the preferred
// names first.
func OrderedMetricNames(t *models.MetricsTable) []string {
	if t == nil {
		return nil
	}
	available := t.MetricColumns()
	remaining := make(map[string]bool, len(available))
	for _, c := range available {
		remaining[c] = true
	}

	out := make([]string, 0, len(available))
	for _, name := range preferredMetricOrder {
		if remaining[name] {
			out = append(out, name)
			remaining[name] = false
		}
	}
	for _, c := range available {
		if remaining[c] {
			out = append(out, c)
		}
	}
	return out
}

// DefaultMetricSelection picks the first few ordered metrics for the
// initial chart.
func DefaultMetricSelection(ordered []string) []string {
	if len(ordered) <= defaultMetricCount {
		return append([]string(nil), ordered...)
	}
	return append([]string(nil), ordered[:defaultMetricCount]...)
}

// BuildTrends reshapes the selected metric columns into long form, metric
// by metric in selection order. Rows with a missing date and cells with a
// missing value are dropped, and a non-nil interval restricts the dates the
// same closed way the post filter does.
func BuildTrends(t *models.MetricsTable, selected []string, interval *models.DateInterval) []TrendPoint {
	if t == nil {
		return nil
	}
	var out []TrendPoint
	for _, metric := range selected {
		for _, day := range t.Rows {
			if day.Date == nil {
				continue
			}
			if interval != nil && !interval.Contains(*day.Date) {
				continue
			}
			v, ok := day.Values[metric]
			if !ok || v == nil {
				continue
			}
			out = append(out, TrendPoint{Date: *day.Date, Metric: metric, Value: *v})
		}
	}
	return out
}
