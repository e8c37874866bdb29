package models

import "time"

// MetricDay represents one row of the site time-series export: a date plus
// whatever numeric columns the export carried that day.
type MetricDay struct {
	Date   *time.Time          `json:"date"`
	Values map[string]*float64 `json:"values"`
}

// MetricsTable is the normalized time-series export. Columns preserves the
// export's header order, Date column included, so downstream ordering rules
// can refer back to it.
type MetricsTable struct {
	Columns  []string    `json:"columns"`
	Rows     []MetricDay `json:"rows"`
	Warnings []string    `json:"warnings,omitempty"`
	HasDate  bool        `json:"has_date"`
}

// MetricColumns returns the non-date columns in table order.
func (t *MetricsTable) MetricColumns() []string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c == ColDate {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}
