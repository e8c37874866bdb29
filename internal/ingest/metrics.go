package ingest

import (
	"errors"
	"fmt"
	"io"

	"linklytics/internal/logging"
	"linklytics/internal/models"
)

// ReadMetrics normalizes the site time-series export: skips the preamble
// row, keeps the header order, parses the Date column as timestamps, and
// coerces every other column to numbers cell by cell.
func ReadMetrics(r io.Reader) (*models.MetricsTable, error) {
	records, err := ReadRaw(r)
	if err != nil {
		return nil, fmt.Errorf("metrics export: %w", err)
	}
	if len(records) < 2 {
		return nil, errors.New("metrics export is missing its header row")
	}

	header := make([]string, len(records[1]))
	for i, h := range records[1] {
		header[i] = cleanHeader(h)
	}

	table := &models.MetricsTable{Columns: header}
	dateIdx := -1
	for i, h := range header {
		if h == models.ColDate {
			dateIdx = i
			table.HasDate = true
			break
		}
	}
	if !table.HasDate {
		table.Warnings = append(table.Warnings,
			"Could not find 'Date' column in Metrics file.")
	}

	for _, rec := range records[2:] {
		day := models.MetricDay{Values: make(map[string]*float64, len(header))}
		for i, name := range header {
			if name == "" {
				continue
			}
			if i == dateIdx {
				day.Date = parseDate(cell(rec, i))
				continue
			}
			day.Values[name] = parseFloat(cell(rec, i))
		}
		table.Rows = append(table.Rows, day)
	}

	logging.Log.Infof("📊 Normalized %d metric days across %d columns", len(table.Rows), len(header))
	return table, nil
}
