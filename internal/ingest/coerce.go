package ingest

import (
	"strconv"
	"strings"
	"time"
)

// Date layouts seen across LinkedIn exports and re-uploaded config files.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// parseDate coerces a cell to a timestamp, nil when it cannot be one.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// normalizeNumber strips the decorations exports put on numbers. "1,234"
// and "5.2%" both become parseable.
func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	return strings.ReplaceAll(s, ",", "")
}

// parseFloat coerces a cell to a float, nil when it cannot be one.
func parseFloat(s string) *float64 {
	s = normalizeNumber(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseCount coerces a cell to a whole count, nil when it cannot be one.
// Exports occasionally write counts as floats ("42.0"), so those truncate.
func parseCount(s string) *int64 {
	s = normalizeNumber(s)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int64(f)
	return &v
}
