package analytics

import (
	"regexp"
	"strings"
	"time"

	"linklytics/internal/models"
)

// fallbackStart anchors the date filter when no post carries a usable date.
var fallbackStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultInterval spans the non-missing creation dates. With no usable
// dates at all it falls back to 2000-01-01 through today so the filter UI
// always has something to offer.
func DefaultInterval(rows []models.Post, now time.Time) models.DateInterval {
	var min, max *time.Time
	for _, p := range rows {
		if p.CreatedDate == nil {
			continue
		}
		d := *p.CreatedDate
		if min == nil || d.Before(*min) {
			min = &d
		}
		if max == nil || d.After(*max) {
			max = &d
		}
	}
	if min == nil || max == nil {
		return models.DateInterval{Start: fallbackStart, End: now}
	}
	return models.DateInterval{Start: *min, End: *max}
}

// FilterPosts returns the rows inside the closed date interval whose titles
// contain at least one of the selected tags. Rows without a date are always
// excluded while an interval is active. No tags means no tag restriction.
func FilterPosts(rows []models.Post, interval models.DateInterval, tags []string) []models.Post {
	var tagPattern *regexp.Regexp
	if len(tags) > 0 {
		quoted := make([]string, len(tags))
		for i, tag := range tags {
			quoted[i] = regexp.QuoteMeta(tag)
		}
		tagPattern = regexp.MustCompile("(?i)(" + strings.Join(quoted, "|") + ")")
	}

	out := make([]models.Post, 0, len(rows))
	for _, p := range rows {
		if p.CreatedDate == nil || !interval.Contains(*p.CreatedDate) {
			continue
		}
		if tagPattern != nil && !tagPattern.MatchString(p.Title) {
			continue
		}
		out = append(out, p)
	}
	return out
}
