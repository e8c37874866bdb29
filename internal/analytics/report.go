package analytics

import (
	"time"

	"linklytics/internal/models"
)

// Report is everything one dashboard render needs, recomputed from the
// session's tables on every request.
type Report struct {
	Interval     *models.DateInterval `json:"interval,omitempty"`
	AllTags      []string             `json:"all_tags,omitempty"`
	SelectedTags []string             `json:"selected_tags,omitempty"`

	TotalPosts    int           `json:"total_posts"`
	FilteredCount int           `json:"filtered_count"`
	Filtered      []models.Post `json:"-"`
	Benchmarks    Benchmarks    `json:"benchmarks"`
	Flagged       []FlaggedPost `json:"-"`
	Weekdays      []WeekdayStat `json:"weekdays,omitempty"`

	MetricNames     []string     `json:"metric_names,omitempty"`
	SelectedMetrics []string     `json:"selected_metrics,omitempty"`
	Trends          []TrendPoint `json:"trends,omitempty"`
}

// BuildReport runs the whole pipeline: resolve the date interval, filter,
// benchmark, flag, and reshape trends. Either table may be nil; the report
// simply leaves those sections empty.
func BuildReport(posts *models.PostsTable, metrics *models.MetricsTable, fs models.FilterState, now time.Time) *Report {
	r := &Report{}

	var interval *models.DateInterval
	if posts != nil {
		iv := DefaultInterval(posts.Rows, now)
		if fs.Start != nil {
			iv.Start = *fs.Start
		}
		if fs.End != nil {
			iv.End = *fs.End
		}
		interval = &iv

		r.Interval = &iv
		r.AllTags = ExtractHashtags(posts.Rows)
		r.SelectedTags = fs.Tags
		r.TotalPosts = len(posts.Rows)

		r.Filtered = FilterPosts(posts.Rows, iv, fs.Tags)
		r.FilteredCount = len(r.Filtered)
		r.Benchmarks = ComputeBenchmarks(r.Filtered)
		r.Flagged = FlagPosts(r.Filtered, r.Benchmarks)
		r.Weekdays = ComputeWeekdays(r.Filtered)
	}

	if metrics != nil {
		r.MetricNames = OrderedMetricNames(metrics)
		if fs.Metrics == nil {
			r.SelectedMetrics = DefaultMetricSelection(r.MetricNames)
		} else {
			r.SelectedMetrics = intersect(fs.Metrics, r.MetricNames)
		}
		r.Trends = BuildTrends(metrics, r.SelectedMetrics, interval)
	}

	return r
}

// intersect keeps the chosen names that still exist, in chosen order. A
// session can outlive the upload its choices came from.
func intersect(chosen, available []string) []string {
	have := make(map[string]bool, len(available))
	for _, name := range available {
		have[name] = true
	}
	out := make([]string, 0, len(chosen))
	for _, name := range chosen {
		if have[name] {
			out = append(out, name)
		}
	}
	return out
}
