package analytics

import (
	"sort"
	"time"

	"linklytics/internal/models"
)

// WeekdayStat is the mean engagement rate of posts created on one weekday.
type WeekdayStat struct {
	Weekday           string  `json:"weekday"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// ComputeWeekdays groups rows by the weekday of their creation date and
// averages the non-missing engagement rates, sorted best weekday first.
// Rows without a date or without a rate contribute nothing.
func ComputeWeekdays(rows []models.Post) []WeekdayStat {
	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for _, p := range rows {
		if p.CreatedDate == nil || p.EngagementRate == nil {
			continue
		}
		day := p.CreatedDate.Weekday()
		sums[day] += *p.EngagementRate
		counts[day]++
	}

	out := make([]WeekdayStat, 0, len(counts))
	for _, day := range weekdayOrder {
		if counts[day] == 0 {
			continue
		}
		out = append(out, WeekdayStat{
			Weekday:           day.String(),
			AvgEngagementRate: sums[day] / float64(counts[day]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgEngagementRate > out[j].AvgEngagementRate
	})
	return out
}
