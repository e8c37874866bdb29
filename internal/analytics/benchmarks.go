package analytics

import "linklytics/internal/models"

// Flag marks a post metric relative to its benchmark mean.
type Flag string

const (
	FlagAbove Flag = "above"
	FlagBelow Flag = "below"
	FlagNone  Flag = ""
)

// Benchmarks holds the mean of each benchmark metric over the filtered
// posts. Missing values are ignored; a metric with no values at all keeps a
// mean of 0 rather than an undefined one.
type Benchmarks struct {
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgCTR            float64 `json:"avg_ctr"`
	AvgImpressions    float64 `json:"avg_impressions"`
	AvgClicks         float64 `json:"avg_clicks"`
	AvgLikes          float64 `json:"avg_likes"`
}

// FlaggedPost is a post plus its above/below position against each
// benchmark. A missing value stays unflagged.
type FlaggedPost struct {
	models.Post
	EngagementRateFlag Flag `json:"engagement_rate_flag"`
	CTRFlag            Flag `json:"ctr_flag"`
	ImpressionsFlag    Flag `json:"impressions_flag"`
	ClicksFlag         Flag `json:"clicks_flag"`
	LikesFlag          Flag `json:"likes_flag"`
}

// ComputeBenchmarks averages the five benchmark metrics over rows.
func ComputeBenchmarks(rows []models.Post) Benchmarks {
	return Benchmarks{
		AvgEngagementRate: meanFloat(rows, func(p models.Post) *float64 { return p.EngagementRate }),
		AvgCTR:            meanFloat(rows, func(p models.Post) *float64 { return p.CTR }),
		AvgImpressions:    meanCount(rows, func(p models.Post) *int64 { return p.Impressions }),
		AvgClicks:         meanCount(rows, func(p models.Post) *int64 { return p.Clicks }),
		AvgLikes:          meanCount(rows, func(p models.Post) *int64 { return p.Likes }),
	}
}

// FlagPosts grades every row against the benchmark means. Ties count as
// above.
func FlagPosts(rows []models.Post, b Benchmarks) []FlaggedPost {
	out := make([]FlaggedPost, 0, len(rows))
	for _, p := range rows {
		out = append(out, FlaggedPost{
			Post:               p,
			EngagementRateFlag: flagFloat(p.EngagementRate, b.AvgEngagementRate),
			CTRFlag:            flagFloat(p.CTR, b.AvgCTR),
			ImpressionsFlag:    flagCount(p.Impressions, b.AvgImpressions),
			ClicksFlag:         flagCount(p.Clicks, b.AvgClicks),
			LikesFlag:          flagCount(p.Likes, b.AvgLikes),
		})
	}
	return out
}

func meanFloat(rows []models.Post, pick func(models.Post) *float64) float64 {
	var sum float64
	var n int
	for _, p := range rows {
		if v := pick(p); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func meanCount(rows []models.Post, pick func(models.Post) *int64) float64 {
	var sum float64
	var n int
	for _, p := range rows {
		if v := pick(p); v != nil {
			sum += float64(*v)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func flagFloat(v *float64, avg float64) Flag {
	if v == nil {
		return FlagNone
	}
	if *v >= avg {
		return FlagAbove
	}
	return FlagBelow
}

func flagCount(v *int64, avg float64) Flag {
	if v == nil {
		return FlagNone
	}
	if float64(*v) >= avg {
		return FlagAbove
	}
	return FlagBelow
}
