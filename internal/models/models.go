// Package models contains the typed records shared across the linklytics pipeline
package models

import "time"

// Canonical column names produced by ingestion and consumed everywhere else.
const (
	ColCreatedDate    = "Created Date"
	ColPostTitle      = "Post Title"
	ColPostLink       = "Post Link"
	ColPostType       = "Post Type"
	ColImpressions    = "Impressions"
	ColClicks         = "Clicks"
	ColCTR            = "CTR"
	ColLikes          = "Likes"
	ColComments       = "Comments"
	ColReposts        = "Reposts"
	ColFollows        = "Follows"
	ColEngagementRate = "Engagement Rate"
	ColBoosted        = "Boosted"
	ColDate           = "Date"
)

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}

// Time returns a pointer to t.
func Time(t time.Time) *time.Time {
	return &t
}
