package models

import "time"

// Post represents one row of the per-post engagement export after
// normalization. Nil pointers mark values the export left blank or that
// failed to parse.
type Post struct {
	CreatedDate *time.Time `json:"created_date"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	PostType    string     `json:"post_type"`

	// Engagement counts
	Impressions *int64 `json:"impressions"`
	Clicks      *int64 `json:"clicks"`
	Likes       *int64 `json:"likes"`
	Comments    *int64 `json:"comments"`
	Reposts     *int64 `json:"reposts"`
	Follows     *int64 `json:"follows"`

	// Percentages
	CTR            *float64 `json:"ctr"`
	EngagementRate *float64 `json:"engagement_rate"`

	// Columns the rename table does not know about pass through untouched.
	Extra map[string]string `json:"extra,omitempty"`
}

// PostsTable is the normalized per-post export plus everything ingestion
// wants to tell the user about it.
type PostsTable struct {
	Rows        []Post   `json:"rows"`
	Warnings    []string `json:"warnings,omitempty"`
	CTRRescaled bool     `json:"ctr_rescaled"`
}
