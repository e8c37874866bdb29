package models

import "time"

// BoostEntry represents one post's boost annotation as it appears in the
// exported configuration file.
type BoostEntry struct {
	CreatedDate *time.Time `json:"created_date"`
	Title       string     `json:"title"`
	Boosted     bool       `json:"boosted"`
}
