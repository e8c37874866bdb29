package models

import "time"

// DateInterval is a closed range of days on the post creation date.
type DateInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the interval, endpoints included.
func (iv DateInterval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// EndOfDay pushes a date-granular bound to the last instant of its day, so
// a closed interval picked from date inputs keeps posts timestamped later
// that same day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// FilterState is the user's current filter selection. Nil dates and empty
// slices mean "use the defaults".
type FilterState struct {
	Start   *time.Time `json:"start,omitempty"`
	End     *time.Time `json:"end,omitempty"`
	Tags    []string   `json:"tags,omitempty"`
	Metrics []string   `json:"metrics,omitempty"`
}
