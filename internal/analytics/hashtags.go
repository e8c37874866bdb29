// Package analytics computes everything the dashboard shows from the
// normalized tables. Each request recomputes from scratch; nothing in this
// package holds state between calls.
package analytics

import (
	"regexp"
	"sort"
	"strings"

	"linklytics/internal/models"
)

var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// ExtractHashtags collects the distinct hashtags across all post titles,
// sorted case-insensitively with the original casing preserved.
func ExtractHashtags(rows []models.Post) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, p := range rows {
		for _, tag := range hashtagPattern.FindAllString(p.Title, -1) {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags
}
