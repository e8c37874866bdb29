package ingest

import (
	"errors"
	"fmt"
	"io"

	"linklytics/internal/logging"
	"linklytics/internal/models"
)

// postsRenames maps the raw export headers to canonical column names.
// Headers missing from the table pass through under their own name.
var postsRenames = map[string]string{
	"Post title":               models.ColPostTitle,
	"Post link":                models.ColPostLink,
	"Post type":                models.ColPostType,
	"Created date":             models.ColCreatedDate,
	"Impressions":              models.ColImpressions,
	"Clicks":                   models.ColClicks,
	"Click through rate (CTR)": models.ColCTR,
	"Likes":                    models.ColLikes,
	"Comments":                 models.ColComments,
	"Reposts":                  models.ColReposts,
	"Follows":                  models.ColFollows,
	"Engagement rate":          models.ColEngagementRate,
}

// ReadPosts normalizes the per-post engagement export: skips the preamble
// row, renames known headers, coerces dates and numbers, and rescales
// fractional click-through rates to percentages.
func ReadPosts(r io.Reader) (*models.PostsTable, error) {
	records, err := ReadRaw(r)
	if err != nil {
		return nil, fmt.Errorf("posts export: %w", err)
	}
	if len(records) < 2 {
		return nil, errors.New("posts export is missing its header row")
	}

	header := records[1]
	canonical := make([]string, len(header))
	for i, h := range header {
		h = cleanHeader(h)
		if mapped, ok := postsRenames[h]; ok {
			canonical[i] = mapped
		} else {
			canonical[i] = h
		}
	}

	table := &models.PostsTable{}
	for _, rec := range records[2:] {
		var post models.Post
		for i := range rec {
			name := ""
			if i < len(canonical) {
				name = canonical[i]
			}
			value := cell(rec, i)
			switch name {
			case models.ColCreatedDate:
				post.CreatedDate = parseDate(value)
			case models.ColPostTitle:
				post.Title = value
			case models.ColPostLink:
				post.Link = value
			case models.ColPostType:
				post.PostType = value
			case models.ColImpressions:
				post.Impressions = parseCount(value)
			case models.ColClicks:
				post.Clicks = parseCount(value)
			case models.ColLikes:
				post.Likes = parseCount(value)
			case models.ColComments:
				post.Comments = parseCount(value)
			case models.ColReposts:
				post.Reposts = parseCount(value)
			case models.ColFollows:
				post.Follows = parseCount(value)
			case models.ColCTR:
				post.CTR = parseFloat(value)
			case models.ColEngagementRate:
				post.EngagementRate = parseFloat(value)
			case "":
				// Cell beyond the header width, nothing to attach it to.
			default:
				if post.Extra == nil {
					post.Extra = make(map[string]string)
				}
				post.Extra[name] = value
			}
		}
		table.Rows = append(table.Rows, post)
	}

	if max, ok := maxCTR(table.Rows); ok && max <= 1 {
		rescaleCTR(table.Rows)
		table.CTRRescaled = true
		table.Warnings = append(table.Warnings, fmt.Sprintf(
			"CTR values looked fractional (max %.4f); rescaled to percentages.", max))
	}

	logging.Log.Infof("📊 Normalized %d posts (%d warnings)", len(table.Rows), len(table.Warnings))
	return table, nil
}

// maxCTR returns the largest non-missing CTR and whether one exists. The
// rescale decision keys off this pre-scale maximum, which is what keeps the
// heuristic from ever firing twice on the same table.
func maxCTR(rows []models.Post) (float64, bool) {
	var max float64
	seen := false
	for _, p := range rows {
		if p.CTR == nil {
			continue
		}
		if !seen || *p.CTR > max {
			max = *p.CTR
		}
		seen = true
	}
	return max, seen
}

func rescaleCTR(rows []models.Post) {
	for i := range rows {
		if rows[i].CTR != nil {
			v := *rows[i].CTR * 100
			rows[i].CTR = &v
		}
	}
}
