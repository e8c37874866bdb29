// Package boosts maintains the per-post boost annotations: defaulting,
// merging a previously exported configuration back in, and writing the
// export a user can keep between visits.
package boosts

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"linklytics/internal/ingest"
	"linklytics/internal/models"
)

// configColumns is the exported annotation schema, in order.
var configColumns = []string{models.ColCreatedDate, models.ColPostTitle, models.ColBoosted}

// exportPreamble keeps exported files in the same one-ignorable-leading-row
// framing as the LinkedIn exports, so they re-upload cleanly.
const exportPreamble = "Boost annotations"

// ParseConfig reads an uploaded annotation file into title->boosted. Rows
// whose boolean cell cannot be parsed are skipped, leaving those posts on
// the default flag. Files carry either a preamble line above the header or
// the header first; both are accepted. A file without the required columns
// is rejected outright.
func ParseConfig(r io.Reader) (map[string]bool, []string, error) {
	records, err := ingest.ReadRaw(r)
	if err != nil {
		return nil, nil, fmt.Errorf("boosted config: %w", err)
	}

	headerIdx := -1
	for i := 0; i < len(records) && i < 2; i++ {
		if isConfigHeader(records[i]) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, nil, fmt.Errorf("boosted config must have %q and %q columns", models.ColPostTitle, models.ColBoosted)
	}

	titleIdx, boostedIdx := -1, -1
	for i, h := range records[headerIdx] {
		switch strings.TrimSpace(h) {
		case models.ColPostTitle:
			if titleIdx < 0 {
				titleIdx = i
			}
		case models.ColBoosted:
			if boostedIdx < 0 {
				boostedIdx = i
			}
		}
	}

	saved := make(map[string]bool)
	seen := make(map[string]bool)
	var dups []string
	for _, rec := range records[headerIdx+1:] {
		title := cellAt(rec, titleIdx)
		if title == "" {
			continue
		}
		if seen[title] {
			dups = append(dups, title)
			continue
		}
		seen[title] = true
		if b := parseBool(cellAt(rec, boostedIdx)); b != nil {
			saved[title] = *b
		}
	}

	var warnings []string
	if len(dups) > 0 {
		warnings = append(warnings, duplicateWarning("boosted config rows", dups))
	}
	return saved, warnings, nil
}

// Merge gives every titled post a flag: false unless the saved annotations
// say otherwise. Posts sharing a title collapse onto one flag, which is
// worth telling the user about.
func Merge(rows []models.Post, saved map[string]bool) (map[string]bool, []string) {
	flags := make(map[string]bool, len(rows))
	seen := make(map[string]bool, len(rows))
	var dups []string
	for _, p := range rows {
		if p.Title == "" {
			continue
		}
		if seen[p.Title] {
			dups = append(dups, p.Title)
			continue
		}
		seen[p.Title] = true
		flags[p.Title] = saved[p.Title]
	}

	var warnings []string
	if len(dups) > 0 {
		warnings = append(warnings, duplicateWarning("post titles", dups))
	}
	return flags, warnings
}

// Entries pairs each titled post with its current flag, in post order.
func Entries(rows []models.Post, flags map[string]bool) []models.BoostEntry {
	out := make([]models.BoostEntry, 0, len(rows))
	for _, p := range rows {
		if p.Title == "" {
			continue
		}
		out = append(out, models.BoostEntry{
			CreatedDate: p.CreatedDate,
			Title:       p.Title,
			Boosted:     flags[p.Title],
		})
	}
	return out
}

// WriteConfig writes the annotation export: one preamble line, the header,
// then a row per titled post. Re-importing what this writes reproduces the
// same flags.
func WriteConfig(w io.Writer, rows []models.Post, flags map[string]bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{exportPreamble}); err != nil {
		return fmt.Errorf("write boosted config: %w", err)
	}
	if err := cw.Write(configColumns); err != nil {
		return fmt.Errorf("write boosted config: %w", err)
	}
	for _, e := range Entries(rows, flags) {
		date := ""
		if e.CreatedDate != nil {
			date = e.CreatedDate.Format("2006-01-02")
		}
		if err := cw.Write([]string{date, e.Title, strconv.FormatBool(e.Boosted)}); err != nil {
			return fmt.Errorf("write boosted config: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func isConfigHeader(rec []string) bool {
	hasTitle, hasBoosted := false, false
	for _, h := range rec {
		switch strings.TrimSpace(h) {
		case models.ColPostTitle:
			hasTitle = true
		case models.ColBoosted:
			hasBoosted = true
		}
	}
	return hasTitle && hasBoosted
}

func cellAt(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// parseBool reads the boolean spellings annotation files show up with;
// anything else is treated as missing.
func parseBool(s string) *bool {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

func duplicateWarning(what string, titles []string) string {
	uniq := make(map[string]bool, len(titles))
	var list []string
	for _, t := range titles {
		if !uniq[t] {
			uniq[t] = true
			list = append(list, t)
		}
	}
	sort.Strings(list)
	return fmt.Sprintf("Duplicate %s merge ambiguously; first occurrence wins: %s", what, strings.Join(list, ", "))
}
