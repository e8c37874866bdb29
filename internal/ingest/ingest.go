// Package ingest turns raw LinkedIn export files into typed tables.
//
// Both exports ship with a one-line preamble above the real header, so every
// reader here skips the first physical row. Cell-level parse failures never
// abort a file: bad numbers and dates degrade to missing values and the
// problems a user should know about are collected as table warnings.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Role identifies which export an uploaded file is.
type Role int

const (
	RoleUnknown Role = iota
	RolePosts
	RoleMetrics
)

func (r Role) String() string {
	switch r {
	case RolePosts:
		return "posts"
	case RoleMetrics:
		return "metrics"
	}
	return "unknown"
}

// DetectRole sniffs a file's role from its name: "all posts" marks the
// per-post export, otherwise "metrics" marks the time-series export, both
// case-insensitive. Used as the fallback when the caller did not declare a
// role explicitly.
func DetectRole(filename string) Role {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "all posts"):
		return RolePosts
	case strings.Contains(name, "metrics"):
		return RoleMetrics
	}
	return RoleUnknown
}

// ReadRaw reads delimited text into records, tolerating ragged rows and
// sloppy quoting the way the exports require.
func ReadRaw(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read delimited text: %w", err)
	}
	return records, nil
}

func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "﻿"))
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
