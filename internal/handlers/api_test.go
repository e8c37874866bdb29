package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/health", "", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "linklytics", resp["service"])
}

func TestSummaryWithoutDataIs404(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doRequest(r, http.MethodGet, "/api/summary", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummaryAfterUpload(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "All posts.csv", postsCSV},
		{"files", "Metrics.csv", metricsCSV},
	})

	w := doRequest(r, http.MethodGet, "/api/summary", "", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalPosts)
	assert.Equal(t, 2, resp.FilteredCount)
	assert.InDelta(t, 5.0, resp.Benchmarks.AvgEngagementRate, 1e-9)
	assert.InDelta(t, 3.0, resp.Benchmarks.AvgCTR, 1e-9)
	assert.InDelta(t, 600.0, resp.Benchmarks.AvgImpressions, 1e-9)
	assert.Equal(t, []string{"#go"}, resp.AllTags)
	require.NotEmpty(t, resp.MetricNames)
	assert.Equal(t, "Impressions (total)", resp.MetricNames[0])
	assert.Empty(t, resp.Warnings)
}

func TestTrendsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "Metrics.csv", metricsCSV},
	})

	w := doRequest(r, http.MethodGet, "/api/trends", "", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TrendsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Three metric columns, all under the default selection cap, over two
	// dates.
	assert.Len(t, resp.Metrics, 3)
	assert.Len(t, resp.Points, 6)
}

func TestTrendsHonorsMetricSelection(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "Metrics.csv", metricsCSV},
	})

	w := postForm(r, "/filters", url.Values{
		"metrics_submitted": {"1"},
		"metrics":           {"Clicks (total)"},
	}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = doRequest(r, http.MethodGet, "/api/trends", "", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TrendsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Clicks (total)"}, resp.Metrics)
	require.Len(t, resp.Points, 2)
	for _, p := range resp.Points {
		assert.Equal(t, "Clicks (total)", p.Metric)
	}
}

func TestTrendsWithoutMetricsIs404(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "All posts.csv", postsCSV},
	})

	w := doRequest(r, http.MethodGet, "/api/trends", "", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionSnapshot(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/session", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	cookies := uploadExports(t, r, []uploadFile{
		{"files", "All posts.csv", postsCSV},
	})
	w = doRequest(r, http.MethodGet, "/api/session", "", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var snap map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.NotEmpty(t, snap["id"])
	assert.Contains(t, snap, "posts")
}
