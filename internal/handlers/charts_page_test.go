package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendsChartPage(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "Metrics.csv", metricsCSV},
	})

	w := doRequest(r, http.MethodGet, "/charts/trends", "", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Impressions (total)")
	assert.Contains(t, body, "2024-06-03")
}

func TestTrendsChartPageWithoutSelection(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "Metrics.csv", metricsCSV},
	})

	w := postForm(r, "/filters", url.Values{"metrics_submitted": {"1"}}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = doRequest(r, http.MethodGet, "/charts/trends", "", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Select at least one metric to plot.")
}

func TestPerformanceChartPage(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "All posts.csv", postsCSV},
	})

	w := doRequest(r, http.MethodGet, "/charts/performance", "", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Boosted")
	assert.Contains(t, body, "Organic")
}

func TestPerformanceChartPageWithoutPosts(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doRequest(r, http.MethodGet, "/charts/performance", "", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No posts uploaded yet.")
}

func TestWeekdayChartPage(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "All posts.csv", postsCSV},
	})

	w := doRequest(r, http.MethodGet, "/charts/weekday", "", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	// 2024-06-03 is a Monday, 2024-06-04 a Tuesday.
	body := w.Body.String()
	assert.Contains(t, body, "Monday")
	assert.Contains(t, body, "Tuesday")
}
