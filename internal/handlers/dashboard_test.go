package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"linklytics/internal/config"
	"linklytics/internal/session"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postsCSV = `Report export,,,,,,,,,,,
Post title,Post link,Post type,Created date,Impressions,Clicks,Click through rate (CTR),Likes,Comments,Reposts,Follows,Engagement rate
Launch day #go,https://li.example/1,Organic,2024-06-03 10:15:00,1000,50,5.0,20,4,2,1,7.5
Quiet repost,https://li.example/2,Organic,2024-06-04 09:00:00,200,2,1.0,3,0,0,0,2.5
`

const metricsCSV = `Report export,,,
Date,Impressions (total),Clicks (total),Reactions (total)
2024-06-03,1000,50,20
2024-06-04,200,2,3
`

func newTestRouter(t *testing.T) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore(time.Hour)
	cfg := &config.Config{}
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "secret"
	cfg.Sessions.TTLMinutes = 240

	dashboard := NewDashboardHandler(store, 32<<20)
	chartPages := NewChartsHandler(store)
	api := NewAPIHandler(store)
	adminHandler := NewAdminHandler(store, cfg)

	r := gin.New()
	r.GET("/", dashboard.ServeIndex)
	r.POST("/upload", dashboard.HandleUpload)
	r.GET("/dashboard", dashboard.ServeDashboard)
	r.POST("/filters", dashboard.HandleFilters)
	r.POST("/boosts/toggle", dashboard.HandleBoostToggle)
	r.GET("/export/boosted_config.csv", dashboard.HandleExportBoosts)
	r.GET("/charts/trends", chartPages.ServeTrends)
	r.GET("/charts/performance", chartPages.ServePerformance)
	r.GET("/charts/weekday", chartPages.ServeWeekday)
	r.GET("/api/summary", api.GetSummary)
	r.GET("/api/trends", api.GetTrends)
	r.GET("/api/session", api.GetSession)
	r.GET("/health", api.HealthCheck)

	admin := r.Group("/admin", adminHandler.AdminAuth())
	admin.GET("/", adminHandler.ServeAdminDashboard)

	return r, store
}

type uploadFile struct {
	field   string
	name    string
	content string
}

func multipartBody(t *testing.T, files []uploadFile) (io.Reader, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for _, uf := range files {
		fw, err := mw.CreateFormFile(uf.field, uf.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(uf.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func doRequest(r *gin.Engine, method, target, contentType string, body io.Reader, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// uploadExports posts the fixture files and returns the session cookie the
// server issued.
func uploadExports(t *testing.T, r *gin.Engine, files []uploadFile) []*http.Cookie {
	t.Helper()
	body, contentType := multipartBody(t, files)
	w := doRequest(r, http.MethodPost, "/upload", contentType, body, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func parseHTML(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return doc
}

func postForm(r *gin.Engine, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, target, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), cookies)
}

func TestServeIndexShowsUploadForm(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/", "", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseHTML(t, w)
	assert.Equal(t, 1, doc.Find(`form[action="/upload"]`).Length())
	assert.Equal(t, 4, doc.Find(`input[type="file"]`).Length())
	assert.Contains(t, doc.Find("h1").Text(), "LinkedIn Analytics Dashboard")
}

func TestUploadFlowRendersDashboard(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "All posts 2024.csv", postsCSV},
		{"files", "Metrics 2024.csv", metricsCSV},
	})

	w := doRequest(r, http.MethodGet, "/dashboard", "", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	doc := parseHTML(t, w)

	headers := doc.Find("h2").Text()
	assert.Contains(t, headers, "🚀 Boosted Configuration")
	assert.Contains(t, headers, "🔍 Filters")
	assert.Contains(t, headers, "📈 Benchmarks")
	assert.Contains(t, headers, "🧾 Posts (Filtered)")
	assert.Contains(t, headers, "🎯 Post Performance Scatter")
	assert.Contains(t, headers, "📅 Engagement by Weekday")
	assert.Contains(t, headers, "🌐 Site Engagement Trends (Multi-Metric)")

	assert.Equal(t, 5, doc.Find(".stat-card").Length())
	cards := doc.Find(".stat-card").Text()
	assert.Contains(t, cards, "5.00%") // mean engagement rate of 7.5 and 2.5
	assert.Contains(t, cards, "3.00%") // mean CTR of 5.0 and 1.0
	assert.Contains(t, cards, "600")   // mean impressions

	body := w.Body.String()
	assert.Contains(t, body, "✅ Above Avg")
	assert.Contains(t, body, "❌ Below Avg")
	assert.Contains(t, body, "2 of 2 posts")
	assert.Equal(t, 0, doc.Find(".warning-banner").Length())
}

func TestUploadNamedSlotsOverrideSniffing(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"posts", "renamed_beyond_recognition.csv", postsCSV},
	})

	w := doRequest(r, http.MethodGet, "/dashboard", "", nil, cookies)
	doc := parseHTML(t, w)
	assert.Contains(t, doc.Find("h2").Text(), "🧾 Posts (Filtered)")
	assert.Contains(t, w.Body.String(), "Launch day #go")
}

func TestUploadUnknownFilenameIsIgnoredWithNotice(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "mystery.csv", postsCSV},
		{"files", "All posts.csv", postsCSV},
	})

	w := doRequest(r, http.MethodGet, "/dashboard", "", nil, cookies)
	doc := parseHTML(t, w)
	banners := doc.Find(".warning-banner").Text()
	assert.Contains(t, banners, "Ignored mystery.csv")
}

func TestUploadMalformedPostsRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	body, contentType := multipartBody(t, []uploadFile{
		{"posts", "All posts.csv", "just one line"},
	})
	w := doRequest(r, http.MethodPost, "/upload", contentType, body, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()

	// Nothing usable arrived, so the dashboard shows the empty state plus
	// the rejection notice.
	w = doRequest(r, http.MethodGet, "/dashboard", "", nil, cookies)
	doc := parseHTML(t, w)
	assert.Contains(t, doc.Find(".warning-banner").Text(), "Rejected All posts.csv")
	assert.Contains(t, w.Body.String(), "Nothing to analyze yet")
}

func TestDashboardWithoutSessionRedirects(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doRequest(r, http.MethodGet, "/dashboard", "", nil, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestFiltersRestrictByDate(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "All posts.csv", postsCSV},
	})

	w := postForm(r, "/filters", url.Values{
		"dates_submitted": {"1"},
		"start":           {"2024-06-03"},
		"end":             {"2024-06-03"},
	}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = doRequest(r, http.MethodGet, "/dashboard", "", nil, cookies)
	assert.Contains(t, w.Body.String(), "1 of 2 posts")
}

func TestFiltersRestrictByHashtag(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "All posts.csv", postsCSV},
	})

	w := postForm(r, "/filters", url.Values{
		"dates_submitted": {"1"},
		"tags":            {"#go"},
	}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = doRequest(r, http.MethodGet, "/dashboard", "", nil, cookies)
	body := w.Body.String()
	assert.Contains(t, body, "1 of 2 posts")
	assert.Contains(t, body, "Launch day #go")
	assert.NotContains(t, body, "Quiet repost")
}

func TestEmptyMetricSelectionShowsPrompt(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "Metrics.csv", metricsCSV},
	})

	// Submitting the metric form with nothing picked means "plot nothing",
	// unlike never having touched it.
	w := postForm(r, "/filters", url.Values{
		"metrics_submitted": {"1"},
	}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = doRequest(r, http.MethodGet, "/dashboard", "", nil, cookies)
	assert.Contains(t, w.Body.String(), "Select at least one metric to plot.")
}

func TestBoostToggleAndExportRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "All posts.csv", postsCSV},
	})

	w := postForm(r, "/boosts/toggle", url.Values{
		"title":   {"Launch day #go"},
		"boosted": {"on"},
	}, cookies)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(r, http.MethodGet, "/export/boosted_config.csv", "", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "boosted_config.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "Boost annotations", lines[0])
	assert.Equal(t, "Created Date,Post Title,Boosted", lines[1])
	assert.Contains(t, lines[2], "Launch day #go,true")
	assert.Contains(t, lines[3], "Quiet repost,false")

	// Re-importing the export restores the same flags in a fresh session.
	fresh := uploadExports(t, r, []uploadFile{
		{"files", "All posts.csv", postsCSV},
		{"boosts", "boosted_config.csv", w.Body.String()},
	})

	w = doRequest(r, http.MethodGet, "/dashboard", "", nil, fresh)
	doc := parseHTML(t, w)
	assert.Equal(t, 1, doc.Find(`input[type="checkbox"][checked]`).Length())
	assert.Equal(t, 2, doc.Find(`input[type="checkbox"]`).Length())
}

func TestToggleWithoutTitleRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := uploadExports(t, r, []uploadFile{
		{"files", "All posts.csv", postsCSV},
	})

	w := postForm(r, "/boosts/toggle", url.Values{"boosted": {"on"}}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportWithoutPostsIs404(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doRequest(r, http.MethodGet, "/export/boosted_config.csv", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
