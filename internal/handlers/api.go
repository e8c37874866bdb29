package handlers

import (
	"net/http"
	"time"

	"linklytics/internal/analytics"
	"linklytics/internal/models"
	"linklytics/internal/session"

	"github.com/gin-gonic/gin"
)

// APIHandler handles the JSON read side of the dashboard
type APIHandler struct {
	store *session.Store
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(store *session.Store) *APIHandler {
	return &APIHandler{store: store}
}

// SummaryResponse is the JSON shape of /api/summary.
type SummaryResponse struct {
	SessionID       string                  `json:"session_id"`
	TotalPosts      int                     `json:"total_posts"`
	FilteredCount   int                     `json:"filtered_count"`
	Interval        *models.DateInterval    `json:"interval,omitempty"`
	Benchmarks      analytics.Benchmarks    `json:"benchmarks"`
	AllTags         []string                `json:"all_tags,omitempty"`
	SelectedTags    []string                `json:"selected_tags,omitempty"`
	Weekdays        []analytics.WeekdayStat `json:"weekdays,omitempty"`
	MetricNames     []string                `json:"metric_names,omitempty"`
	SelectedMetrics []string                `json:"selected_metrics,omitempty"`
	Warnings        []string                `json:"warnings,omitempty"`
}

// TrendsResponse is the JSON shape of /api/trends: the same long-form rows
// the line chart consumes.
type TrendsResponse struct {
	Metrics []string               `json:"metrics"`
	Points  []analytics.TrendPoint `json:"points"`
}

// GetSummary handles GET /api/summary
func (h *APIHandler) GetSummary(c *gin.Context) {
	st, ok := currentSession(c, h.store)
	if !ok || !st.HasData() {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No data uploaded for this session",
		})
		return
	}

	rep := analytics.BuildReport(st.Posts, st.Metrics, st.Filter, time.Now())

	var warnings []string
	if st.Posts != nil {
		warnings = append(warnings, st.Posts.Warnings...)
	}
	if st.Metrics != nil {
		warnings = append(warnings, st.Metrics.Warnings...)
	}
	warnings = append(warnings, st.Notices...)

	c.JSON(http.StatusOK, SummaryResponse{
		SessionID:       st.ID,
		TotalPosts:      rep.TotalPosts,
		FilteredCount:   rep.FilteredCount,
		Interval:        rep.Interval,
		Benchmarks:      rep.Benchmarks,
		AllTags:         rep.AllTags,
		SelectedTags:    rep.SelectedTags,
		Weekdays:        rep.Weekdays,
		MetricNames:     rep.MetricNames,
		SelectedMetrics: rep.SelectedMetrics,
		Warnings:        warnings,
	})
}

// GetTrends handles GET /api/trends
func (h *APIHandler) GetTrends(c *gin.Context) {
	st, ok := currentSession(c, h.store)
	if !ok || st.Metrics == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No site metrics uploaded for this session",
		})
		return
	}

	rep := analytics.BuildReport(st.Posts, st.Metrics, st.Filter, time.Now())

	c.JSON(http.StatusOK, TrendsResponse{
		Metrics: rep.SelectedMetrics,
		Points:  rep.Trends,
	})
}

// GetSession handles GET /api/session, dumping the full session state for
// inspection
func (h *APIHandler) GetSession(c *gin.Context) {
	st, ok := currentSession(c, h.store)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No session found",
		})
		return
	}

	c.JSON(http.StatusOK, st)
}

// HealthCheck handles GET /health
func (h *APIHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "linklytics",
	})
}
