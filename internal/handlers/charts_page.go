package handlers

import (
	"html/template"
	"net/http"
	"time"

	"linklytics/internal/analytics"
	"linklytics/internal/boosts"
	"linklytics/internal/charts"
	"linklytics/internal/logging"
	"linklytics/internal/session"

	"github.com/gin-gonic/gin"
)

// ChartsHandler serves the chart pages the dashboard embeds in frames.
// Each page is rendered fresh from the session so it can also be opened
// full-size on its own.
type ChartsHandler struct {
	store *session.Store
}

// NewChartsHandler creates a new charts handler
func NewChartsHandler(store *session.Store) *ChartsHandler {
	return &ChartsHandler{store: store}
}

// ServeTrends serves the multi-series site metrics line chart
func (h *ChartsHandler) ServeTrends(c *gin.Context) {
	st, ok := currentSession(c, h.store)
	if !ok || st.Metrics == nil {
		h.serveMessage(c, "No site metrics uploaded yet.")
		return
	}

	rep := analytics.BuildReport(st.Posts, st.Metrics, st.Filter, time.Now())
	if len(rep.SelectedMetrics) == 0 {
		h.serveMessage(c, "Select at least one metric to plot.")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderPage(c.Writer, charts.TrendLine(rep.Trends)); err != nil {
		logging.Log.Errorf("❌ Rendering trends chart: %v", err)
	}
}

// ServePerformance serves the impressions vs engagement rate scatter, with
// boosted posts colored apart from organic ones
func (h *ChartsHandler) ServePerformance(c *gin.Context) {
	st, ok := currentSession(c, h.store)
	if !ok || st.Posts == nil {
		h.serveMessage(c, "No posts uploaded yet.")
		return
	}

	rep := analytics.BuildReport(st.Posts, st.Metrics, st.Filter, time.Now())
	flags, _ := boosts.Merge(st.Posts.Rows, st.Boosts)

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderPage(c.Writer, charts.PerformanceScatter(rep.Filtered, flags)); err != nil {
		logging.Log.Errorf("❌ Rendering performance scatter: %v", err)
	}
}

// ServeWeekday serves the mean engagement rate by weekday bar chart
func (h *ChartsHandler) ServeWeekday(c *gin.Context) {
	st, ok := currentSession(c, h.store)
	if !ok || st.Posts == nil {
		h.serveMessage(c, "No posts uploaded yet.")
		return
	}

	rep := analytics.BuildReport(st.Posts, st.Metrics, st.Filter, time.Now())

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderPage(c.Writer, charts.WeekdayBar(rep.Weekdays)); err != nil {
		logging.Log.Errorf("❌ Rendering weekday chart: %v", err)
	}
}

// serveMessage writes a minimal page for frames with nothing to plot.
func (h *ChartsHandler) serveMessage(c *gin.Context, text string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            color: #64748b;
            padding: 2rem;
        }
    </style>
</head>
<body>`+template.HTMLEscapeString(text)+`</body>
</html>`)
}
