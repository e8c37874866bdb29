package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"linklytics/internal/analytics"
	"linklytics/internal/boosts"
	"linklytics/internal/ingest"
	"linklytics/internal/logging"
	"linklytics/internal/models"
	"linklytics/internal/session"

	"github.com/gin-gonic/gin"
)

// sessionCookie names the cookie that ties a browser to its upload session.
const sessionCookie = "linklytics_session"

// DashboardHandler serves the upload page and the dashboard itself
type DashboardHandler struct {
	store     *session.Store
	maxUpload int64
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(store *session.Store, maxUpload int64) *DashboardHandler {
	return &DashboardHandler{
		store:     store,
		maxUpload: maxUpload,
	}
}

// ensureSession returns the request's session, creating one and setting the
// cookie when the browser has none (or an expired one).
func ensureSession(c *gin.Context, store *session.Store) *session.State {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if st, ok := store.Get(id); ok {
			return st
		}
	}
	st := store.Create()
	c.SetCookie(sessionCookie, st.ID, 0, "/", "", false, true)
	return st
}

// currentSession returns a snapshot of the request cookie's session, if any.
func currentSession(c *gin.Context, store *session.Store) (*session.State, bool) {
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	return store.Get(id)
}

// ServeIndex serves the upload page
func (h *DashboardHandler) ServeIndex(c *gin.Context) {
	st := ensureSession(c, h.store)
	html := h.generateUploadHTML(st)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}

// HandleUpload ingests the posted exports into the session. Files can
// arrive in the named slots (posts, metrics, boosts) or in the generic
// multi-file slot, where the LinkedIn export filename decides the role.
func (h *DashboardHandler) HandleUpload(c *gin.Context) {
	st := ensureSession(c, h.store)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	form, err := c.MultipartForm()
	if err != nil {
		c.String(http.StatusRequestEntityTooLarge, "Upload rejected: %v", err)
		return
	}

	var (
		posts   *models.PostsTable
		metrics *models.MetricsTable
		saved   map[string]bool
		notices []string
	)

	take := func(fh *multipart.FileHeader, role ingest.Role) {
		f, err := fh.Open()
		if err != nil {
			notices = append(notices, fmt.Sprintf("Could not read %s: %v", fh.Filename, err))
			return
		}
		defer f.Close()

		switch role {
		case ingest.RolePosts:
			table, err := ingest.ReadPosts(f)
			if err != nil {
				notices = append(notices, fmt.Sprintf("Rejected %s: %v", fh.Filename, err))
				return
			}
			posts = table
		case ingest.RoleMetrics:
			table, err := ingest.ReadMetrics(f)
			if err != nil {
				notices = append(notices, fmt.Sprintf("Rejected %s: %v", fh.Filename, err))
				return
			}
			metrics = table
		default:
			notices = append(notices, fmt.Sprintf(
				"Ignored %s: the filename says neither 'All posts' nor 'Metrics', so its role is unknown.", fh.Filename))
		}
	}

	for _, fh := range form.File["posts"] {
		take(fh, ingest.RolePosts)
	}
	for _, fh := range form.File["metrics"] {
		take(fh, ingest.RoleMetrics)
	}
	for _, fh := range form.File["files"] {
		take(fh, ingest.DetectRole(fh.Filename))
	}

	for _, fh := range form.File["boosts"] {
		f, err := fh.Open()
		if err != nil {
			notices = append(notices, fmt.Sprintf("Could not read %s: %v", fh.Filename, err))
			continue
		}
		flags, warnings, err := boosts.ParseConfig(f)
		f.Close()
		if err != nil {
			notices = append(notices, fmt.Sprintf("⚠️ %s rejected: %v", fh.Filename, err))
			continue
		}
		saved = flags
		notices = append(notices, warnings...)
	}

	for _, notice := range notices {
		logging.Log.Warnf("⚠️ %s", notice)
	}

	gotData := posts != nil || metrics != nil || saved != nil
	h.store.Update(st.ID, func(s *session.State) {
		if posts != nil {
			s.Posts = posts
		}
		if metrics != nil {
			s.Metrics = metrics
		}
		if saved != nil {
			s.Boosts = saved
		}
		s.Notices = notices
	})
	if gotData {
		h.store.RecordUpload()
		logging.Log.Infof("✅ Session %s upload: posts=%t metrics=%t boosts=%t", st.ID, posts != nil, metrics != nil, saved != nil)
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// ServeDashboard recomputes the full report from the session's tables and
// renders it
func (h *DashboardHandler) ServeDashboard(c *gin.Context) {
	st, ok := currentSession(c, h.store)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
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

	var flags map[string]bool
	if st.Posts != nil {
		var mergeWarnings []string
		flags, mergeWarnings = boosts.Merge(st.Posts.Rows, st.Boosts)
		warnings = append(warnings, mergeWarnings...)
	}

	html := h.generateDashboardHTML(st, rep, flags, warnings)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}

// HandleFilters updates the session's filter state and sends the browser
// back to the dashboard. The two forms mark which half they carry so the
// date/tag form never clobbers the metric choice and vice versa.
func (h *DashboardHandler) HandleFilters(c *gin.Context) {
	st, ok := currentSession(c, h.store)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	next := st.Filter
	if c.PostForm("dates_submitted") != "" {
		next.Start = parseDateField(c.PostForm("start"))
		next.End = parseDateField(c.PostForm("end"))
		if next.End != nil {
			eod := models.EndOfDay(*next.End)
			next.End = &eod
		}
		next.Tags = c.PostFormArray("tags")
	}
	if c.PostForm("metrics_submitted") != "" {
		metrics := c.PostFormArray("metrics")
		if metrics == nil {
			metrics = []string{}
		}
		next.Metrics = metrics
	}

	h.store.Update(st.ID, func(s *session.State) {
		s.Filter = next
	})
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// HandleBoostToggle flips one post's boosted flag. Wired to the checkbox
// column via htmx; an unchecked box posts no "boosted" value.
func (h *DashboardHandler) HandleBoostToggle(c *gin.Context) {
	st, ok := currentSession(c, h.store)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No session found; upload your exports first"})
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	boosted := c.PostForm("boosted") != ""

	h.store.Update(st.ID, func(s *session.State) {
		flags := make(map[string]bool, len(s.Boosts)+1)
		for k, v := range s.Boosts {
			flags[k] = v
		}
		flags[title] = boosted
		s.Boosts = flags
	})

	c.Status(http.StatusNoContent)
}

// HandleExportBoosts streams the current annotation table as
// boosted_config.csv, in the exact shape the boosts upload slot accepts.
func (h *DashboardHandler) HandleExportBoosts(c *gin.Context) {
	st, ok := currentSession(c, h.store)
	if !ok || st.Posts == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No posts uploaded yet"})
		return
	}

	flags, _ := boosts.Merge(st.Posts.Rows, st.Boosts)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="boosted_config.csv"`)
	if err := boosts.WriteConfig(c.Writer, st.Posts.Rows, flags); err != nil {
		logging.Log.Errorf("❌ Writing boosted config export: %v", err)
	}
}

// parseDateField reads a yyyy-mm-dd form value; empty or unparseable means
// "use the default bound".
func parseDateField(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// generateUploadHTML generates the upload page
func (h *DashboardHandler) generateUploadHTML(st *session.State) string {
	html := generatePageShell("LinkedIn Analytics Dashboard")

	html += `
        <div class="header">
            <h1>📊 LinkedIn Analytics Dashboard</h1>
            <p class="caption">Upload both CSVs at once. The app auto-detects files by their names: one containing 'All posts' and one containing 'Metrics' (case-insensitive).</p>
        </div>`

	if st.HasData() {
		html += `
        <div class="notice">This session already has data loaded. <a href="/dashboard">Back to the dashboard →</a></div>`
	}

	for _, notice := range st.Notices {
		html += `
        <div class="warning-banner">⚠️ ` + template.HTMLEscapeString(notice) + `</div>`
	}

	html += `
        <div class="section">
            <form action="/upload" method="post" enctype="multipart/form-data">
                <div class="upload-grid">
                    <div class="file-field">
                        <label class="field-label" for="files">Upload LinkedIn files (drop both CSVs together)</label>
                        <input type="file" id="files" name="files" accept=".csv" multiple>
                    </div>
                    <div class="file-field">
                        <label class="field-label" for="posts">All posts export</label>
                        <input type="file" id="posts" name="posts" accept=".csv">
                    </div>
                    <div class="file-field">
                        <label class="field-label" for="metrics">Metrics export</label>
                        <input type="file" id="metrics" name="metrics" accept=".csv">
                    </div>
                    <div class="file-field">
                        <label class="field-label" for="boosts">Optional: Upload boosted_config.csv (saved from previous run)</label>
                        <input type="file" id="boosts" name="boosts" accept=".csv">
                    </div>
                    <button type="submit" class="btn">Upload</button>
                </div>
            </form>
            <p class="hint">Got .xls workbooks instead of CSVs? Split them first with <code>linklytics-convert export.xls</code>.</p>
        </div>
    </div>
</body>
</html>`

	return html
}

// generateDashboardHTML generates the full dashboard page
func (h *DashboardHandler) generateDashboardHTML(st *session.State, rep *analytics.Report, flags map[string]bool, warnings []string) string {
	html := generatePageShell("LinkedIn Analytics Dashboard")

	html += `
        <div class="header">
            <h1>📊 LinkedIn Analytics Dashboard</h1>
            <div class="nav-links">
                <a href="/">⬆️ Upload</a>
                <a href="/export/boosted_config.csv">💾 Boosted config</a>
                <a href="/doc/README">📚 Docs</a>
            </div>
        </div>`

	for _, warning := range warnings {
		html += `
        <div class="warning-banner">⚠️ ` + template.HTMLEscapeString(warning) + `</div>`
	}

	if !st.HasData() {
		html += `
        <div class="section">
            <h2>Nothing to analyze yet</h2>
            <p>Upload your LinkedIn exports to get started.</p>
            <a href="/" class="btn">⬆️ Go to upload</a>
        </div>
    </div>
</body>
</html>`
		return html
	}

	if st.Posts != nil {
		html += h.generateBoostSectionHTML(st.Posts.Rows, flags)
		html += h.generateFiltersHTML(rep)
		html += h.generateBenchmarksHTML(rep.Benchmarks)
		html += h.generatePostsTableHTML(rep)

		html += `
        <div class="section">
            <h2>🎯 Post Performance Scatter</h2>
            <iframe id="scatter-frame" class="chart-frame" src="/charts/performance" height="440"></iframe>
        </div>

        <div class="section">
            <h2>📅 Engagement by Weekday</h2>
            <iframe class="chart-frame" src="/charts/weekday" height="380"></iframe>
        </div>`
	}

	if st.Metrics != nil {
		html += h.generateTrendsSectionHTML(rep)
	}

	html += `
    </div>

    <script>
        // A boost toggle changes the scatter's colors, so reload that frame
        // once the toggle round-trips.
        document.body.addEventListener('htmx:afterRequest', function(evt) {
            const frame = document.getElementById('scatter-frame');
            if (frame && evt.detail.successful) {
                frame.contentWindow.location.reload();
            }
        });
    </script>
</body>
</html>`

	return html
}

// generateBoostSectionHTML generates the editable boost annotation table
func (h *DashboardHandler) generateBoostSectionHTML(rows []models.Post, flags map[string]bool) string {
	html := `
        <div class="section">
            <h2>🚀 Boosted Configuration</h2>
            <div class="table-wrap boost-table">
                <table class="data-table">
                    <thead>
                        <tr>
                            <th>Created Date</th>
                            <th>Post Title</th>
                            <th>Boosted</th>
                        </tr>
                    </thead>
                    <tbody>`

	for _, row := range rows {
		title := strings.TrimSpace(row.Title)

		checkbox := `<span class="muted">n/a</span>`
		if title != "" {
			checked := ""
			if flags[title] {
				checked = " checked"
			}
			checkbox = `<input type="checkbox" name="boosted" title="Mark as boosted" hx-post="/boosts/toggle" hx-vals='` + hxTitleVals(title) + `' hx-swap="none"` + checked + `>`
		}

		titleCell := template.HTMLEscapeString(title)
		if title == "" {
			titleCell = `<span class="muted">(untitled)</span>`
		}

		html += `
                        <tr>
                            <td>` + formatDateCell(row.CreatedDate) + `</td>
                            <td>` + titleCell + `</td>
                            <td>` + checkbox + `</td>
                        </tr>`
	}

	html += `
                    </tbody>
                </table>
            </div>
            <a href="/export/boosted_config.csv" class="btn download-btn">💾 Download Boosted Config</a>
        </div>`

	return html
}

// generateFiltersHTML generates the date and hashtag filter form
func (h *DashboardHandler) generateFiltersHTML(rep *analytics.Report) string {
	start, end := "", ""
	if rep.Interval != nil {
		start = rep.Interval.Start.Format("2006-01-02")
		end = rep.Interval.End.Format("2006-01-02")
	}

	html := `
        <div class="section">
            <h2>🔍 Filters</h2>
            <form action="/filters" method="post">
                <input type="hidden" name="dates_submitted" value="1">
                <div class="filters-grid">
                    <div>
                        <label class="field-label">📅 Date range</label>
                        <input type="date" name="start" value="` + start + `">
                        <input type="date" name="end" value="` + end + `">
                    </div>
                    <div>
                        <label class="field-label" for="tags">🏷️ Filter by hashtags</label>
                        <select id="tags" name="tags" multiple size="5" data-placeholder="#DOTC, #OSIG, ...">`

	selected := selectedSet(rep.SelectedTags)
	for _, tag := range rep.AllTags {
		attr := ""
		if selected[tag] {
			attr = " selected"
		}
		html += `
                            <option value="` + template.HTMLEscapeString(tag) + `"` + attr + `>` + template.HTMLEscapeString(tag) + `</option>`
	}

	html += `
                        </select>
                    </div>
                    <div class="filters-submit">
                        <button type="submit" class="btn">Apply</button>
                    </div>
                </div>
            </form>
        </div>`

	return html
}

// generateBenchmarksHTML generates the benchmark stat cards
func (h *DashboardHandler) generateBenchmarksHTML(b analytics.Benchmarks) string {
	return `
        <div class="section">
            <h2>📈 Benchmarks</h2>
            <div class="stats-grid">
                <div class="stat-card">
                    <div class="stat-number">` + formatRate(b.AvgEngagementRate) + `</div>
                    <div class="stat-label">Avg Engagement Rate</div>
                </div>
                <div class="stat-card">
                    <div class="stat-number">` + formatRate(b.AvgCTR) + `</div>
                    <div class="stat-label">Avg CTR</div>
                </div>
                <div class="stat-card">
                    <div class="stat-number">` + formatCount(b.AvgImpressions) + `</div>
                    <div class="stat-label">Avg Impressions</div>
                </div>
                <div class="stat-card">
                    <div class="stat-number">` + formatCount(b.AvgClicks) + `</div>
                    <div class="stat-label">Avg Clicks</div>
                </div>
                <div class="stat-card">
                    <div class="stat-number">` + formatCount(b.AvgLikes) + `</div>
                    <div class="stat-label">Avg Likes</div>
                </div>
            </div>
        </div>`
}

// generatePostsTableHTML generates the filtered posts table with the
// above/below benchmark flag columns
func (h *DashboardHandler) generatePostsTableHTML(rep *analytics.Report) string {
	html := `
        <div class="section">
            <h2>🧾 Posts (Filtered)</h2>
            <p class="hint">` + strconv.Itoa(rep.FilteredCount) + ` of ` + strconv.Itoa(rep.TotalPosts) + ` posts match the current filters.</p>`

	if len(rep.Flagged) == 0 {
		html += `
            <p>No posts match the current filters.</p>
        </div>`
		return html
	}

	html += `
            <div class="table-wrap">
                <table class="data-table">
                    <thead>
                        <tr>
                            <th>Created Date</th>
                            <th>Post Title</th>
                            <th>Impressions</th>
                            <th>Impressions Flag</th>
                            <th>Clicks</th>
                            <th>Clicks Flag</th>
                            <th>CTR</th>
                            <th>CTR Flag</th>
                            <th>Engagement Rate</th>
                            <th>ER Flag</th>
                            <th>Likes</th>
                            <th>Likes Flag</th>
                            <th>Comments</th>
                            <th>Reposts</th>
                            <th>Follows</th>
                            <th>Post Type</th>
                            <th>Post Link</th>
                        </tr>
                    </thead>
                    <tbody>`

	for _, row := range rep.Flagged {
		link := ""
		if row.Link != "" {
			link = `<a href="` + template.HTMLEscapeString(row.Link) + `" target="_blank">View post</a>`
		}

		html += `
                        <tr>
                            <td>` + formatDateCell(row.CreatedDate) + `</td>
                            <td class="title-cell">` + template.HTMLEscapeString(row.Title) + `</td>
                            <td>` + formatCountCell(row.Impressions) + `</td>
                            <td>` + flagLabel(row.ImpressionsFlag) + `</td>
                            <td>` + formatCountCell(row.Clicks) + `</td>
                            <td>` + flagLabel(row.ClicksFlag) + `</td>
                            <td>` + formatRateCell(row.CTR) + `</td>
                            <td>` + flagLabel(row.CTRFlag) + `</td>
                            <td>` + formatRateCell(row.EngagementRate) + `</td>
                            <td>` + flagLabel(row.EngagementRateFlag) + `</td>
                            <td>` + formatCountCell(row.Likes) + `</td>
                            <td>` + flagLabel(row.LikesFlag) + `</td>
                            <td>` + formatCountCell(row.Comments) + `</td>
                            <td>` + formatCountCell(row.Reposts) + `</td>
                            <td>` + formatCountCell(row.Follows) + `</td>
                            <td>` + template.HTMLEscapeString(row.PostType) + `</td>
                            <td>` + link + `</td>
                        </tr>`
	}

	html += `
                    </tbody>
                </table>
            </div>
        </div>`

	return html
}

// generateTrendsSectionHTML generates the site metrics section: the metric
// picker plus the multi-series line chart frame
func (h *DashboardHandler) generateTrendsSectionHTML(rep *analytics.Report) string {
	html := `
        <div class="section">
            <h2>🌐 Site Engagement Trends (Multi-Metric)</h2>
            <form action="/filters" method="post">
                <input type="hidden" name="metrics_submitted" value="1">
                <label class="field-label" for="metrics">Choose metrics to plot</label>
                <select id="metrics" name="metrics" multiple size="6">`

	selected := selectedSet(rep.SelectedMetrics)
	for _, name := range rep.MetricNames {
		attr := ""
		if selected[name] {
			attr = " selected"
		}
		html += `
                    <option value="` + template.HTMLEscapeString(name) + `"` + attr + `>` + template.HTMLEscapeString(name) + `</option>`
	}

	html += `
                </select>
                <button type="submit" class="btn">Apply</button>
            </form>`

	if len(rep.SelectedMetrics) == 0 {
		html += `
            <div class="notice">Select at least one metric to plot.</div>
        </div>`
		return html
	}

	html += `
            <iframe class="chart-frame" src="/charts/trends" height="480"></iframe>
        </div>`

	return html
}

// generatePageShell generates the shared document head and opens the page
// container
func generatePageShell(title string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>` + template.HTMLEscapeString(title) + `</title>
    <script src="https://unpkg.com/htmx.org@2.0.2"></script>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #f8f9fa;
            padding: 20px;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
        }

        .header {
            background: linear-gradient(135deg, #2563eb 0%, #3b82f6 100%);
            color: white;
            padding: 2rem;
            margin-bottom: 2rem;
            border-radius: 12px;
            box-shadow: 0 4px 20px rgba(37, 99, 235, 0.3);
        }

        .header h1 {
            font-size: 2rem;
            font-weight: 700;
            margin-bottom: 0.5rem;
        }

        .header .caption {
            opacity: 0.9;
        }

        .nav-links a {
            color: white;
            text-decoration: none;
            opacity: 0.85;
            margin-right: 1.5rem;
        }

        .nav-links a:hover {
            opacity: 1;
            text-decoration: underline;
        }

        .section {
            background: white;
            padding: 1.5rem;
            border-radius: 12px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            margin-bottom: 2rem;
        }

        .section h2 {
            margin-bottom: 1rem;
            color: #1e293b;
        }

        .warning-banner {
            background: #fffbeb;
            border: 1px solid #fde68a;
            color: #92400e;
            padding: 0.75rem 1rem;
            border-radius: 8px;
            margin-bottom: 0.75rem;
        }

        .notice {
            background: #eff6ff;
            border: 1px solid #bfdbfe;
            color: #1e40af;
            padding: 0.75rem 1rem;
            border-radius: 8px;
            margin-bottom: 0.75rem;
        }

        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 1.5rem;
        }

        .stat-card {
            background: white;
            padding: 1.5rem;
            border-radius: 12px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            text-align: center;
        }

        .stat-number {
            font-size: 1.75rem;
            font-weight: 700;
            color: #3b82f6;
            margin-bottom: 0.5rem;
        }

        .stat-label {
            color: #64748b;
            font-weight: 500;
        }

        .table-wrap {
            overflow-x: auto;
            margin-bottom: 1rem;
        }

        .boost-table {
            max-height: 420px;
            overflow-y: auto;
        }

        .data-table {
            width: 100%;
            border-collapse: collapse;
            font-size: 0.875rem;
        }

        .data-table th {
            background: #f8fafc;
            text-align: left;
            padding: 0.75rem;
            border-bottom: 1px solid #e2e8f0;
            white-space: nowrap;
        }

        .data-table td {
            padding: 0.5rem 0.75rem;
            border-bottom: 1px solid #f1f5f9;
            white-space: nowrap;
        }

        .data-table .title-cell {
            max-width: 360px;
            overflow: hidden;
            text-overflow: ellipsis;
        }

        .muted {
            color: #94a3b8;
        }

        .hint {
            color: #64748b;
            font-size: 0.875rem;
            margin-bottom: 1rem;
        }

        .filters-grid {
            display: flex;
            gap: 2rem;
            flex-wrap: wrap;
            align-items: flex-end;
        }

        .field-label {
            display: block;
            font-weight: 600;
            color: #374151;
            margin-bottom: 0.5rem;
        }

        input[type="date"], select {
            padding: 0.5rem;
            border: 1px solid #cbd5e1;
            border-radius: 6px;
            font-size: 0.875rem;
        }

        select[multiple] {
            min-width: 260px;
        }

        .btn {
            display: inline-block;
            background: #3b82f6;
            color: white;
            border: none;
            padding: 0.5rem 1.25rem;
            border-radius: 6px;
            cursor: pointer;
            font-size: 0.875rem;
            text-decoration: none;
            margin-top: 0.5rem;
        }

        .btn:hover {
            background: #1d4ed8;
        }

        .upload-grid {
            display: grid;
            gap: 1rem;
            max-width: 560px;
        }

        .file-field {
            padding: 1rem;
            background: #f8fafc;
            border: 1px dashed #cbd5e1;
            border-radius: 8px;
        }

        .chart-frame {
            width: 100%;
            border: 0;
            margin-top: 1rem;
        }

        code {
            background: #f3f4f6;
            padding: 0.2rem 0.4rem;
            border-radius: 4px;
            font-size: 0.875rem;
        }
    </style>
</head>
<body>
    <div class="container">`
}

// hxTitleVals packs a post title into the JSON hx-vals attribute, escaped
// for both the JSON string and the surrounding HTML attribute.
func hxTitleVals(title string) string {
	payload, _ := json.Marshal(map[string]string{"title": title})
	return template.HTMLEscapeString(string(payload))
}

// selectedSet builds a membership set for marking <option> tags selected.
func selectedSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// flagLabel renders a benchmark flag the way the table shows it.
func flagLabel(f analytics.Flag) string {
	switch f {
	case analytics.FlagAbove:
		return "✅ Above Avg"
	case analytics.FlagBelow:
		return "❌ Below Avg"
	default:
		return ""
	}
}

func formatDateCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatCountCell(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatRateCell(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

// formatRate renders a percentage benchmark for the stat cards.
func formatRate(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// formatCount renders a count benchmark rounded with thousands separators.
func formatCount(v float64) string {
	neg := v < 0
	s := strconv.FormatInt(int64(math.Round(math.Abs(v))), 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
