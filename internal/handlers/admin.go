package handlers

import (
	"net/http"
	"strconv"

	"linklytics/internal/config"
	"linklytics/internal/session"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the operator stats page
type AdminHandler struct {
	store *session.Store
	cfg   *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store *session.Store, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		store: store,
		cfg:   cfg,
	}
}

// AdminAuth middleware for basic password protection
func (h *AdminHandler) AdminAuth() gin.HandlerFunc {
	return gin.BasicAuth(gin.Accounts{
		h.cfg.Admin.Username: h.cfg.Admin.Password,
	})
}

// ServeAdminDashboard serves the admin stats page
func (h *AdminHandler) ServeAdminDashboard(c *gin.Context) {
	sessions, withData, uploads := h.store.Stats()

	html := h.generateAdminDashboardHTML(sessions, withData, uploads)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}

// generateAdminDashboardHTML generates the admin stats page
func (h *AdminHandler) generateAdminDashboardHTML(sessions, withData, uploads int) string {
	return `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>linklytics Admin</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            background: #f8f9fa;
            color: #333;
        }
        .admin-nav {
            background: #1e293b;
            padding: 1rem 0;
            margin-bottom: 2rem;
        }
        .admin-nav .nav-container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 0 1rem;
            display: flex;
            align-items: center;
            gap: 2rem;
        }
        .admin-nav .nav-brand {
            color: #f1f5f9;
            font-weight: 700;
            font-size: 1.25rem;
        }
        .admin-nav .nav-links {
            display: flex;
            gap: 1rem;
        }
        .admin-nav .nav-link {
            color: #cbd5e1;
            text-decoration: none;
            padding: 0.5rem 1rem;
            border-radius: 6px;
            transition: all 0.2s;
        }
        .admin-nav .nav-link:hover,
        .admin-nav .nav-link.active {
            background: #3b82f6;
            color: white;
        }
        .main-content {
            max-width: 1200px;
            margin: 0 auto;
            padding: 0 1rem 2rem 1rem;
        }
        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 1.5rem;
            margin-bottom: 2rem;
        }
        .stat-card {
            background: white;
            padding: 1.5rem;
            border-radius: 12px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            text-align: center;
        }
        .stat-number {
            font-size: 2.5rem;
            font-weight: 700;
            color: #3b82f6;
            margin-bottom: 0.5rem;
        }
        .stat-label {
            color: #64748b;
            font-weight: 500;
        }
        .note {
            background: white;
            padding: 1.5rem;
            border-radius: 12px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            color: #64748b;
        }
    </style>
</head>
<body>
    <nav class="admin-nav">
        <div class="nav-container">
            <div class="nav-brand">🛠️ linklytics Admin</div>
            <div class="nav-links">
                <a href="/admin" class="nav-link active">Stats</a>
                <a href="/" class="nav-link">← Back to Site</a>
            </div>
        </div>
    </nav>

    <div class="main-content">
        <h1>Admin Dashboard</h1>

        <div class="stats-grid">
            <div class="stat-card">
                <div class="stat-number">` + strconv.Itoa(sessions) + `</div>
                <div class="stat-label">Live Sessions</div>
            </div>
            <div class="stat-card">
                <div class="stat-number">` + strconv.Itoa(withData) + `</div>
                <div class="stat-label">Sessions With Data</div>
            </div>
            <div class="stat-card">
                <div class="stat-number">` + strconv.Itoa(uploads) + `</div>
                <div class="stat-label">Uploads Since Start</div>
            </div>
        </div>

        <div class="note">
            Sessions live in memory only and expire ` + strconv.Itoa(h.cfg.Sessions.TTLMinutes) + ` minutes
            after their last request. Restarting the service drops them all.
        </div>
    </div>
</body>
</html>`
}
