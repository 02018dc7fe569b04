package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	intconfig "dispatchapi/internal/config"
	intdb "dispatchapi/internal/db"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

// schemaTables are the tables the API cannot serve without.
var schemaTables = []string{
	"accounts", "groups", "group_member", "dispatchers", "admin_groups", "admin_group_members",
	"message_templates", "nps_attachments", "enterprises", "devices", "public_api_tokens",
	"messages", "message_recipients", "message_attachments",
}

// schemaColumns are columns added by later migrations.
var schemaColumns = [][2]string{
	{"dispatchers", "view_reports_flag"},
	{"groups", "fail_over_include_original_message"},
	{"message_templates", "sync_to_device"},
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "dispatch api running"})
}

func Version(c *gin.Context) {
	c.String(http.StatusOK, currentOptions().Version)
}

// DBCheck pings the database and checks the schema. Details go to the log only.
func DBCheck(c *gin.Context) {
	ctx := c.Request.Context()
	reqID := middleware.GetRequestID(c)
	if err := intconfig.EnsureDB(ctx); err != nil {
		utils.LogError(reqID, "system", "db-check", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable", "request_id": reqID})
		return
	}

	missing := []string{}
	for _, t := range schemaTables {
		if !intdb.HasTable(ctx, intconfig.DB, t) {
			missing = append(missing, t)
		}
	}
	for _, col := range schemaColumns {
		if !intdb.HasColumn(ctx, intconfig.DB, col[0], col[1]) {
			missing = append(missing, col[0]+"."+col[1])
		}
	}
	if len(missing) > 0 {
		utils.LogError(reqID, "system", "db-check", fmt.Errorf("schema incomplete, missing %s", strings.Join(missing, ", ")))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "schema incomplete", "request_id": reqID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK"})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method": rt.Method,
			"path":   rt.Path,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
