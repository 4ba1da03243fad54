package handlers

import (
	"net/http"
	"sync"

	intconfig "hauler/internal/config"
	intdb "hauler/internal/db"
	"hauler/utils"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "settlement backend running"})
}

// DBCheck pings the database and reports whether the settlement schema is in
// place, so a bad migration shows up here before it shows up as 500s.
func DBCheck(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := intconfig.EnsureDB(env); err != nil {
			utils.LogBadConn("db-check", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database not reachable: " + err.Error()})
			return
		}

		var count int
		err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM settlement_items").Scan(&count)
		if err != nil {
			utils.LogBadConn("db-check", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":          "database connection OK",
			"settlement_items": count,
			"schema": gin.H{
				"tickets":          intdb.HasTable(intconfig.DB, "tickets"),
				"weekly_summaries": intdb.HasTable(intconfig.DB, "weekly_summaries"),
				"week_ending":      intdb.HasColumn(intconfig.DB, "settlement_items", "week_ending"),
			},
		})
	}
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
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
