package handlers

import (
	"net/http"
	"strconv"

	intconfig "hauler/internal/config"
	"hauler/internal/http/middleware"
	"hauler/internal/repositories"
	"hauler/internal/sequence"

	"github.com/gin-gonic/gin"
)

// GetDriverWeekSummary recomputes and returns one driver's weekly rollup.
// Recomputing on read keeps the summary honest even if a prior settle failed
// between its insert and its recompute.
func GetDriverWeekSummary(env intconfig.Env, seq sequence.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := middleware.GetRequestContext(c)
		driverID, ok := ParamID(c, "driverId")
		if !ok {
			return
		}
		weekEnding := c.Param("weekEnding")

		summary, err := settlementService(c, env, seq).RecomputeSummary(int64(rc.OrgID), driverID, weekEnding)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// GetWeekSummaries lists every driver's stored rollup for one week. A
// driver_id query narrows it to that driver's stored row, without recompute.
func GetWeekSummaries(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	weekEnding := c.Query("week_ending")
	if weekEnding == "" {
		RespondError(c, http.StatusBadRequest, "week_ending query param is required", nil)
		return
	}

	repo := repositories.SummaryRepository{}
	if driverID, _ := strconv.ParseInt(c.Query("driver_id"), 10, 64); driverID > 0 {
		summary, err := repo.Get(int64(rc.OrgID), driverID, weekEnding)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
		return
	}

	summaries, err := repo.ListForWeek(int64(rc.OrgID), weekEnding)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summaries": summaries, "week_ending": weekEnding})
}
