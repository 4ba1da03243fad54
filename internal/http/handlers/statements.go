package handlers

import (
	"net/http"

	intconfig "hauler/internal/config"
	"hauler/internal/http/middleware"
	"hauler/internal/repositories"
	"hauler/internal/services"

	"github.com/gin-gonic/gin"
)

// GetStatementPDF renders the weekly settlement statement for one driver.
func GetStatementPDF(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := middleware.GetRequestContext(c)
		driverID, ok := ParamID(c, "driverId")
		if !ok {
			return
		}
		weekEnding := c.Param("weekEnding")
		if weekEnding == "" {
			RespondError(c, http.StatusBadRequest, "weekEnding is required", nil)
			return
		}

		svc := services.StatementService{
			DriverRepo:     repositories.DriverRepository{},
			SettlementRepo: repositories.SettlementRepository{},
			SummaryRepo:    repositories.SummaryRepository{},
			OrgName:        env.OrgName,
			RequestID:      middleware.GetRequestID(c),
		}
		pdf, filename, err := svc.GenerateStatement(int64(rc.OrgID), driverID, weekEnding)
		if err != nil {
			RespondDomainError(c, err)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
