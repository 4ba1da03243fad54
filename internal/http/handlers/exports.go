package handlers

import (
	"net/http"

	"hauler/internal/http/middleware"
	"hauler/internal/repositories"
	"hauler/internal/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sheetService(c *gin.Context) services.SheetService {
	return services.SheetService{
		SettlementRepo: repositories.SettlementRepository{},
		SummaryRepo:    repositories.SummaryRepository{},
		RequestID:      middleware.GetRequestID(c),
	}
}

// ExportSettlementsXLSX downloads one week's settlement items as a workbook.
func ExportSettlementsXLSX(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	weekEnding := c.Query("week_ending")
	if weekEnding == "" {
		RespondError(c, http.StatusBadRequest, "week_ending query param is required", nil)
		return
	}

	data, filename, err := sheetService(c).ExportSettlements(int64(rc.OrgID), weekEnding)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ExportSummariesXLSX downloads the weekly rollups as a workbook.
func ExportSummariesXLSX(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	weekEnding := c.Query("week_ending")
	if weekEnding == "" {
		RespondError(c, http.StatusBadRequest, "week_ending query param is required", nil)
		return
	}

	data, filename, err := sheetService(c).ExportSummaries(int64(rc.OrgID), weekEnding)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
