package handlers

import (
	"net/http"
	"strconv"

	intconfig "hauler/internal/config"
	"hauler/internal/http/middleware"
	"hauler/internal/repositories"
	"hauler/internal/sequence"
	"hauler/internal/services"

	"github.com/gin-gonic/gin"
)

func settlementService(c *gin.Context, env intconfig.Env, seq sequence.Generator) services.SettlementService {
	return services.SettlementService{
		RateRepo:       repositories.RateRepository{},
		SettlementRepo: repositories.SettlementRepository{},
		SummaryRepo:    repositories.SummaryRepository{},
		TicketRepo:     repositories.TicketRepository{},
		Seq:            seq,
		WeekEndsOn:     env.WeekEndsOn,
		RequestID:      middleware.GetRequestID(c),
	}
}

type settleRequest struct {
	TicketID int64 `json:"ticket_id"`
}

// CreateSettlement settles one stored ticket. A second call for the same
// ticket returns 409 and leaves exactly one settlement item behind.
func CreateSettlement(env intconfig.Env, seq sequence.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := middleware.GetRequestContext(c)
		var req settleRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		result, err := settlementService(c, env, seq).SettleByID(int64(rc.OrgID), req.TicketID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func GetSettlementByID(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	repo := repositories.SettlementRepository{}
	item, err := repo.GetByID(int64(rc.OrgID), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetSettlements lists one week's items, optionally for one driver.
func GetSettlements(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	weekEnding := c.Query("week_ending")
	if weekEnding == "" {
		RespondError(c, http.StatusBadRequest, "week_ending query param is required", nil)
		return
	}

	repo := repositories.SettlementRepository{}
	driverID, _ := strconv.ParseInt(c.Query("driver_id"), 10, 64)

	var err error
	var items any
	if driverID > 0 {
		items, err = repo.ListForDriverWeek(int64(rc.OrgID), driverID, weekEnding)
	} else {
		items, err = repo.ListForWeek(int64(rc.OrgID), weekEnding)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settlements": items, "week_ending": weekEnding})
}
