package handlers

import (
	"net/http"
	"strconv"

	"hauler/internal/domain/models"
	"hauler/internal/http/middleware"
	"hauler/internal/repositories"
	"hauler/internal/services"
	"hauler/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type rateRequest struct {
	ScopeType     string          `json:"scope_type"`
	ScopeValue    string          `json:"scope_value"`
	RateName      string          `json:"rate_name"`
	RateValue     decimal.Decimal `json:"rate_value"`
	EffectiveFrom string          `json:"effective_from"`
	EffectiveTo   string          `json:"effective_to"`
}

func (r rateRequest) toModel(orgID int64) models.Rate {
	return models.Rate{
		OrgID:         orgID,
		ScopeType:     r.ScopeType,
		ScopeValue:    r.ScopeValue,
		RateName:      r.RateName,
		RateValue:     r.RateValue,
		EffectiveFrom: r.EffectiveFrom,
		EffectiveTo:   r.EffectiveTo,
	}
}

func validScope(s string) bool {
	switch s {
	case models.ScopeDriver, models.ScopeMaterial, models.ScopeCustomer, models.ScopeDefault:
		return true
	}
	return false
}

func GetRates(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	repo := repositories.RateRepository{}
	rates, err := repo.List(int64(rc.OrgID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

func GetRateByID(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	repo := repositories.RateRepository{}
	rate, err := repo.GetByID(int64(rc.OrgID), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

func CreateRate(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	var req rateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !validScope(req.ScopeType) {
		RespondError(c, http.StatusBadRequest, "scope_type must be driver, material, customer or default", nil)
		return
	}
	if req.ScopeType != models.ScopeDefault && req.ScopeValue == "" {
		RespondError(c, http.StatusBadRequest, "scope_value is required for scoped rates", nil)
		return
	}
	if req.RateName == "" {
		RespondError(c, http.StatusBadRequest, "rate_name is required", nil)
		return
	}

	repo := repositories.RateRepository{}
	created, err := repo.Create(req.toModel(int64(rc.OrgID)))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func UpdateRate(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req rateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !validScope(req.ScopeType) {
		RespondError(c, http.StatusBadRequest, "scope_type must be driver, material, customer or default", nil)
		return
	}

	rate := req.toModel(int64(rc.OrgID))
	rate.ID = id
	repo := repositories.RateRepository{}
	if err := repo.Update(int64(rc.OrgID), rate); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rate updated"})
}

func DeleteRate(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	repo := repositories.RateRepository{}
	if err := repo.Delete(int64(rc.OrgID), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rate deleted"})
}

// ResolveRate previews which rate a ticket would settle under, without
// writing anything. Dispatchers use it to sanity-check the rate catalog.
func ResolveRate(c *gin.Context) {
	rc := middleware.GetRequestContext(c)

	driverID, err := strconv.ParseInt(c.Query("driver_id"), 10, 64)
	if err != nil || driverID <= 0 {
		RespondError(c, http.StatusBadRequest, "driver_id query param is required", err)
		return
	}
	customerID, _ := strconv.ParseInt(c.Query("customer_id"), 10, 64)

	ticket := models.Ticket{
		DriverID:   driverID,
		Material:   c.Query("material"),
		CustomerID: customerID,
		TicketDate: c.DefaultQuery("date", utils.FormatDate(utils.NowUTC())),
	}

	svc := services.RateService{
		RateRepo:  repositories.RateRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	rate, err := svc.Resolve(int64(rc.OrgID), ticket)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": rate})
}
