package handlers

import (
	"net/http"
	"strconv"

	"hauler/internal/domain/models"
	"hauler/internal/http/middleware"
	"hauler/internal/repositories"
	"hauler/internal/services"

	"github.com/gin-gonic/gin"
)

func ticketService(c *gin.Context) services.TicketService {
	reqID := middleware.GetRequestID(c)
	return services.TicketService{
		TicketRepo: repositories.TicketRepository{},
		Clarifier:  services.ClarifierService{RequestID: reqID},
		RequestID:  reqID,
	}
}

func GetTickets(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	driverID, _ := strconv.ParseInt(c.Query("driver_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	repo := repositories.TicketRepository{}
	tickets, err := repo.List(int64(rc.OrgID), driverID, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func GetTicketByID(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	repo := repositories.TicketRepository{}
	t, err := repo.GetByID(int64(rc.OrgID), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func CreateTicket(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	var t models.Ticket
	if !BindJSONOrError(c, &t) {
		return
	}
	created, err := ticketService(c).Create(int64(rc.OrgID), t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type clarifyRequest struct {
	Rows []models.TicketRow `json:"rows"`
}

// ClarifyTickets is the dry run: flag a batch without storing anything.
func ClarifyTickets(c *gin.Context) {
	var req clarifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.ClarifierService{RequestID: middleware.GetRequestID(c)}
	issues := svc.Clarify(req.Rows)
	c.JSON(http.StatusOK, gin.H{
		"rows":   len(req.Rows),
		"issues": issues,
	})
}

type importRequest struct {
	Rows []models.BatchRow `json:"rows"`
}

// ImportTickets stores a JSON batch, clarifier issues included in the reply.
func ImportTickets(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	var req importRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	result, err := ticketService(c).ImportBatch(int64(rc.OrgID), req.Rows)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ImportTicketsXLSX accepts a multipart workbook upload from a scale house.
func ImportTicketsXLSX(c *gin.Context) {
	rc := middleware.GetRequestContext(c)

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "file field is required", err)
		return
	}
	defer file.Close()

	sheetSvc := services.SheetService{RequestID: middleware.GetRequestID(c)}
	rows, err := sheetSvc.ParseTicketSheet(file)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	result, err := ticketService(c).ImportBatch(int64(rc.OrgID), rows)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
