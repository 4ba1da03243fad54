package api

import (
	"log"
	stdhttp "net/http"

	intconfig "hauler/internal/config"
	h "hauler/internal/http/handlers"
	"hauler/internal/http/middleware"
	"hauler/internal/sequence"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, seq sequence.Generator) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck(env))
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login(env))
		auth.POST("/register", h.Register(env))

		// Everything below requires a bearer token carrying the org.
		authed := api.Group("")
		authed.Use(middleware.RequireAuth(env.JWTSecret))

		// Drivers
		drivers := authed.Group("/drivers")
		drivers.GET("", h.GetDrivers)
		drivers.GET("/:id", h.GetDriverByID)
		drivers.POST("", h.CreateDriver)
		drivers.PUT("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)

		// Rate catalog
		rates := authed.Group("/rates")
		rates.GET("", h.GetRates)
		rates.GET("/:id", h.GetRateByID)
		rates.POST("", h.CreateRate)
		rates.PUT("/:id", h.UpdateRate)
		rates.DELETE("/:id", h.DeleteRate)
		rates.GET("/resolve", h.ResolveRate)

		// Tickets & batch intake
		tickets := authed.Group("/tickets")
		tickets.GET("", h.GetTickets)
		tickets.GET("/:id", h.GetTicketByID)
		tickets.POST("", h.CreateTicket)
		tickets.POST("/clarify", h.ClarifyTickets)
		tickets.POST("/import", h.ImportTickets)
		tickets.POST("/import-xlsx", h.ImportTicketsXLSX)

		// Settlements
		settlements := authed.Group("/settlements")
		settlements.POST("", h.CreateSettlement(env, seq))
		settlements.GET("", h.GetSettlements)
		settlements.GET("/:id", h.GetSettlementByID)

		// Weekly summaries
		summaries := authed.Group("/summaries")
		summaries.GET("", h.GetWeekSummaries)
		summaries.GET("/:driverId/:weekEnding", h.GetDriverWeekSummary(env, seq))

		// Statements & exports
		authed.GET("/statements/:driverId/:weekEnding", h.GetStatementPDF(env))
		exports := authed.Group("/exports")
		exports.GET("/settlements.xlsx", h.ExportSettlementsXLSX)
		exports.GET("/summaries.xlsx", h.ExportSummariesXLSX)
	}

	h.SetRouter(r)
	return r
}
