package handlers

import (
	"net/http"

	"hauler/internal/domain/models"
	"hauler/internal/http/middleware"
	"hauler/internal/repositories"

	"github.com/gin-gonic/gin"
)

func GetDrivers(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	repo := repositories.DriverRepository{}
	drivers, err := repo.List(int64(rc.OrgID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

func GetDriverByID(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	repo := repositories.DriverRepository{}
	driver, err := repo.GetByID(int64(rc.OrgID), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func CreateDriver(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	var d models.Driver
	if !BindJSONOrError(c, &d) {
		return
	}
	if d.Name == "" {
		RespondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}
	d.OrgID = int64(rc.OrgID)
	repo := repositories.DriverRepository{}
	created, err := repo.Create(d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func UpdateDriver(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var d models.Driver
	if !BindJSONOrError(c, &d) {
		return
	}
	d.ID = id
	repo := repositories.DriverRepository{}
	if err := repo.Update(int64(rc.OrgID), d); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver updated"})
}

func DeleteDriver(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	repo := repositories.DriverRepository{}
	if err := repo.Delete(int64(rc.OrgID), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}
