package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"repair-app/internal/models"
	"repair-app/internal/services"
)

type IntegratorHandler struct {
	integrator *services.IntegratorService
}

func NewIntegratorHandler(integrator *services.IntegratorService) *IntegratorHandler {
	return &IntegratorHandler{integrator: integrator}
}

func (h *IntegratorHandler) ListProjects(c *gin.Context) {
	integratorID := c.Param("integratorId")

	projects, err := h.integrator.ListProjectsWithDevices(c.Request.Context(), integratorID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"projects": projects,
		"total":    len(projects),
	})
}

func (h *IntegratorHandler) FaultStats(c *gin.Context) {
	integratorID := c.Param("integratorId")

	stats, err := h.integrator.FaultStats(c.Request.Context(), integratorID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

func (h *IntegratorHandler) CreateProject(c *gin.Context) {
	integratorID := c.Param("integratorId")

	var req struct {
		Name            string  `json:"name" binding:"required"`
		Location        string  `json:"location" binding:"required"`
		Description     string  `json:"description"`
		Budget          float64 `json:"budget"`
		ExpectedEndDate string  `json:"expectedEndDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: name, location"})
		return
	}

	project := &models.Project{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Budget:      req.Budget,
	}
	if req.ExpectedEndDate != "" {
		endDate, err := time.Parse("2006-01-02", req.ExpectedEndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "expectedEndDate must be YYYY-MM-DD"})
			return
		}
		project.ExpectedEndDate = endDate
	}

	created, err := h.integrator.CreateProject(c.Request.Context(), integratorID, project)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Project created successfully",
		"project": created,
	})
}

func (h *IntegratorHandler) AddDevices(c *gin.Context) {
	integratorID := c.Param("integratorId")
	projectID := c.Param("projectId")

	var req struct {
		Devices []models.Device `json:"devices"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Devices == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid devices data. Expected array of devices."})
		return
	}

	added, err := h.integrator.AddDevices(c.Request.Context(), integratorID, projectID, req.Devices)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      fmt.Sprintf("Successfully added %d devices to project", added),
		"devicesAdded": added,
	})
}
