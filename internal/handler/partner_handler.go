package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repair-app/internal/models"
	"repair-app/internal/services"
)

type PartnerHandler struct {
	partner *services.PartnerService
}

func NewPartnerHandler(partner *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{partner: partner}
}

func (h *PartnerHandler) ListRequests(c *gin.Context) {
	partnerID := c.Param("partnerId")

	requests, err := h.partner.List(c.Request.Context(), partnerID, c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requests,
		"total":    len(requests),
	})
}

func (h *PartnerHandler) CreateRequest(c *gin.Context) {
	partnerID := c.Param("partnerId")

	var req struct {
		CustomerName  string `json:"customerName" binding:"required"`
		CustomerEmail string `json:"customerEmail"`
		Product       string `json:"product" binding:"required"`
		SerialNumber  string `json:"serialNumber" binding:"required"`
		Fault         string `json:"fault" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: customerName, serialNumber, product, fault"})
		return
	}

	created, err := h.partner.Create(c.Request.Context(), partnerID, &models.Request{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Product:       req.Product,
		SerialNumber:  req.SerialNumber,
		Fault:         req.Fault,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Request created successfully",
		"request": created,
	})
}

func (h *PartnerHandler) UpdateRequest(c *gin.Context) {
	partnerID := c.Param("partnerId")
	requestID := c.Param("requestId")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	updated, err := h.partner.UpdateStatus(c.Request.Context(), partnerID, requestID, req.Status)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request updated successfully",
		"request": updated,
	})
}
