package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"repair-app/internal/services"
)

type NotificationHandler struct {
	notifications *services.NotificationService
	tickets       *services.TicketService
}

func NewNotificationHandler(notifications *services.NotificationService, tickets *services.TicketService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, tickets: tickets}
}

// UpdateStatus notifies the customer of a lifecycle stage change.
func (h *NotificationHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		RequestID string            `json:"requestId" binding:"required"`
		NewStatus string            `json:"newStatus" binding:"required"`
		ExtraData map[string]string `json:"extraData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: requestId, newStatus"})
		return
	}

	stage := services.Stage(req.NewStatus)
	if _, ok := stageKnown(stage); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid status. Valid statuses: " + strings.Join(services.StageNames, ", "),
		})
		return
	}

	customer, err := h.tickets.FindCustomer(c.Request.Context(), req.RequestID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Customer not found for the given requestId"})
		return
	}

	data := services.StageData(stage, req.RequestID, req.ExtraData)

	if err := h.notifications.Send(*customer, stage, data); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Status updated to " + req.NewStatus + " and notifications sent",
		"requestId": req.RequestID,
		"newStatus": req.NewStatus,
		"customer": gin.H{
			"name":  customer.Name,
			"email": customer.Email,
		},
		"notificationData": data,
	})
}

// TestNotification sends a canned notification, for development and demos.
func (h *NotificationHandler) TestNotification(c *gin.Context) {
	var req struct {
		CustomerName  string            `json:"customerName"`
		CustomerEmail string            `json:"customerEmail"`
		CustomerPhone string            `json:"customerPhone"`
		Stage         string            `json:"stage"`
		ExtraData     map[string]string `json:"extraData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	customer := services.Customer{
		Name:  defaultString(req.CustomerName, "Test Customer"),
		Email: defaultString(req.CustomerEmail, "test@example.com"),
		Phone: defaultString(req.CustomerPhone, "+91-9999999999"),
	}

	stage := services.Stage(defaultString(req.Stage, string(services.StageCreated)))

	data := map[string]string{
		"id":               "TEST-" + time.Now().Format("20060102150405"),
		"amount":           "1,500",
		"description":      "Screen replacement",
		"workDone":         "LCD display replaced and tested",
		"trackingNo":       "TEST123456",
		"courier":          "BlueDart",
		"expectedDelivery": time.Now().Add(48 * time.Hour).Format("02/01/2006"),
		"trackingUrl":      "https://www.bluedart.com/tracking/TEST123456",
	}
	for k, v := range req.ExtraData {
		data[k] = v
	}

	if err := h.notifications.Send(customer, stage, data); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Test notification sent successfully",
		"testCustomer": customer,
		"stage":        stage,
	})
}

// TestEmailConfig dials the mail server without sending anything.
func (h *NotificationHandler) TestEmailConfig(c *gin.Context) {
	if err := h.notifications.VerifyEmailConfig(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success":   false,
			"message":   "Email configuration has issues: " + err.Error(),
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Email configuration is valid",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func stageKnown(stage services.Stage) (services.Stage, bool) {
	for _, name := range services.StageNames {
		if string(stage) == name {
			return stage, true
		}
	}
	return stage, false
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
