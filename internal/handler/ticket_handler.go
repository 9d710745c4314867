package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repair-app/internal/models"
	"repair-app/internal/services"
)

type TicketHandler struct {
	tickets *services.TicketService
}

func NewTicketHandler(tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req struct {
		CustomerName   string   `json:"customerName" binding:"required"`
		CustomerEmail  string   `json:"customerEmail"`
		SerialNumber   string   `json:"serialNumber" binding:"required"`
		ProductDetails string   `json:"productDetails" binding:"required"`
		PurchaseDate   string   `json:"purchaseDate" binding:"required"`
		Photos         []string `json:"photos"`
		Fault          string   `json:"faultDescription" binding:"required"`
		EstimatedCost  string   `json:"estimatedCost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: customerName, serialNumber, productDetails, purchaseDate, faultDescription"})
		return
	}

	ticket := &models.Ticket{
		CustomerName:   req.CustomerName,
		SerialNumber:   req.SerialNumber,
		ProductDetails: req.ProductDetails,
		PurchaseDate:   req.PurchaseDate,
		Photos:         req.Photos,
		Fault:          req.Fault,
		EstimatedCost:  req.EstimatedCost,
	}

	// The Created notification goes to the request's email when present,
	// falling back to the authenticated caller's contact details.
	email := req.CustomerEmail
	if email == "" {
		email = c.GetString("email")
	}

	if err := h.tickets.Create(c.Request.Context(), ticket, email, c.GetString("phone")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Service request created successfully and notification sent",
		"requestId": ticket.SerialNumber,
	})
}

func (h *TicketHandler) List(c *gin.Context) {
	status := models.TicketStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown status filter"})
		return
	}

	tickets, err := h.tickets.List(c.Request.Context(), status)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tickets": tickets,
		"total":   len(tickets),
	})
}

func (h *TicketHandler) Update(c *gin.Context) {
	ticketNumber := c.Param("ticketNumber")

	var update models.TicketUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	ticket, err := h.tickets.Update(c.Request.Context(), ticketNumber, update)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Service request updated successfully",
		"ticketNumber": ticketNumber,
		"ticket":       ticket,
	})
}

func (h *TicketHandler) UploadPhotos(c *gin.Context) {
	ticketNumber := c.Param("ticketNumber")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No photos uploaded"})
		return
	}

	fileHeaders := form.File["photos"]
	files := make([]services.PhotoFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unreadable upload: " + fh.Filename})
			return
		}
		defer f.Close()

		files = append(files, services.PhotoFile{
			Reader:      f,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Filename:    fh.Filename,
		})
	}

	urls, total, err := h.tickets.AttachPhotos(c.Request.Context(), ticketNumber, files)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Photos uploaded and attached successfully",
		"photoUrls":   urls,
		"totalPhotos": total,
	})
}
