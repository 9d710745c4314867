package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"repair-app/internal/models"
)

// fail maps the service error taxonomy onto HTTP statuses; anything
// unrecognized is an internal error.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
