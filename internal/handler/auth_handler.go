package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"repair-app/internal/services"
	"repair-app/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	jwtUtil     *utils.JWTUtil
}

func NewAuthHandler(authService *services.AuthService, jwtUtil *utils.JWTUtil) *AuthHandler {
	return &AuthHandler{authService: authService, jwtUtil: jwtUtil}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: name, email, password, role"})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Email), req.Password, req.Role)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: email, password"})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":          user.ID.Hex(),
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"lastLoginAt": user.LastLoginAt,
		},
	})
}

// Logout blacklists the presented token until its expiry. Clients should also
// drop the token locally.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if tokenString == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully. Please remove token from client."})
		return
	}

	claims, err := h.jwtUtil.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully. Please remove token from client."})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.JTI, claims.Exp); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetProfile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":          user.ID.Hex(),
			"name":        user.Name,
			"email":       user.Email,
			"phone":       user.Phone,
			"role":        user.Role,
			"lastLoginAt": user.LastLoginAt,
			"createdAt":   user.CreatedAt,
		},
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), c.GetString("user_id"), req.Name, req.Phone)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
	})
}
