package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aifolio/backend/internal/middleware"
	"github.com/aifolio/backend/internal/service"
	"github.com/aifolio/backend/internal/types"
)

type AuthHandler struct {
	auth *service.AuthService
	dev  bool
}

func NewAuthHandler(auth *service.AuthService, dev bool) *AuthHandler {
	return &AuthHandler{auth: auth, dev: dev}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	auth := router.Group("/auth")
	auth.Use(limiter.Middleware())
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/verify", h.Verify)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"userId":  user.ID.String(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing verification token"})
		return
	}

	if err := h.auth.VerifyEmail(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
