package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aifolio/backend/internal/middleware"
	"github.com/aifolio/backend/internal/service"
	"github.com/aifolio/backend/internal/types"
)

type ProfileHandler struct {
	profiles *service.ProfileService
	projects *service.ProjectService
	dev      bool
}

func NewProfileHandler(profiles *service.ProfileService, projects *service.ProjectService, dev bool) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, projects: projects, dev: dev}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(validator))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("", h.ProjectAction)
	}
}

// GetProfile returns the caller's profile, creating a blank one on
// first access.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetOrCreate(c.Request.Context(), claims)
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile merges the supplied fields into the caller's profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), claims, &req)
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ProjectAction dispatches addProject / updateProject / deleteProject
// against the caller's profile and returns the updated profile.
func (h *ProfileHandler) ProjectAction(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var action types.ProfileAction
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.projects.Dispatch(c.Request.Context(), claims.UserID, &action)
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusOK, profile)
}
