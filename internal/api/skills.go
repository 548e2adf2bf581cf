package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aifolio/backend/internal/middleware"
	"github.com/aifolio/backend/internal/service"
)

type SkillsHandler struct {
	profiles *service.ProfileService
	dev      bool
}

func NewSkillsHandler(profiles *service.ProfileService, dev bool) *SkillsHandler {
	return &SkillsHandler{profiles: profiles, dev: dev}
}

func (h *SkillsHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	skills := router.Group("/skills")
	skills.Use(middleware.AuthMiddleware(validator))
	{
		skills.GET("", h.TopSkills)
	}
}

// TopSkills returns the frequency-ranked skill list derived from the
// caller's projects.
func (h *SkillsHandler) TopSkills(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusOK, service.TopSkills(profile))
}
