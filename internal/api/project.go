package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aifolio/backend/internal/middleware"
	"github.com/aifolio/backend/internal/service"
	"github.com/aifolio/backend/internal/types"
)

const maxImageSize = 5 << 20 // 5 MiB

type ProjectHandler struct {
	projects *service.ProjectService
	images   *service.ImageService
	dev      bool
}

func NewProjectHandler(projects *service.ProjectService, images *service.ImageService, dev bool) *ProjectHandler {
	return &ProjectHandler{projects: projects, images: images, dev: dev}
}

func (h *ProjectHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	projects := router.Group("/projects")
	projects.Use(middleware.AuthMiddleware(validator))
	{
		projects.GET("", h.ListProjects)
		projects.POST("", h.CreateProject)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)
		projects.POST("/:id/image", h.UploadProjectImage)
	}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	projects, err := h.projects.List(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var in types.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), claims.UserID, &in)
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(c.Request.Context(), claims.UserID, projectID)
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	var in types.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	project, err := h.projects.Update(c.Request.Context(), claims.UserID, projectID, &in)
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), claims.UserID, projectID); err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UploadProjectImage stores the uploaded file in S3 and records its
// public URL on the project.
func (h *ProjectHandler) UploadProjectImage(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, h.dev)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	imageURL, err := h.images.UploadProjectImage(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	project, err := h.projects.Update(c.Request.Context(), claims.UserID, projectID, &types.ProjectInput{
		ImageURL: &imageURL,
	})
	if err != nil {
		respondError(c, err, h.dev)
		return
	}

	c.JSON(http.StatusOK, project)
}

// projectID parses the path parameter. An unparseable id cannot match
// any stored project, so it reports NotFound.
func (h *ProjectHandler) projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrProjectNotFound.Error()})
		return uuid.Nil, false
	}
	return id, true
}
