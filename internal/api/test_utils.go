package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aifolio/backend/internal/models"
	"github.com/aifolio/backend/internal/service"
	"github.com/aifolio/backend/internal/testhelpers"
	"github.com/aifolio/backend/internal/types"
)

// setupTestRouter builds the full API surface over an in-memory
// database, without redis, SMTP or S3.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret", nil)
	profileSvc := service.NewProfileService(db)
	projectSvc := service.NewProjectService(db)
	imageSvc := service.NewImageService(nil)

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	NewAuthHandler(authSvc, false).RegisterRoutes(v1, nil)
	NewProfileHandler(profileSvc, projectSvc, false).RegisterRoutes(v1, authSvc)
	NewProjectHandler(projectSvc, imageSvc, false).RegisterRoutes(v1, authSvc)
	NewSkillsHandler(profileSvc, false).RegisterRoutes(v1, authSvc)

	return router, db, authSvc
}

// createTestUserAndToken registers a user and returns it with a valid
// session token.
func createTestUserAndToken(t *testing.T, authSvc *service.AuthService) (*models.User, string) {
	t.Helper()

	user, err := authSvc.Register(context.Background(), &types.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	token, err := authSvc.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

// doJSON performs a JSON request against the router.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
