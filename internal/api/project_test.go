package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aifolio/backend/internal/models"
)

func TestProjectCRUD(t *testing.T) {
	router, _, authSvc := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authSvc)

	// Create with a comma-separated skills string.
	w := doJSON(t, router, "POST", "/api/v1/projects", token, map[string]interface{}{
		"title":       "Classifier",
		"description": "image classification",
		"skills":      "Python, TensorFlow, ",
		"githubUrl":   "https://github.com/x/classifier",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Project
	decodeBody(t, w, &created)
	assert.Equal(t, []string{"Python", "TensorFlow"}, created.Skills)
	require.NotEqual(t, uuid.Nil, created.ID)

	// Read it back by id.
	w = doJSON(t, router, "GET", "/api/v1/projects/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.Project
	decodeBody(t, w, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Classifier", fetched.Title)

	// Partial update leaves unsupplied fields alone.
	w = doJSON(t, router, "PUT", "/api/v1/projects/"+created.ID.String(), token, map[string]interface{}{
		"description": "x",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Project
	decodeBody(t, w, &updated)
	assert.Equal(t, "x", updated.Description)
	assert.Equal(t, "Classifier", updated.Title)
	assert.Equal(t, []string{"Python", "TensorFlow"}, updated.Skills)
	assert.Equal(t, "https://github.com/x/classifier", updated.GithubURL)

	// List contains exactly the one project.
	w = doJSON(t, router, "GET", "/api/v1/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Project
	decodeBody(t, w, &list)
	require.Len(t, list, 1)

	// Delete, then the id is gone.
	w = doJSON(t, router, "DELETE", "/api/v1/projects/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/projects/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProjectMissingTitle(t *testing.T) {
	router, _, authSvc := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authSvc)

	w := doJSON(t, router, "POST", "/api/v1/projects", token, map[string]interface{}{
		"description": "no title here",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.Equal(t, "Title is required", resp["error"])
}

func TestDeleteMissingProjectIsNotFound(t *testing.T) {
	router, _, authSvc := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authSvc)

	w := doJSON(t, router, "DELETE", "/api/v1/projects/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// An unparseable id cannot match any project either.
	w = doJSON(t, router, "DELETE", "/api/v1/projects/whatever", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectsRequireAuth(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/projects", "", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProjectsWithoutProfile(t *testing.T) {
	router, db, authSvc := setupTestRouter(t)
	user, token := createTestUserAndToken(t, authSvc)

	require.NoError(t, db.Unscoped().Where("created_by = ?", user.ID).Delete(&models.Profile{}).Error)

	w := doJSON(t, router, "GET", "/api/v1/projects", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
