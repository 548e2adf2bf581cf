package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/auth/register", "", map[string]string{
		"name":     "Ada",
		"email":    "Ada@X.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["userId"])
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	body := map[string]string{"name": "Ada", "email": "ada@x.com", "password": "secret1"}
	w := doJSON(t, router, "POST", "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.Contains(t, resp["error"], "already exists")
}

func TestRegisterEndpointValidation(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/auth/register", "", map[string]string{
		"name": "Ada", "email": "ada@x.com", "password": "tiny",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/register", "", map[string]string{
		"name": "Ada", "email": "nope", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/register", "", map[string]string{
		"email": "ada@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router, _, authSvc := setupTestRouter(t)
	createTestUserAndToken(t, authSvc)

	w := doJSON(t, router, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "test@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp["token"])

	claims, err := authSvc.ValidateToken(resp["token"])
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	router, _, authSvc := setupTestRouter(t)
	createTestUserAndToken(t, authSvc)

	w := doJSON(t, router, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "test@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "test@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEndpoint(t *testing.T) {
	router, _, authSvc := setupTestRouter(t)
	user, _ := createTestUserAndToken(t, authSvc)

	token, err := authSvc.GenerateVerificationToken(user.ID)
	require.NoError(t, err)

	w := doJSON(t, router, "GET", "/api/v1/auth/verify?token="+token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	reloaded, err := authSvc.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.EmailVerifiedAt)

	w = doJSON(t, router, "GET", "/api/v1/auth/verify", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/auth/verify?token=garbage", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
