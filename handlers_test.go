package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Tests here exercise request validation paths that never reach the store.

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setupRoutes(r)
	return r
}

func TestPublicProfileMissingUsername(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/profile", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username is required")

	// whitespace-only usernames are rejected before any lookup
	rec = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/profile/%20", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/api/me", "/api/me/profile", "/api/me/dashboard"} {
		rec := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/me/profile", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthEndpointsRejectMalformedPayload(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/api/signup", "/api/login"} {
		rec := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(errBadRequest("x")))
	assert.Equal(t, http.StatusUnauthorized, statusFor(errInvalidCredentials()))
	assert.Equal(t, http.StatusConflict, statusFor(errUsernameTaken()))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errUnknown()))
	assert.Equal(t, http.StatusNotFound, statusFor(&apiError{Code: CodeNotFound}))
}
