package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-admin-api/internal/handler"
	"github.com/noah-isme/campus-admin-api/internal/models"
	"github.com/noah-isme/campus-admin-api/internal/service"
	"github.com/noah-isme/campus-admin-api/pkg/config"
)

const testSecret = "router-test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	metrics := service.NewMetricsService()
	h := handlers{
		leads:           handler.NewLeadHandler(service.NewLeadService(nil, nil, nil, metrics, time.UTC, nil, nil), time.UTC),
		colleges:        handler.NewCollegeHandler(service.NewCollegeService(nil, nil, nil, nil, nil, nil)),
		courses:         handler.NewCourseHandler(service.NewCourseService(nil, nil, nil, nil, nil, nil)),
		specializations: handler.NewSpecializationHandler(service.NewSpecializationService(nil, nil, nil, nil, nil, nil)),
		metrics:         handler.NewMetricsHandler(metrics, nil),
	}
	registerRoutes(r, "/api", service.NewTokenVerifier(config.JWTConfig{Secret: testSecret}), h)
	return r
}

func signToken(t *testing.T, role models.UserRole) string {
	t.Helper()
	claims := models.JWTClaims{
		UserID: "user-1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ready", "", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/metrics", "", "").Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/api/admin/leads", "/api/admin/leads/analytics", "/api/admin/colleges", "/api/admin/courses/stats"} {
		rec := do(r, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestManagerOnlyRoutes(t *testing.T) {
	r := newTestRouter(t)
	editor := signToken(t, models.RoleEditor)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/api/admin/colleges/c1", editor, "").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/api/admin/courses/bulk-status", editor, `{}`).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/admin/system/metrics", editor, "").Code)

	admin := signToken(t, models.RoleAdmin)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/admin/system/metrics", admin, "").Code)
}

func TestAnalyticsRejectsUnknownPeriodBeforeQuerying(t *testing.T) {
	r := newTestRouter(t)
	editor := signToken(t, models.RoleEditor)

	rec := do(r, http.MethodGet, "/api/admin/leads/analytics?period=decade", editor, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_PERIOD")

	rec = do(r, http.MethodGet, "/api/admin/leads/analytics?period=custom", editor, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_RANGE")
}

func TestPublicLeadSubmissionValidates(t *testing.T) {
	r := newTestRouter(t)

	rec := do(r, http.MethodPost, "/api/leads", "", `{"name":"Ann","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportRoutesAbsentWhenDisabled(t *testing.T) {
	r := newTestRouter(t)
	admin := signToken(t, models.RoleAdmin)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/api/admin/leads/exports", admin, `{"format":"csv"}`).Code)
}
