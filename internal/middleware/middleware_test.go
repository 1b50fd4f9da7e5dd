package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-admin-api/internal/models"
	"github.com/noah-isme/campus-admin-api/internal/service"
	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
)

type verifierStub struct {
	claims *models.JWTClaims
}

func (v verifierStub) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" || v.claims == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return v.claims, nil
}

func newProtectedRouter(claims *models.JWTClaims, roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithResponseMeta())
	r.GET("/admin", JWT(verifierStub{claims: claims}), RequireRoles(roles...), func(c *gin.Context) {
		actor := Actor(c)
		SetCacheHit(c, true)
		c.JSON(http.StatusOK, gin.H{"user": actor.UserID, "cached": ResponseMeta(c)[MetaCacheHit]})
	})
	return r
}

func serve(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTRequiresBearerToken(t *testing.T) {
	r := newProtectedRouter(&models.JWTClaims{UserID: "u1", Role: models.RoleAdmin}, models.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Bearer bad").Code)

	rec := serve(r, "Bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":"u1","cached":true}`, rec.Body.String())
}

func TestRequireRolesRejectsOtherRoles(t *testing.T) {
	r := newProtectedRouter(&models.JWTClaims{UserID: "u2", Role: models.RoleEditor}, models.RoleSuperAdmin, models.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, serve(r, "Bearer good").Code)
}

func TestActorWithoutClaimsIsPublic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/leads", nil)
	c.Request.Header.Set("User-Agent", "form")

	actor := Actor(c)
	assert.True(t, actor.IsPublic())
	assert.Equal(t, "form", actor.UserAgent)
}

func TestResponseMetaMeasuresFromRequestStart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithResponseMeta())
	r.GET("/analytics", func(c *gin.Context) {
		SetCacheHit(c, false)
		SetMeta(c, "period", "week")
		c.JSON(http.StatusOK, ResponseMeta(c))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analytics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cache_hit":false`)
	assert.Contains(t, rec.Body.String(), `"period":"week"`)
	assert.Contains(t, rec.Body.String(), `"processing_time_ms":`)
}

func TestResponseMetaWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	SetCacheHit(c, true)
	assert.Nil(t, ResponseMeta(c))
	assert.Nil(t, ResponseMeta(nil))
}

func TestMetricsRecordsRouteTemplatesAndSkipsScrapes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics, "/metrics"))
	r.GET("/leads/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/leads/1", "/leads/2", "/metrics", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.EqualValues(t, 3, metrics.Snapshot().RequestsTotal)
}

func TestMetricsToleratesNilService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
