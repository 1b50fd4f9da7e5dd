package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-admin-api/internal/middleware"
	"github.com/noah-isme/campus-admin-api/internal/models"
	"github.com/noah-isme/campus-admin-api/internal/service"
)

type collegeStore struct {
	colleges map[string]*models.College
	children map[string]int
}

func newCollegeStore() *collegeStore {
	return &collegeStore{colleges: map[string]*models.College{}, children: map[string]int{}}
}

func (s *collegeStore) List(ctx context.Context, filter models.CollegeFilter) ([]models.CollegeDetail, int, error) {
	var out []models.CollegeDetail
	for _, college := range s.colleges {
		if filter.Status != "" && college.Status != filter.Status {
			continue
		}
		out = append(out, models.CollegeDetail{College: *college})
	}
	return out, len(out), nil
}

func (s *collegeStore) FindByID(ctx context.Context, id string) (*models.College, error) {
	college, ok := s.colleges[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *college
	return &out, nil
}

func (s *collegeStore) FindDetailByID(ctx context.Context, id string) (*models.CollegeDetail, error) {
	college, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CollegeDetail{College: *college, CourseCount: s.children[id]}, nil
}

func (s *collegeStore) FindActiveBySlug(ctx context.Context, slug string) (*models.CollegeDetail, error) {
	for _, college := range s.colleges {
		if college.Slug == slug && college.Status == models.CatalogStatusActive {
			return &models.CollegeDetail{College: *college}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *collegeStore) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	for id, college := range s.colleges {
		if college.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *collegeStore) Create(ctx context.Context, college *models.College) error {
	college.ID = "college-" + college.Slug
	out := *college
	s.colleges[college.ID] = &out
	return nil
}

func (s *collegeStore) Update(ctx context.Context, college *models.College) error {
	out := *college
	s.colleges[college.ID] = &out
	return nil
}

func (s *collegeStore) CountCourses(ctx context.Context) (int, error) { return 0, nil }

func (s *collegeStore) ListActiveByCollege(ctx context.Context, collegeID string) ([]models.Course, error) {
	return nil, nil
}

func (s *collegeStore) SetStatus(ctx context.Context, entity models.CatalogEntity, id string, status models.CatalogStatus) error {
	college, ok := s.colleges[id]
	if !ok {
		return sql.ErrNoRows
	}
	college.Status = status
	return nil
}

func (s *collegeStore) BulkSetStatus(ctx context.Context, entity models.CatalogEntity, ids []string, status models.CatalogStatus) (int, error) {
	updated := 0
	for _, id := range ids {
		if college, ok := s.colleges[id]; ok {
			college.Status = status
			updated++
		}
	}
	return updated, nil
}

func (s *collegeStore) ToggleFeatured(ctx context.Context, entity models.CatalogEntity, id string) (bool, error) {
	college, ok := s.colleges[id]
	if !ok {
		return false, sql.ErrNoRows
	}
	college.Featured = !college.Featured
	return college.Featured, nil
}

func (s *collegeStore) CountChildren(ctx context.Context, entity models.CatalogEntity, id string) (int, error) {
	return s.children[id], nil
}

func (s *collegeStore) Stats(ctx context.Context, entity models.CatalogEntity) (models.CatalogStats, error) {
	return models.CatalogStats{Total: len(s.colleges)}, nil
}

func newCollegeHandlerForTest() (*CollegeHandler, *collegeStore) {
	store := newCollegeStore()
	svc := service.NewCollegeService(store, store, store, nil, nil, nil)
	return NewCollegeHandler(svc), store
}

func withAdmin(c *gin.Context) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
}

func TestCollegeHandlerCreateDerivesSlug(t *testing.T) {
	h, store := newCollegeHandlerForTest()

	payload, _ := json.Marshal(service.CollegeRequest{Name: "North Valley College"})
	c, w := newGinContext(http.MethodPost, "/admin/colleges", payload)
	withAdmin(c)
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "north-valley-college", data["slug"])
	assert.Equal(t, string(models.CatalogStatusDraft), data["status"])
	assert.Len(t, store.colleges, 1)

	c, w = newGinContext(http.MethodPost, "/admin/colleges", payload)
	withAdmin(c)
	h.Create(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCollegeHandlerCreateValidates(t *testing.T) {
	h, _ := newCollegeHandlerForTest()

	payload, _ := json.Marshal(map[string]interface{}{"name": "", "website": "not a url"})
	c, w := newGinContext(http.MethodPost, "/admin/colleges", payload)
	withAdmin(c)
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCollegeHandlerDeleteBlockedByCourses(t *testing.T) {
	h, store := newCollegeHandlerForTest()
	store.colleges["c1"] = &models.College{ID: "c1", Slug: "north", Status: models.CatalogStatusActive}
	store.children["c1"] = 3

	c, w := newGinContext(http.MethodDelete, "/admin/colleges/c1", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}
	withAdmin(c)
	h.Delete(c)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Equal(t, models.CatalogStatusActive, store.colleges["c1"].Status)

	store.children["c1"] = 0
	c, w = newGinContext(http.MethodDelete, "/admin/colleges/c1", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}
	withAdmin(c)
	h.Delete(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, models.CatalogStatusInactive, store.colleges["c1"].Status)
}

func TestCollegeHandlerToggleFeatured(t *testing.T) {
	h, store := newCollegeHandlerForTest()
	store.colleges["c1"] = &models.College{ID: "c1", Slug: "north", Status: models.CatalogStatusActive}

	c, w := newGinContext(http.MethodPatch, "/admin/colleges/c1/featured", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}
	withAdmin(c)
	h.ToggleFeatured(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["featured"])
}

func TestCollegeHandlerPublicSlugHidesDrafts(t *testing.T) {
	h, store := newCollegeHandlerForTest()
	store.colleges["c1"] = &models.College{ID: "c1", Slug: "north", Status: models.CatalogStatusDraft}
	store.colleges["c2"] = &models.College{ID: "c2", Slug: "south", Status: models.CatalogStatusActive}

	c, w := newGinContext(http.MethodGet, "/colleges/north", nil)
	c.Params = gin.Params{{Key: "slug", Value: "north"}}
	h.GetBySlug(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = newGinContext(http.MethodGet, "/colleges/SOUTH", nil)
	c.Params = gin.Params{{Key: "slug", Value: "SOUTH"}}
	h.GetBySlug(c)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{}, data["courses"])

	c, w = newGinContext(http.MethodGet, "/colleges", nil)
	h.ListPublic(c)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Len(t, body["data"], 1)
	assert.EqualValues(t, 1, body["pagination"].(map[string]interface{})["totalCount"])
}

func TestCollegeHandlerBulkStatus(t *testing.T) {
	h, store := newCollegeHandlerForTest()
	store.colleges["c1"] = &models.College{ID: "c1", Slug: "north", Status: models.CatalogStatusDraft}

	payload, _ := json.Marshal(service.BulkCatalogStatusRequest{IDs: []string{"c1", "missing"}, Status: models.CatalogStatusActive})
	c, w := newGinContext(http.MethodPost, "/admin/colleges/bulk-status", payload)
	withAdmin(c)
	h.BulkUpdateStatus(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["updated"])
}

func TestCourseHandlerListRejectsUnknownLevel(t *testing.T) {
	h := NewCourseHandler(service.NewCourseService(nil, nil, nil, nil, nil, nil))

	c, w := newGinContext(http.MethodGet, "/admin/courses?level=MASTERS", nil)
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpecializationHandlerRejectsMalformedJSON(t *testing.T) {
	h := NewSpecializationHandler(service.NewSpecializationService(nil, nil, nil, nil, nil, nil))

	c, w := newGinContext(http.MethodPost, "/admin/specializations", []byte(`{"name":`))
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
