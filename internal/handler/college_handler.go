package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-admin-api/internal/middleware"
	"github.com/noah-isme/campus-admin-api/internal/models"
	"github.com/noah-isme/campus-admin-api/internal/service"
	"github.com/noah-isme/campus-admin-api/pkg/response"
)

// CollegeHandler exposes college admin endpoints.
type CollegeHandler struct {
	service *service.CollegeService
}

// NewCollegeHandler constructs a college handler.
func NewCollegeHandler(svc *service.CollegeService) *CollegeHandler {
	return &CollegeHandler{service: svc}
}

// List godoc
// @Summary List colleges
// @Tags Colleges
// @Produce json
// @Param search query string false "Search keyword"
// @Param status query string false "ACTIVE|INACTIVE|DRAFT"
// @Param featured query bool false "Featured only"
// @Param city query string false "City"
// @Param country query string false "Country"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort field"
// @Param order query string false "asc|desc"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/colleges [get]
func (h *CollegeHandler) List(c *gin.Context) {
	filter := models.CollegeFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		Status:    models.CatalogStatus(c.Query("status")),
		Featured:  parseBoolQuery(c, "featured"),
		City:      strings.TrimSpace(c.Query("city")),
		Country:   strings.TrimSpace(c.Query("country")),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
	filter.Page, filter.PageSize = parsePage(c)

	items, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get college detail
// @Tags Colleges
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/colleges/{id} [get]
func (h *CollegeHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create college
// @Tags Colleges
// @Accept json
// @Produce json
// @Param payload body service.CollegeRequest true "College payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/colleges [post]
func (h *CollegeHandler) Create(c *gin.Context) {
	var req service.CollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	item, err := h.service.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update college
// @Tags Colleges
// @Accept json
// @Produce json
// @Param id path string true "College ID"
// @Param payload body service.CollegeRequest true "College payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/colleges/{id} [put]
func (h *CollegeHandler) Update(c *gin.Context) {
	var req service.CollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	item, err := h.service.Update(c.Request.Context(), middleware.Actor(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Deactivate college
// @Tags Colleges
// @Param id path string true "College ID"
// @Success 204
// @Security BearerAuth
// @Router /admin/colleges/{id} [delete]
func (h *CollegeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkUpdateStatus godoc
// @Summary Update the status of many colleges
// @Tags Colleges
// @Accept json
// @Produce json
// @Param payload body service.BulkCatalogStatusRequest true "Bulk payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/colleges/bulk-status [post]
func (h *CollegeHandler) BulkUpdateStatus(c *gin.Context) {
	var req service.BulkCatalogStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	result, err := h.service.BulkUpdateStatus(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ToggleFeatured godoc
// @Summary Toggle the featured flag
// @Tags Colleges
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/colleges/{id}/featured [patch]
func (h *CollegeHandler) ToggleFeatured(c *gin.Context) {
	item, err := h.service.ToggleFeatured(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Stats godoc
// @Summary College status counts
// @Tags Colleges
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/colleges/stats [get]
func (h *CollegeHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// ListPublic godoc
// @Summary List active colleges
// @Tags Public
// @Produce json
// @Param search query string false "Search keyword"
// @Param city query string false "City"
// @Param country query string false "Country"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /colleges [get]
func (h *CollegeHandler) ListPublic(c *gin.Context) {
	filter := models.CollegeFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Featured: parseBoolQuery(c, "featured"),
		City:     strings.TrimSpace(c.Query("city")),
		Country:  strings.TrimSpace(c.Query("country")),
		SortBy:   "name",
	}
	filter.Page, filter.PageSize = parsePage(c)

	items, pagination, err := h.service.ListPublic(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// GetBySlug godoc
// @Summary Get an active college and its active courses
// @Tags Public
// @Produce json
// @Param slug path string true "College slug"
// @Success 200 {object} response.Envelope
// @Router /colleges/{slug} [get]
func (h *CollegeHandler) GetBySlug(c *gin.Context) {
	college, err := h.service.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}
