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

// SpecializationHandler exposes specialization admin endpoints.
type SpecializationHandler struct {
	service *service.SpecializationService
}

// NewSpecializationHandler constructs a specialization handler.
func NewSpecializationHandler(svc *service.SpecializationService) *SpecializationHandler {
	return &SpecializationHandler{service: svc}
}

// List godoc
// @Summary List specializations
// @Tags Specializations
// @Produce json
// @Param search query string false "Search keyword"
// @Param status query string false "ACTIVE|INACTIVE|DRAFT"
// @Param featured query bool false "Featured only"
// @Param courseId query string false "Course ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort field"
// @Param order query string false "asc|desc"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/specializations [get]
func (h *SpecializationHandler) List(c *gin.Context) {
	filter := models.SpecializationFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		Status:    models.CatalogStatus(c.Query("status")),
		Featured:  parseBoolQuery(c, "featured"),
		CourseID:  c.Query("courseId"),
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
// @Summary Get specialization detail
// @Tags Specializations
// @Produce json
// @Param id path string true "Specialization ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/specializations/{id} [get]
func (h *SpecializationHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create specialization
// @Tags Specializations
// @Accept json
// @Produce json
// @Param payload body service.SpecializationRequest true "Specialization payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/specializations [post]
func (h *SpecializationHandler) Create(c *gin.Context) {
	var req service.SpecializationRequest
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
// @Summary Update specialization
// @Tags Specializations
// @Accept json
// @Produce json
// @Param id path string true "Specialization ID"
// @Param payload body service.SpecializationRequest true "Specialization payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/specializations/{id} [put]
func (h *SpecializationHandler) Update(c *gin.Context) {
	var req service.SpecializationRequest
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
// @Summary Deactivate specialization
// @Tags Specializations
// @Param id path string true "Specialization ID"
// @Success 204
// @Security BearerAuth
// @Router /admin/specializations/{id} [delete]
func (h *SpecializationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkUpdateStatus godoc
// @Summary Update the status of many specializations
// @Tags Specializations
// @Accept json
// @Produce json
// @Param payload body service.BulkCatalogStatusRequest true "Bulk payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/specializations/bulk-status [post]
func (h *SpecializationHandler) BulkUpdateStatus(c *gin.Context) {
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
// @Tags Specializations
// @Produce json
// @Param id path string true "Specialization ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/specializations/{id}/featured [patch]
func (h *SpecializationHandler) ToggleFeatured(c *gin.Context) {
	item, err := h.service.ToggleFeatured(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Stats godoc
// @Summary Specialization status counts
// @Tags Specializations
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/specializations/stats [get]
func (h *SpecializationHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
