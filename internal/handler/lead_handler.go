package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-admin-api/internal/dto"
	"github.com/noah-isme/campus-admin-api/internal/middleware"
	"github.com/noah-isme/campus-admin-api/internal/models"
	"github.com/noah-isme/campus-admin-api/internal/service"
	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
	"github.com/noah-isme/campus-admin-api/pkg/response"
)

type leadService interface {
	List(ctx context.Context, req service.LeadListRequest) (*dto.LeadListResponse, error)
	Get(ctx context.Context, id string) (*models.Lead, error)
	Create(ctx context.Context, actor models.Actor, req service.CreateLeadRequest) (*models.Lead, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id string, req service.UpdateLeadStatusRequest) (*dto.LeadStatusUpdateResponse, error)
	BulkUpdateStatus(ctx context.Context, actor models.Actor, req service.BulkLeadStatusRequest) (*dto.BulkUpdateResponse, error)
	UpdateNotes(ctx context.Context, actor models.Actor, id string, req service.UpdateLeadNotesRequest) (*models.Lead, error)
	Sources(ctx context.Context) ([]string, error)
	Analytics(ctx context.Context, period service.Period, from, to *time.Time) (*dto.LeadAnalyticsResponse, bool, error)
	SummaryStats(ctx context.Context) (*dto.LeadSummaryResponse, bool, error)
	ExportData(ctx context.Context, req service.LeadExportRequest) (*dto.LeadExportDataResponse, error)
}

// LeadHandler exposes lead management and analytics endpoints.
type LeadHandler struct {
	service leadService
	loc     *time.Location
}

// NewLeadHandler constructs a lead handler. Date-only query values are read in loc.
func NewLeadHandler(svc leadService, loc *time.Location) *LeadHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &LeadHandler{service: svc, loc: loc}
}

// List godoc
// @Summary List leads
// @Tags Leads
// @Produce json
// @Param query query string false "Search name, email or phone"
// @Param status query string false "Lead status"
// @Param source query string false "Lead source"
// @Param dateFrom query string false "Created from (YYYY-MM-DD)"
// @Param dateTo query string false "Created to (YYYY-MM-DD)"
// @Param limit query int false "Page size (1-100)"
// @Param offset query int false "Offset"
// @Param sortBy query string false "createdAt|updatedAt|name|email|status"
// @Param sortOrder query string false "asc|desc"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	req := service.LeadListRequest{
		Query:     c.Query("query"),
		Status:    models.LeadStatus(c.Query("status")),
		Source:    c.Query("source"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid limit parameter"))
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid offset parameter"))
		return
	}
	req.Limit, req.Offset = limit, offset
	if req.DateFrom, err = parseDateQuery(c, "dateFrom", h.loc); err != nil {
		response.Error(c, err)
		return
	}
	if req.DateTo, err = parseDateQuery(c, "dateTo", h.loc); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Get lead detail
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/leads/{id} [get]
func (h *LeadHandler) Get(c *gin.Context) {
	lead, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lead, nil)
}

// Create godoc
// @Summary Submit an inquiry
// @Tags Public
// @Accept json
// @Produce json
// @Param payload body service.CreateLeadRequest true "Inquiry payload"
// @Success 201 {object} response.Envelope
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var req service.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	lead, err := h.service.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": lead.ID, "status": lead.Status})
}

// UpdateStatus godoc
// @Summary Update lead status
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param payload body service.UpdateLeadStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	result, err := h.service.UpdateStatus(c.Request.Context(), middleware.Actor(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// BulkUpdateStatus godoc
// @Summary Update the status of many leads
// @Tags Leads
// @Accept json
// @Produce json
// @Param payload body service.BulkLeadStatusRequest true "Bulk payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/leads/bulk-status [post]
func (h *LeadHandler) BulkUpdateStatus(c *gin.Context) {
	var req service.BulkLeadStatusRequest
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

// UpdateNotes godoc
// @Summary Replace lead notes
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param payload body service.UpdateLeadNotesRequest true "Notes payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/leads/{id}/notes [patch]
func (h *LeadHandler) UpdateNotes(c *gin.Context) {
	var req service.UpdateLeadNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	lead, err := h.service.UpdateNotes(c.Request.Context(), middleware.Actor(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lead, nil)
}

// Sources godoc
// @Summary List distinct lead sources
// @Tags Leads
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/leads/sources [get]
func (h *LeadHandler) Sources(c *gin.Context) {
	sources, err := h.service.Sources(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sources, nil)
}

// Analytics godoc
// @Summary Lead analytics for a period
// @Tags Leads
// @Produce json
// @Param period query string false "today|yesterday|week|month|custom" default(week)
// @Param dateFrom query string false "Custom range start (YYYY-MM-DD)"
// @Param dateTo query string false "Custom range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/leads/analytics [get]
func (h *LeadHandler) Analytics(c *gin.Context) {
	from, err := parseDateQuery(c, "dateFrom", h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseDateQuery(c, "dateTo", h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	result, cacheHit, err := h.service.Analytics(c.Request.Context(), service.Period(c.DefaultQuery("period", string(service.PeriodWeek))), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithMeta(c, result, cacheHit, start)
}

// Summary godoc
// @Summary Headline lead totals and growth
// @Tags Leads
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/leads/summary [get]
func (h *LeadHandler) Summary(c *gin.Context) {
	start := time.Now()
	result, cacheHit, err := h.service.SummaryStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithMeta(c, result, cacheHit, start)
}

// ExportData godoc
// @Summary Export rows for matching leads
// @Tags Leads
// @Produce json
// @Param format query string true "csv|json|pdf"
// @Param status query string false "Lead status"
// @Param source query string false "Lead source"
// @Param dateFrom query string false "Created from (YYYY-MM-DD)"
// @Param dateTo query string false "Created to (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/leads/export [get]
func (h *LeadHandler) ExportData(c *gin.Context) {
	req, err := h.exportRequestFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.ExportData(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

func (h *LeadHandler) exportRequestFromQuery(c *gin.Context) (service.LeadExportRequest, error) {
	req := service.LeadExportRequest{
		Format: models.ExportFormat(c.DefaultQuery("format", string(models.ExportFormatCSV))),
		Status: models.LeadStatus(c.Query("status")),
		Source: c.Query("source"),
	}
	var err error
	if req.DateFrom, err = parseDateQuery(c, "dateFrom", h.loc); err != nil {
		return req, err
	}
	if req.DateTo, err = parseDateQuery(c, "dateTo", h.loc); err != nil {
		return req, err
	}
	return req, nil
}

func (h *LeadHandler) respondWithMeta(c *gin.Context, data interface{}, cacheHit bool, start time.Time) {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ResponseMeta(c)
	if meta == nil {
		meta = map[string]interface{}{
			middleware.MetaCacheHit:       cacheHit,
			middleware.MetaProcessingTime: time.Since(start).Milliseconds(),
		}
	}
	response.JSON(c, http.StatusOK, data, nil, meta)
}
