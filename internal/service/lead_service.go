package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-admin-api/internal/dto"
	"github.com/noah-isme/campus-admin-api/internal/models"
	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
)

const (
	leadResource     = "leads"
	leadCachePattern = "leads:*"
	exportBatchSize  = 1000
)

var allowedLeadSorts = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"name":      true,
	"email":     true,
	"status":    true,
}

type leadRepository interface {
	List(ctx context.Context, params models.LeadListParams) ([]models.Lead, int, error)
	ListForExport(ctx context.Context, filter models.LeadFilter, limit, offset int) ([]models.Lead, error)
	FindByID(ctx context.Context, id string) (*models.Lead, error)
	Create(ctx context.Context, lead *models.Lead, collegeIDs, courseIDs []string) error
	UpdateStatus(ctx context.Context, id string, status models.LeadStatus, notes *string) error
	BulkUpdateStatus(ctx context.Context, ids []string, status models.LeadStatus) (int, error)
	UpdateNotes(ctx context.Context, id, notes string) error
	CountByStatus(ctx context.Context, filter models.LeadFilter) ([]models.StatusCount, error)
	CountBySource(ctx context.Context, filter models.LeadFilter) ([]models.SourceCount, error)
	CountByHour(ctx context.Context, filter models.LeadFilter, timezone string) ([]models.HourCount, error)
	CountByDay(ctx context.Context, filter models.LeadFilter, timezone string) ([]models.DayCount, error)
	TopColleges(ctx context.Context, filter models.LeadFilter, limit int) ([]models.EntityInterest, error)
	TopCourses(ctx context.Context, filter models.LeadFilter, limit int) ([]models.EntityInterest, error)
	DistinctSources(ctx context.Context) ([]string, error)
	CountWindows(ctx context.Context, windows models.SummaryWindows) (models.LeadCounts, error)
}

// LeadListRequest captures GET /admin/leads query parameters.
type LeadListRequest struct {
	Query     string            `validate:"max=200"`
	Status    models.LeadStatus `validate:"omitempty,oneof=NEW CONTACTED QUALIFIED CONVERTED CLOSED"`
	Source    string            `validate:"max=64"`
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int    `validate:"min=1,max=100"`
	Offset    int    `validate:"min=0"`
	SortBy    string `validate:"omitempty,oneof=createdAt updatedAt name email status"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// CreateLeadRequest is submitted by the public inquiry forms.
type CreateLeadRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Email       string   `json:"email" validate:"required,email,max=200"`
	Phone       *string  `json:"phone" validate:"omitempty,max=32"`
	Message     *string  `json:"message" validate:"omitempty,max=5000"`
	Age         *int     `json:"age" validate:"omitempty,min=10,max=120"`
	Gender      *string  `json:"gender" validate:"omitempty,max=32"`
	Nationality *string  `json:"nationality" validate:"omitempty,max=64"`
	Source      *string  `json:"source" validate:"omitempty,max=64"`
	CollegeIDs  []string `json:"collegeIds" validate:"max=20,dive,required"`
	CourseIDs   []string `json:"courseIds" validate:"max=20,dive,required"`
}

// UpdateLeadStatusRequest changes a lead's funnel status and optionally its notes.
type UpdateLeadStatusRequest struct {
	Status models.LeadStatus `json:"status" validate:"required,oneof=NEW CONTACTED QUALIFIED CONVERTED CLOSED"`
	Notes  *string           `json:"notes" validate:"omitempty,max=5000"`
}

// BulkLeadStatusRequest changes the status of many leads at once.
type BulkLeadStatusRequest struct {
	IDs    []string          `json:"ids" validate:"required,min=1,max=500,dive,required"`
	Status models.LeadStatus `json:"status" validate:"required,oneof=NEW CONTACTED QUALIFIED CONVERTED CLOSED"`
}

// UpdateLeadNotesRequest replaces a lead's notes.
type UpdateLeadNotesRequest struct {
	Notes string `json:"notes" validate:"max=5000"`
}

// LeadExportRequest filters the rows returned for export.
type LeadExportRequest struct {
	Format   models.ExportFormat `json:"format" validate:"required,oneof=csv json pdf"`
	Status   models.LeadStatus   `json:"status" validate:"omitempty,oneof=NEW CONTACTED QUALIFIED CONVERTED CLOSED"`
	Source   string              `json:"source" validate:"max=64"`
	DateFrom *time.Time          `json:"dateFrom"`
	DateTo   *time.Time          `json:"dateTo"`
}

// LeadService implements lead management and analytics.
type LeadService struct {
	repo      leadRepository
	audit     auditTrail
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewLeadService constructs LeadService. A nil location means UTC.
func NewLeadService(repo leadRepository, audit auditRepository, cache *CacheService, metrics *MetricsService, loc *time.Location, validate *validator.Validate, logger *zap.Logger) *LeadService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &LeadService{
		repo:      repo,
		audit:     auditTrail{repo: audit, logger: logger},
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
	}
}

// List returns one page of leads matching the filters.
func (s *LeadService) List(ctx context.Context, req LeadListRequest) (*dto.LeadListResponse, error) {
	if req.Limit == 0 {
		req.Limit = models.DefaultPageSize
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid lead query")
	}
	from, to := s.widenRange(req.DateFrom, req.DateTo)
	params := models.LeadListParams{
		LeadFilter: models.LeadFilter{
			Query:    strings.TrimSpace(req.Query),
			Status:   req.Status,
			Source:   strings.TrimSpace(req.Source),
			DateFrom: from,
			DateTo:   to,
		},
		Limit:     req.Limit,
		Offset:    req.Offset,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if !allowedLeadSorts[params.SortBy] {
		params.SortBy = "createdAt"
	}
	if params.SortOrder == "" {
		params.SortOrder = "desc"
	}

	start := time.Now()
	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, internalError(err, "failed to list leads")
	}
	s.metrics.ObserveDBQuery("leads_list", time.Since(start))
	if leads == nil {
		leads = []models.Lead{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return &dto.LeadListResponse{
		Leads:   leads,
		Total:   total,
		HasMore: req.Offset+len(leads) < total,
		Pagination: dto.OffsetPagination{
			Limit:      req.Limit,
			Offset:     req.Offset,
			Page:       req.Offset/req.Limit + 1,
			TotalPages: totalPages,
		},
	}, nil
}

// Get returns a lead with its interested colleges and courses.
func (s *LeadService) Get(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lead not found")
		}
		return nil, internalError(err, "failed to load lead")
	}
	return lead, nil
}

// Create stores an inquiry from the public forms with status NEW.
func (s *LeadService) Create(ctx context.Context, actor models.Actor, req CreateLeadRequest) (*models.Lead, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid lead payload")
	}
	lead := &models.Lead{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       trimmedOrNil(req.Phone),
		Message:     trimmedOrNil(req.Message),
		Age:         req.Age,
		Gender:      trimmedOrNil(req.Gender),
		Nationality: trimmedOrNil(req.Nationality),
		Source:      trimmedOrNil(req.Source),
		Status:      models.LeadStatusNew,
	}
	if err := s.repo.Create(ctx, lead, uniqueStrings(req.CollegeIDs), uniqueStrings(req.CourseIDs)); err != nil {
		return nil, internalError(err, "failed to create lead")
	}

	s.metrics.RecordLeadCreated(str(lead.Source))
	s.cache.Invalidate(ctx, leadCachePattern)
	s.audit.record(ctx, actor, models.AuditActionCreate, leadResource, lead.ID, map[string]interface{}{"source": lead.Source})
	return s.Get(ctx, lead.ID)
}

// UpdateStatus moves a lead to any status. Transitions are not restricted.
func (s *LeadService) UpdateStatus(ctx context.Context, actor models.Actor, id string, req UpdateLeadStatusRequest) (*dto.LeadStatusUpdateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid lead status")
	}
	if err := s.repo.UpdateStatus(ctx, id, req.Status, req.Notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lead not found")
		}
		return nil, internalError(err, "failed to update lead status")
	}

	s.cache.Invalidate(ctx, leadCachePattern)
	s.audit.record(ctx, actor, models.AuditActionStatusChange, leadResource, id, req)

	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.LeadStatusUpdateResponse{Success: true, Lead: lead}, nil
}

// BulkUpdateStatus sets one status on many leads. Unknown ids are skipped.
func (s *LeadService) BulkUpdateStatus(ctx context.Context, actor models.Actor, req BulkLeadStatusRequest) (*dto.BulkUpdateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bulk status payload")
	}
	ids := uniqueStrings(req.IDs)
	updated, err := s.repo.BulkUpdateStatus(ctx, ids, req.Status)
	if err != nil {
		return nil, internalError(err, "failed to update lead statuses")
	}

	s.cache.Invalidate(ctx, leadCachePattern)
	s.audit.record(ctx, actor, models.AuditActionBulkStatus, leadResource, "", map[string]interface{}{"ids": ids, "status": req.Status, "updated": updated})
	return &dto.BulkUpdateResponse{Updated: updated}, nil
}

// UpdateNotes replaces the notes of a lead.
func (s *LeadService) UpdateNotes(ctx context.Context, actor models.Actor, id string, req UpdateLeadNotesRequest) (*models.Lead, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid lead notes")
	}
	if err := s.repo.UpdateNotes(ctx, id, req.Notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lead not found")
		}
		return nil, internalError(err, "failed to update lead notes")
	}
	s.audit.record(ctx, actor, models.AuditActionNotes, leadResource, id, nil)
	return s.Get(ctx, id)
}

// Sources lists distinct non-blank lead sources in ascending order.
func (s *LeadService) Sources(ctx context.Context) ([]string, error) {
	sources, err := s.repo.DistinctSources(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list lead sources")
	}
	out := make([]string, 0, len(sources))
	for _, source := range sources {
		if strings.TrimSpace(source) != "" {
			out = append(out, source)
		}
	}
	return out, nil
}

// Analytics composes stats, charts and insights for the resolved period. The
// boolean reports whether the payload came from cache.
func (s *LeadService) Analytics(ctx context.Context, period Period, from, to *time.Time) (*dto.LeadAnalyticsResponse, bool, error) {
	dateRange, err := ResolvePeriod(period, from, to, s.now(), s.loc)
	if err != nil {
		return nil, false, err
	}

	key := cacheKey("leads", "analytics", string(period), formatTime(&dateRange.Start), formatTime(&dateRange.End))
	var cached dto.LeadAnalyticsResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	filter := models.LeadFilter{DateFrom: &dateRange.Start, DateTo: &dateRange.End}
	start := time.Now()

	statusCounts, err := s.repo.CountByStatus(ctx, filter)
	if err != nil {
		return nil, false, internalError(err, "failed to count leads by status")
	}
	sourceCounts, err := s.repo.CountBySource(ctx, filter)
	if err != nil {
		return nil, false, internalError(err, "failed to count leads by source")
	}

	hourly := []models.HourCount{}
	daily := []models.DayCount{}
	if period.SingleDay() {
		counts, err := s.repo.CountByHour(ctx, filter, s.loc.String())
		if err != nil {
			return nil, false, internalError(err, "failed to bucket leads by hour")
		}
		hourly = nonEmptyHours(counts)
	} else {
		counts, err := s.repo.CountByDay(ctx, filter, s.loc.String())
		if err != nil {
			return nil, false, internalError(err, "failed to bucket leads by day")
		}
		daily = nonEmptyDays(counts)
	}

	colleges, err := s.repo.TopColleges(ctx, filter, topEntities)
	if err != nil {
		return nil, false, internalError(err, "failed to rank colleges")
	}
	courses, err := s.repo.TopCourses(ctx, filter, topEntities)
	if err != nil {
		return nil, false, internalError(err, "failed to rank courses")
	}
	s.metrics.ObserveDBQuery("leads_analytics", time.Since(start))

	resp := &dto.LeadAnalyticsResponse{
		Period:    string(period),
		DateRange: dateRange,
		Stats:     buildLeadStats(statusCounts),
		Charts: dto.LeadCharts{
			SourceBreakdown:    mergeSourceBuckets(sourceCounts),
			HourlyDistribution: hourly,
			DailyTrend:         daily,
		},
		Insights: dto.LeadInsights{
			TopColleges: topInterests(colleges),
			TopCourses:  topInterests(courses),
		},
	}
	s.cache.Set(ctx, key, resp, 0)
	return resp, false, nil
}

// SummaryStats returns headline totals for the dashboard. Growth compares today
// with yesterday and this week with last week.
func (s *LeadService) SummaryStats(ctx context.Context) (*dto.LeadSummaryResponse, bool, error) {
	now := s.now()
	windows := summaryWindows(now, s.loc)

	key := cacheKey("leads", "summary", windows.Today.Start.Format("2006-01-02"))
	var cached dto.LeadSummaryResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	start := time.Now()
	counts, err := s.repo.CountWindows(ctx, windows)
	if err != nil {
		return nil, false, internalError(err, "failed to compute lead summary")
	}
	s.metrics.ObserveDBQuery("leads_summary", time.Since(start))

	resp := &dto.LeadSummaryResponse{
		TotalLeads:     counts.Total,
		TodayLeads:     counts.Today,
		YesterdayLeads: counts.Yesterday,
		WeekLeads:      counts.Week,
		LastWeekLeads:  counts.LastWeek,
		MonthLeads:     counts.Month,
		NewLeads:       counts.New,
		ConvertedLeads: counts.Converted,
		ConversionRate: conversionRate(counts.Converted, counts.Total),
		GrowthRate: dto.GrowthRate{
			Daily:  growthRate(counts.Today, counts.Yesterday),
			Weekly: growthRate(counts.Week, counts.LastWeek),
		},
	}
	s.cache.Set(ctx, key, resp, 0)
	return resp, false, nil
}

// ExportData returns flattened rows for every lead matching the filters.
func (s *LeadService) ExportData(ctx context.Context, req LeadExportRequest) (*dto.LeadExportDataResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid export request")
	}
	rows, err := s.ExportRows(ctx, models.ExportParams{Status: req.Status, Source: req.Source, DateFrom: req.DateFrom, DateTo: req.DateTo})
	if err != nil {
		return nil, err
	}
	return &dto.LeadExportDataResponse{
		Data:         rows,
		Filename:     exportFilename(req.Format, s.now().In(s.loc)),
		TotalRecords: len(rows),
	}, nil
}

// ExportRows loads and projects leads for both inline and file exports.
func (s *LeadService) ExportRows(ctx context.Context, params models.ExportParams) ([]dto.LeadExportRow, error) {
	filter := params.Filter()
	filter.Source = strings.TrimSpace(filter.Source)
	filter.DateFrom, filter.DateTo = s.widenRange(filter.DateFrom, filter.DateTo)

	start := time.Now()
	rows := make([]dto.LeadExportRow, 0, exportBatchSize)
	for offset := 0; ; offset += exportBatchSize {
		leads, err := s.repo.ListForExport(ctx, filter, exportBatchSize, offset)
		if err != nil {
			return nil, internalError(err, "failed to load leads for export")
		}
		for _, lead := range leads {
			rows = append(rows, ProjectLeadRow(lead))
		}
		if len(leads) < exportBatchSize {
			break
		}
	}
	s.metrics.ObserveDBQuery("leads_export", time.Since(start))
	return rows, nil
}

// widenRange moves from to the start of its day and to to the end of its day.
func (s *LeadService) widenRange(from, to *time.Time) (*time.Time, *time.Time) {
	var start, end *time.Time
	if from != nil {
		v := startOfDay(*from, s.loc)
		start = &v
	}
	if to != nil {
		v := endOf(startOfDay(*to, s.loc).AddDate(0, 0, 1))
		end = &v
	}
	return start, end
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
