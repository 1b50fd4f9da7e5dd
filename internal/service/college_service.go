package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-admin-api/internal/models"
	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
)

type collegeRepository interface {
	List(ctx context.Context, filter models.CollegeFilter) ([]models.CollegeDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.College, error)
	FindDetailByID(ctx context.Context, id string) (*models.CollegeDetail, error)
	FindActiveBySlug(ctx context.Context, slug string) (*models.CollegeDetail, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error)
	Create(ctx context.Context, college *models.College) error
	Update(ctx context.Context, college *models.College) error
	CountCourses(ctx context.Context) (int, error)
}

type activeCourseLister interface {
	ListActiveByCollege(ctx context.Context, collegeID string) ([]models.Course, error)
}

// CollegeRequest captures create and update payloads. An empty slug is derived from the name.
type CollegeRequest struct {
	Name            string               `json:"name" validate:"required,max=200"`
	Slug            string               `json:"slug" validate:"omitempty,max=200"`
	ShortName       *string              `json:"shortName" validate:"omitempty,max=50"`
	Description     *string              `json:"description" validate:"omitempty,max=10000"`
	City            *string              `json:"city" validate:"omitempty,max=100"`
	State           *string              `json:"state" validate:"omitempty,max=100"`
	Country         *string              `json:"country" validate:"omitempty,max=100"`
	Address         *string              `json:"address" validate:"omitempty,max=500"`
	Website         *string              `json:"website" validate:"omitempty,url"`
	Email           *string              `json:"email" validate:"omitempty,email"`
	Phone           *string              `json:"phone" validate:"omitempty,max=32"`
	LogoURL         *string              `json:"logoUrl" validate:"omitempty,url"`
	EstablishedYear *int                 `json:"establishedYear" validate:"omitempty,min=1000,max=2100"`
	Accreditation   *string              `json:"accreditation" validate:"omitempty,max=100"`
	Rankings        []models.Ranking     `json:"rankings" validate:"max=50,dive"`
	Facilities      []string             `json:"facilities" validate:"max=100,dive,required,max=100"`
	Status          models.CatalogStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE DRAFT"`
	Featured        bool                 `json:"featured"`
}

// PublicCollege is the marketing site view of a college and its active courses.
type PublicCollege struct {
	models.CollegeDetail
	Courses []models.Course `json:"courses"`
}

// CollegeService coordinates college operations.
type CollegeService struct {
	repo      collegeRepository
	courses   activeCourseLister
	catalog   catalogOps
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCollegeService constructs CollegeService.
func NewCollegeService(repo collegeRepository, courses activeCourseLister, catalog catalogRepository, audit auditRepository, validate *validator.Validate, logger *zap.Logger) *CollegeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollegeService{
		repo:    repo,
		courses: courses,
		catalog: catalogOps{
			entity:     models.EntityCollege,
			label:      "college",
			childLabel: "courses",
			repo:       catalog,
			audit:      auditTrail{repo: audit, logger: logger},
			validator:  validate,
		},
		validator: validate,
		logger:    logger,
	}
}

// List returns colleges with pagination metadata.
func (s *CollegeService) List(ctx context.Context, filter models.CollegeFilter) ([]models.CollegeDetail, *models.Pagination, error) {
	if err := validateCatalogStatusFilter(filter.Status); err != nil {
		return nil, nil, err
	}
	filter.Page, filter.PageSize = models.NormalizePage(filter.Page, filter.PageSize)
	colleges, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list colleges")
	}
	if colleges == nil {
		colleges = []models.CollegeDetail{}
	}
	return colleges, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// ListPublic returns ACTIVE colleges only.
func (s *CollegeService) ListPublic(ctx context.Context, filter models.CollegeFilter) ([]models.CollegeDetail, *models.Pagination, error) {
	filter.Status = models.CatalogStatusActive
	return s.List(ctx, filter)
}

// Get returns a college with its course count.
func (s *CollegeService) Get(ctx context.Context, id string) (*models.CollegeDetail, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.catalog.notFound()
		}
		return nil, internalError(err, "failed to load college")
	}
	return detail, nil
}

// GetPublicBySlug returns an ACTIVE college and its ACTIVE courses.
func (s *CollegeService) GetPublicBySlug(ctx context.Context, slug string) (*PublicCollege, error) {
	detail, err := s.repo.FindActiveBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.catalog.notFound()
		}
		return nil, internalError(err, "failed to load college")
	}
	courses, err := s.courses.ListActiveByCollege(ctx, detail.ID)
	if err != nil {
		return nil, internalError(err, "failed to load college courses")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return &PublicCollege{CollegeDetail: *detail, Courses: courses}, nil
}

// Create adds a new college. Slugs are unique across all colleges.
func (s *CollegeService) Create(ctx context.Context, actor models.Actor, req CollegeRequest) (*models.College, error) {
	slug, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(ctx, slug, ""); err != nil {
		return nil, err
	}

	college := &models.College{Slug: slug}
	applyCollegeRequest(college, req)
	college.Status = defaultStatus(req.Status)
	if err := s.repo.Create(ctx, college); err != nil {
		return nil, writeFailure(err, "failed to create college")
	}
	s.catalog.audit.record(ctx, actor, models.AuditActionCreate, string(models.EntityCollege), college.ID, req)
	return college, nil
}

// Update replaces the editable fields of a college.
func (s *CollegeService) Update(ctx context.Context, actor models.Actor, id string, req CollegeRequest) (*models.College, error) {
	slug, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	college, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.catalog.notFound()
		}
		return nil, internalError(err, "failed to load college")
	}
	if err := s.ensureSlugAvailable(ctx, slug, id); err != nil {
		return nil, err
	}

	college.Slug = slug
	applyCollegeRequest(college, req)
	if req.Status != "" {
		college.Status = req.Status
	}
	if err := s.repo.Update(ctx, college); err != nil {
		return nil, writeFailure(err, "failed to update college")
	}
	s.catalog.audit.record(ctx, actor, models.AuditActionUpdate, string(models.EntityCollege), id, req)
	return college, nil
}

// Delete marks the college INACTIVE. Colleges that still own courses of any status are kept.
func (s *CollegeService) Delete(ctx context.Context, actor models.Actor, id string) error {
	return s.catalog.softDelete(ctx, actor, id)
}

// BulkUpdateStatus sets one status on many colleges.
func (s *CollegeService) BulkUpdateStatus(ctx context.Context, actor models.Actor, req BulkCatalogStatusRequest) (*models.BulkStatusResult, error) {
	return s.catalog.bulkStatus(ctx, actor, req)
}

// ToggleFeatured flips the featured flag and returns the updated college.
func (s *CollegeService) ToggleFeatured(ctx context.Context, actor models.Actor, id string) (*models.CollegeDetail, error) {
	if _, err := s.catalog.toggleFeatured(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Stats returns status counts and the total number of courses.
func (s *CollegeService) Stats(ctx context.Context) (*models.CollegeStats, error) {
	base, err := s.catalog.stats(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.repo.CountCourses(ctx)
	if err != nil {
		return nil, internalError(err, "failed to count courses")
	}
	return &models.CollegeStats{CatalogStats: base, TotalCourses: courses}, nil
}

func (s *CollegeService) validate(req CollegeRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", validationError(err, "invalid college payload")
	}
	slug := resolveSlug(req.Slug, req.Name)
	if !slugPattern.MatchString(slug) {
		return "", appErrors.Clone(appErrors.ErrValidation, "slug must contain lowercase letters, digits and hyphens")
	}
	return slug, nil
}

func (s *CollegeService) ensureSlugAvailable(ctx context.Context, slug, excludeID string) error {
	exists, err := s.repo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return internalError(err, "failed to check college slug")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "college slug already exists")
	}
	return nil
}

func applyCollegeRequest(college *models.College, req CollegeRequest) {
	college.Name = strings.TrimSpace(req.Name)
	college.ShortName = trimmedOrNil(req.ShortName)
	college.Description = trimmedOrNil(req.Description)
	college.City = trimmedOrNil(req.City)
	college.State = trimmedOrNil(req.State)
	college.Country = trimmedOrNil(req.Country)
	college.Address = trimmedOrNil(req.Address)
	college.Website = trimmedOrNil(req.Website)
	college.Email = trimmedOrNil(req.Email)
	college.Phone = trimmedOrNil(req.Phone)
	college.LogoURL = trimmedOrNil(req.LogoURL)
	college.EstablishedYear = req.EstablishedYear
	college.Accreditation = trimmedOrNil(req.Accreditation)
	college.Rankings = models.Rankings(req.Rankings)
	college.Facilities = models.Facilities(uniqueStrings(req.Facilities))
	college.Featured = req.Featured
}
