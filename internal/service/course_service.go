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

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindDetailByID(ctx context.Context, id string) (*models.CourseDetail, error)
	ExistsBySlug(ctx context.Context, collegeID, slug, excludeID string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	CountByLevel(ctx context.Context) ([]models.LevelCount, error)
}

type collegeLookup interface {
	FindByID(ctx context.Context, id string) (*models.College, error)
}

// CourseRequest captures create and update payloads for a course.
type CourseRequest struct {
	CollegeID      string                  `json:"collegeId" validate:"required"`
	Name           string                  `json:"name" validate:"required,max=200"`
	Slug           string                  `json:"slug" validate:"omitempty,max=200"`
	Description    *string                 `json:"description" validate:"omitempty,max=10000"`
	Degree         *string                 `json:"degree" validate:"omitempty,max=100"`
	Level          models.CourseLevel      `json:"level" validate:"required,oneof=CERTIFICATE DIPLOMA UNDERGRADUATE POSTGRADUATE DOCTORATE"`
	DurationMonths *int                    `json:"durationMonths" validate:"omitempty,min=1,max=120"`
	Fees           *float64                `json:"fees" validate:"omitempty,min=0"`
	Currency       *string                 `json:"currency" validate:"omitempty,len=3,uppercase"`
	Eligibility    *string                 `json:"eligibility" validate:"omitempty,max=2000"`
	Syllabus       []models.SyllabusModule `json:"syllabus" validate:"max=40,dive"`
	Status         models.CatalogStatus    `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE DRAFT"`
	Featured       bool                    `json:"featured"`
}

// CourseService coordinates course operations.
type CourseService struct {
	repo      courseRepository
	colleges  collegeLookup
	catalog   catalogOps
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(repo courseRepository, colleges collegeLookup, catalog catalogRepository, audit auditRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		repo:     repo,
		colleges: colleges,
		catalog: catalogOps{
			entity:     models.EntityCourse,
			label:      "course",
			childLabel: "specializations",
			repo:       catalog,
			audit:      auditTrail{repo: audit, logger: logger},
			validator:  validate,
		},
		validator: validate,
		logger:    logger,
	}
}

// List returns courses with pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, *models.Pagination, error) {
	if err := validateCatalogStatusFilter(filter.Status); err != nil {
		return nil, nil, err
	}
	if filter.Level != "" {
		if err := s.validator.Var(string(filter.Level), "oneof=CERTIFICATE DIPLOMA UNDERGRADUATE POSTGRADUATE DOCTORATE"); err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown level "+string(filter.Level))
		}
	}
	filter.Page, filter.PageSize = models.NormalizePage(filter.Page, filter.PageSize)
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list courses")
	}
	if courses == nil {
		courses = []models.CourseDetail{}
	}
	return courses, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a course with its college name and specialization count.
func (s *CourseService) Get(ctx context.Context, id string) (*models.CourseDetail, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.catalog.notFound()
		}
		return nil, internalError(err, "failed to load course")
	}
	return detail, nil
}

// Create adds a course under an existing college. Slugs are unique per college.
func (s *CourseService) Create(ctx context.Context, actor models.Actor, req CourseRequest) (*models.Course, error) {
	slug, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(ctx, req.CollegeID, slug, ""); err != nil {
		return nil, err
	}

	course := &models.Course{Slug: slug}
	applyCourseRequest(course, req)
	course.Status = defaultStatus(req.Status)
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, writeFailure(err, "failed to create course")
	}
	s.catalog.audit.record(ctx, actor, models.AuditActionCreate, string(models.EntityCourse), course.ID, req)
	return course, nil
}

// Update replaces the editable fields of a course, including moving it to another college.
func (s *CourseService) Update(ctx context.Context, actor models.Actor, id string, req CourseRequest) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.catalog.notFound()
		}
		return nil, internalError(err, "failed to load course")
	}
	slug, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(ctx, req.CollegeID, slug, id); err != nil {
		return nil, err
	}

	course.Slug = slug
	applyCourseRequest(course, req)
	if req.Status != "" {
		course.Status = req.Status
	}
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, writeFailure(err, "failed to update course")
	}
	s.catalog.audit.record(ctx, actor, models.AuditActionUpdate, string(models.EntityCourse), id, req)
	return course, nil
}

// Delete marks the course INACTIVE unless specializations still reference it.
func (s *CourseService) Delete(ctx context.Context, actor models.Actor, id string) error {
	return s.catalog.softDelete(ctx, actor, id)
}

// BulkUpdateStatus sets one status on many courses.
func (s *CourseService) BulkUpdateStatus(ctx context.Context, actor models.Actor, req BulkCatalogStatusRequest) (*models.BulkStatusResult, error) {
	return s.catalog.bulkStatus(ctx, actor, req)
}

// ToggleFeatured flips the featured flag and returns the updated course.
func (s *CourseService) ToggleFeatured(ctx context.Context, actor models.Actor, id string) (*models.CourseDetail, error) {
	if _, err := s.catalog.toggleFeatured(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Stats returns status counts with a per-level breakdown.
func (s *CourseService) Stats(ctx context.Context) (*models.CourseStats, error) {
	base, err := s.catalog.stats(ctx)
	if err != nil {
		return nil, err
	}
	levels, err := s.repo.CountByLevel(ctx)
	if err != nil {
		return nil, internalError(err, "failed to count courses by level")
	}
	if levels == nil {
		levels = []models.LevelCount{}
	}
	return &models.CourseStats{CatalogStats: base, ByLevel: levels}, nil
}

func (s *CourseService) validate(ctx context.Context, req CourseRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", validationError(err, "invalid course payload")
	}
	slug := resolveSlug(req.Slug, req.Name)
	if !slugPattern.MatchString(slug) {
		return "", appErrors.Clone(appErrors.ErrValidation, "slug must contain lowercase letters, digits and hyphens")
	}
	if _, err := s.colleges.FindByID(ctx, req.CollegeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "college not found")
		}
		return "", internalError(err, "failed to load college")
	}
	return slug, nil
}

func (s *CourseService) ensureSlugAvailable(ctx context.Context, collegeID, slug, excludeID string) error {
	exists, err := s.repo.ExistsBySlug(ctx, collegeID, slug, excludeID)
	if err != nil {
		return internalError(err, "failed to check course slug")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "course slug already exists for this college")
	}
	return nil
}

func applyCourseRequest(course *models.Course, req CourseRequest) {
	course.CollegeID = req.CollegeID
	course.Name = strings.TrimSpace(req.Name)
	course.Description = trimmedOrNil(req.Description)
	course.Degree = trimmedOrNil(req.Degree)
	course.Level = req.Level
	course.DurationMonths = req.DurationMonths
	course.Fees = req.Fees
	course.Currency = trimmedOrNil(req.Currency)
	course.Eligibility = trimmedOrNil(req.Eligibility)
	course.Syllabus = models.Syllabus(req.Syllabus)
	course.Featured = req.Featured
}
