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

type specializationRepository interface {
	List(ctx context.Context, filter models.SpecializationFilter) ([]models.SpecializationDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.Specialization, error)
	FindDetailByID(ctx context.Context, id string) (*models.SpecializationDetail, error)
	ExistsBySlug(ctx context.Context, courseID, slug, excludeID string) (bool, error)
	Create(ctx context.Context, item *models.Specialization) error
	Update(ctx context.Context, item *models.Specialization) error
}

type courseLookup interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// SpecializationRequest captures create and update payloads for a specialization.
type SpecializationRequest struct {
	CourseID    string               `json:"courseId" validate:"required"`
	Name        string               `json:"name" validate:"required,max=200"`
	Slug        string               `json:"slug" validate:"omitempty,max=200"`
	Description *string              `json:"description" validate:"omitempty,max=10000"`
	Status      models.CatalogStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE DRAFT"`
	Featured    bool                 `json:"featured"`
}

// SpecializationService coordinates specialization operations.
type SpecializationService struct {
	repo      specializationRepository
	courses   courseLookup
	catalog   catalogOps
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSpecializationService constructs SpecializationService.
func NewSpecializationService(repo specializationRepository, courses courseLookup, catalog catalogRepository, audit auditRepository, validate *validator.Validate, logger *zap.Logger) *SpecializationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpecializationService{
		repo:    repo,
		courses: courses,
		catalog: catalogOps{
			entity:     models.EntitySpecialization,
			label:      "specialization",
			childLabel: "applications",
			repo:       catalog,
			audit:      auditTrail{repo: audit, logger: logger},
			validator:  validate,
		},
		validator: validate,
		logger:    logger,
	}
}

// List returns specializations with pagination metadata.
func (s *SpecializationService) List(ctx context.Context, filter models.SpecializationFilter) ([]models.SpecializationDetail, *models.Pagination, error) {
	if err := validateCatalogStatusFilter(filter.Status); err != nil {
		return nil, nil, err
	}
	filter.Page, filter.PageSize = models.NormalizePage(filter.Page, filter.PageSize)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list specializations")
	}
	if items == nil {
		items = []models.SpecializationDetail{}
	}
	return items, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a specialization with its course name and application count.
func (s *SpecializationService) Get(ctx context.Context, id string) (*models.SpecializationDetail, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.catalog.notFound()
		}
		return nil, internalError(err, "failed to load specialization")
	}
	return detail, nil
}

// Create adds a specialization under an existing course. Slugs are unique per course.
func (s *SpecializationService) Create(ctx context.Context, actor models.Actor, req SpecializationRequest) (*models.Specialization, error) {
	slug, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(ctx, req.CourseID, slug, ""); err != nil {
		return nil, err
	}

	item := &models.Specialization{Slug: slug}
	applySpecializationRequest(item, req)
	item.Status = defaultStatus(req.Status)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, writeFailure(err, "failed to create specialization")
	}
	s.catalog.audit.record(ctx, actor, models.AuditActionCreate, string(models.EntitySpecialization), item.ID, req)
	return item, nil
}

// Update replaces the editable fields of a specialization.
func (s *SpecializationService) Update(ctx context.Context, actor models.Actor, id string, req SpecializationRequest) (*models.Specialization, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.catalog.notFound()
		}
		return nil, internalError(err, "failed to load specialization")
	}
	slug, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(ctx, req.CourseID, slug, id); err != nil {
		return nil, err
	}

	item.Slug = slug
	applySpecializationRequest(item, req)
	if req.Status != "" {
		item.Status = req.Status
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, writeFailure(err, "failed to update specialization")
	}
	s.catalog.audit.record(ctx, actor, models.AuditActionUpdate, string(models.EntitySpecialization), id, req)
	return item, nil
}

// Delete marks the specialization INACTIVE unless applications still reference it.
func (s *SpecializationService) Delete(ctx context.Context, actor models.Actor, id string) error {
	return s.catalog.softDelete(ctx, actor, id)
}

// BulkUpdateStatus sets one status on many specializations.
func (s *SpecializationService) BulkUpdateStatus(ctx context.Context, actor models.Actor, req BulkCatalogStatusRequest) (*models.BulkStatusResult, error) {
	return s.catalog.bulkStatus(ctx, actor, req)
}

// ToggleFeatured flips the featured flag and returns the updated specialization.
func (s *SpecializationService) ToggleFeatured(ctx context.Context, actor models.Actor, id string) (*models.SpecializationDetail, error) {
	if _, err := s.catalog.toggleFeatured(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Stats returns specialization status counts.
func (s *SpecializationService) Stats(ctx context.Context) (*models.CatalogStats, error) {
	stats, err := s.catalog.stats(ctx)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *SpecializationService) validate(ctx context.Context, req SpecializationRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", validationError(err, "invalid specialization payload")
	}
	slug := resolveSlug(req.Slug, req.Name)
	if !slugPattern.MatchString(slug) {
		return "", appErrors.Clone(appErrors.ErrValidation, "slug must contain lowercase letters, digits and hyphens")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return "", internalError(err, "failed to load course")
	}
	return slug, nil
}

func (s *SpecializationService) ensureSlugAvailable(ctx context.Context, courseID, slug, excludeID string) error {
	exists, err := s.repo.ExistsBySlug(ctx, courseID, slug, excludeID)
	if err != nil {
		return internalError(err, "failed to check specialization slug")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "specialization slug already exists for this course")
	}
	return nil
}

func applySpecializationRequest(item *models.Specialization, req SpecializationRequest) {
	item.CourseID = req.CourseID
	item.Name = strings.TrimSpace(req.Name)
	item.Description = trimmedOrNil(req.Description)
	item.Featured = req.Featured
}
