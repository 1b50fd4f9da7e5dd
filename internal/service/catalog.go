package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/campus-admin-api/internal/models"
	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
)

type catalogRepository interface {
	SetStatus(ctx context.Context, entity models.CatalogEntity, id string, status models.CatalogStatus) error
	BulkSetStatus(ctx context.Context, entity models.CatalogEntity, ids []string, status models.CatalogStatus) (int, error)
	ToggleFeatured(ctx context.Context, entity models.CatalogEntity, id string) (bool, error)
	CountChildren(ctx context.Context, entity models.CatalogEntity, id string) (int, error)
	Stats(ctx context.Context, entity models.CatalogEntity) (models.CatalogStats, error)
}

// BulkCatalogStatusRequest changes the status of many catalog rows.
type BulkCatalogStatusRequest struct {
	IDs    []string             `json:"ids" validate:"required,min=1,max=500,dive,required"`
	Status models.CatalogStatus `json:"status" validate:"required,oneof=ACTIVE INACTIVE DRAFT"`
}

// transitionGuard returns an error to block a status transition.
type transitionGuard func(ctx context.Context, id string) error

// catalogOps holds the operations shared by colleges, courses and specializations.
type catalogOps struct {
	entity     models.CatalogEntity
	label      string
	childLabel string
	repo       catalogRepository
	audit      auditTrail
	validator  *validator.Validate
}

func (o catalogOps) notFound() error {
	return appErrors.Clone(appErrors.ErrNotFound, o.label+" not found")
}

// transition moves one row to target once guard passes. A blocked guard leaves the row untouched.
func (o catalogOps) transition(ctx context.Context, actor models.Actor, id string, target models.CatalogStatus, guard transitionGuard, action string) error {
	if guard != nil {
		if err := guard(ctx, id); err != nil {
			return err
		}
	}
	if err := o.repo.SetStatus(ctx, o.entity, id, target); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return o.notFound()
		}
		return internalError(err, fmt.Sprintf("failed to update %s status", o.label))
	}
	o.audit.record(ctx, actor, action, string(o.entity), id, map[string]interface{}{"status": target})
	return nil
}

// softDelete marks the row INACTIVE unless any child row references it.
func (o catalogOps) softDelete(ctx context.Context, actor models.Actor, id string) error {
	return o.transition(ctx, actor, id, models.CatalogStatusInactive, o.childGuard, models.AuditActionDelete)
}

func (o catalogOps) childGuard(ctx context.Context, id string) error {
	count, err := o.repo.CountChildren(ctx, o.entity, id)
	if err != nil {
		return internalError(err, fmt.Sprintf("failed to check %s %s", o.label, o.childLabel))
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf("%s has %d %s", o.label, count, o.childLabel))
	}
	return nil
}

func (o catalogOps) bulkStatus(ctx context.Context, actor models.Actor, req BulkCatalogStatusRequest) (*models.BulkStatusResult, error) {
	if err := o.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bulk status payload")
	}
	ids := uniqueStrings(req.IDs)
	updated, err := o.repo.BulkSetStatus(ctx, o.entity, ids, req.Status)
	if err != nil {
		return nil, internalError(err, fmt.Sprintf("failed to update %s statuses", o.label))
	}
	o.audit.record(ctx, actor, models.AuditActionBulkStatus, string(o.entity), "", map[string]interface{}{"ids": ids, "status": req.Status, "updated": updated})
	return &models.BulkStatusResult{Updated: updated, Status: req.Status}, nil
}

func (o catalogOps) toggleFeatured(ctx context.Context, actor models.Actor, id string) (bool, error) {
	featured, err := o.repo.ToggleFeatured(ctx, o.entity, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, o.notFound()
		}
		return false, internalError(err, fmt.Sprintf("failed to toggle %s featured", o.label))
	}
	o.audit.record(ctx, actor, models.AuditActionToggleFeat, string(o.entity), id, map[string]interface{}{"featured": featured})
	return featured, nil
}

func (o catalogOps) stats(ctx context.Context) (models.CatalogStats, error) {
	stats, err := o.repo.Stats(ctx, o.entity)
	if err != nil {
		return models.CatalogStats{}, internalError(err, fmt.Sprintf("failed to load %s stats", o.label))
	}
	return stats, nil
}

func validateCatalogStatusFilter(status models.CatalogStatus) error {
	if status != "" && !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown status "+string(status))
	}
	return nil
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL slug from a display name.
func slugify(name string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(slug, "-")
}

// resolveSlug returns the requested slug, or one derived from name when empty.
func resolveSlug(slug, name string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return slugify(name)
	}
	return slug
}

func defaultStatus(status models.CatalogStatus) models.CatalogStatus {
	if status == "" {
		return models.CatalogStatusDraft
	}
	return status
}
