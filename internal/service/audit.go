package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-admin-api/internal/models"
)

type auditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// auditTrail records admin writes. A failed audit insert is logged and never
// fails the write it describes.
type auditTrail struct {
	repo   auditRepository
	logger *zap.Logger
}

func (a auditTrail) record(ctx context.Context, actor models.Actor, action, resource, resourceID string, payload interface{}) {
	if a.logger != nil {
		a.logger.Info("write applied",
			zap.String("action", action),
			zap.String("resource", resource),
			zap.String("resource_id", resourceID),
			zap.String("actor_id", actor.UserID),
		)
	}
	if a.repo == nil {
		return
	}

	entry := &models.AuditLog{
		Action:    action,
		Resource:  resource,
		IPAddress: actor.IPAddress,
		UserAgent: actor.UserAgent,
	}
	if !actor.IsPublic() {
		userID := actor.UserID
		entry.UserID = &userID
	}
	if resourceID != "" {
		entry.ResourceID = &resourceID
	}
	if payload != nil {
		if body, err := json.Marshal(payload); err == nil {
			entry.NewValues = body
		}
	}
	if err := a.repo.Create(ctx, entry); err != nil && a.logger != nil {
		a.logger.Warn("audit log failed", zap.String("resource", resource), zap.String("resource_id", resourceID), zap.Error(err))
	}
}
