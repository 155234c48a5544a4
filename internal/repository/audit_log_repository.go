package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type AuditLogFilter struct {
	ActorUserID  string
	ResourceType model.AuditResourceType
	ResourceID   string
	Limit        int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
