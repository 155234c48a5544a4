package usecase

import (
	"context"
	"encoding/json"

	"storefront/internal/domain/access"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const maxAuditLogLimit = 200

// AuditLogUsecase exposes the admin audit trail written by status updates
// and refunds.
type AuditLogUsecase struct {
	logs repo.AuditLogRepository
}

func NewAuditLogUsecase(logs repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{logs: logs}
}

type AuditLogQuery struct {
	ActorUserID  string
	ResourceType string
	ResourceID   string
	// 0 はデフォルト件数
	Limit int
}

func (q AuditLogQuery) validate() error {
	var fe fieldErrors
	switch model.AuditResourceType(q.ResourceType) {
	case "", model.AuditResourceOrder, model.AuditResourcePayment:
	default:
		fe.add("resourceType", "Invalid resource type")
	}
	if q.Limit < 0 || q.Limit > maxAuditLogLimit {
		fe.add("limit", "Limit must be between 1 and 200")
	}
	return fe.err()
}

// List returns matching entries, newest first.
func (u *AuditLogUsecase) List(ctx context.Context, caller access.Caller, q AuditLogQuery) ([]model.AuditLog, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := q.validate(); err != nil {
		return nil, err
	}

	logs, err := u.logs.List(ctx, repo.AuditLogFilter{
		ActorUserID:  q.ActorUserID,
		ResourceType: model.AuditResourceType(q.ResourceType),
		ResourceID:   q.ResourceID,
		Limit:        q.Limit,
	})
	if err != nil {
		return nil, internalError(err)
	}
	return logs, nil
}

// auditJSON renders the before/after snapshot stored on an audit entry.
func auditJSON(v map[string]any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
