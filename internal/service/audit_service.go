package service

import (
	"context"

	"github.com/tzakkar/UTECBUDGET/internal/model"
	"github.com/tzakkar/UTECBUDGET/internal/repository"
)

type AuditService interface {
	List(ctx context.Context, entityType, entityID string, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	audit repository.AuditRepository
}

func NewAuditService(audit repository.AuditRepository) AuditService {
	return &auditService{audit: audit}
}

func (s *auditService) List(ctx context.Context, entityType, entityID string, page, limit int) ([]model.AuditLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.audit.List(ctx, entityType, entityID, page, limit)
}
