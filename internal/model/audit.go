package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// Audited entity types
const (
	EntityTypeBudgetItem = "BudgetItem"
)

// ActorSystem is recorded on mutations not attributable to a named user,
// e.g. the import pipeline.
const ActorSystem = "system"

// AuditLog is an append-only record of every budget item mutation with
// before/after snapshots. Entries are never updated or deleted.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Actor      string    `gorm:"type:varchar(100);not null" json:"actor"`
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_audit_entity" json:"entity_type"`
	EntityID   string    `gorm:"type:varchar(50);index:idx_audit_entity" json:"entity_id"`
	Action     string    `gorm:"type:varchar(20);not null" json:"action"`
	Pre        *string   `gorm:"type:jsonb" json:"pre"`  // entity state before the mutation, absent on create
	Post       *string   `gorm:"type:jsonb" json:"post"` // entity state after the mutation, absent on delete
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
