package model

import (
	"github.com/google/uuid"
)

// RollupRow aggregates budget figures for one grouping bucket of
// (year, quarter, status, category, owner, department).
type RollupRow struct {
	Year         int        `gorm:"column:year" json:"year"`
	Quarter      *int       `gorm:"column:quarter" json:"quarter"`
	Status       string     `gorm:"column:status" json:"status"`
	Category     *string    `gorm:"column:category" json:"category"`
	OwnerID      *uuid.UUID `gorm:"column:owner_id" json:"owner_id"`
	DepartmentID *uuid.UUID `gorm:"column:department_id" json:"department_id"`
	ItemCount    int        `gorm:"column:item_count" json:"item_count"`
	Allocated    float64    `gorm:"column:allocated" json:"allocated"`
	Committed    float64    `gorm:"column:committed" json:"committed"`
	Spent        float64    `gorm:"column:spent" json:"spent"`
	Remaining    float64    `gorm:"column:remaining" json:"remaining"`
	ExecutionPct float64    `gorm:"-" json:"execution_pct"` // spent / allocated * 100 when allocated > 0
}
