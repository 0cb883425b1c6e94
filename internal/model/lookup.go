package model

import (
	"time"

	"github.com/google/uuid"
)

// Lookup dimension names as used by the import resolver and the lookups API
const (
	DimensionOwner      = "Owner"
	DimensionDepartment = "Department"
	DimensionLocation   = "Location"
	DimensionVendor     = "Vendor"
	DimensionProgram    = "Program"
	DimensionProject    = "Project"
	DimensionCostCenter = "CostCenter"
	DimensionGL         = "GL"
)

// Owner is a responsible person/team referenced by budget items
type Owner struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Vendor struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Program struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Project struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CostCenter carries both a display name and an accounting code; import rows
// may reference either.
type CostCenter struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Code      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// GL is a general-ledger account; like CostCenter it is matchable by name or code.
type GL struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Code      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"code"`
	CreatedAt time.Time `json:"created_at"`
}
