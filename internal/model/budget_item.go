package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enum constants
const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusPartial    = "PARTIAL"
	StatusCompleted  = "COMPLETED"
)

// Type enum constants
const (
	TypeBAU    = "BAU"
	TypeNeoBAU = "NEOBAU"
	TypeRev    = "REV"
)

// SubType enum constants
const (
	SubTypeBAU            = "BAU"
	SubTypeNeoBAU         = "NEOBAU"
	SubTypeSAP            = "SAP"
	SubTypeMES            = "MES"
	SubTypeSustainability = "SUSTAINABILITY"
	SubTypeAI             = "AI"
)

// WorkClass enum constants
const (
	ClassHardware       = "HARDWARE"
	ClassImplementation = "IMPLEMENTATION"
	ClassMaintenance    = "MAINTENANCE"
	ClassManpower       = "MANPOWER"
	ClassSAPSupport     = "SAP_SUPPORT"
	ClassSubscription   = "SUBSCRIPTION"
)

// Fiscal year bounds accepted for budget items
const (
	MinYear = 2025
	MaxYear = 2028
)

// BudgetItem is a line-item capital/operating expense record for one fiscal year
type BudgetItem struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Year    int       `gorm:"not null;index" json:"year"`
	Quarter *int      `json:"quarter"`

	Type      *string `gorm:"type:varchar(20);index" json:"type"`      // BAU, NEOBAU, REV
	SubType   *string `gorm:"type:varchar(20);index" json:"sub_type"`  // BAU, NEOBAU, SAP, MES, SUSTAINABILITY, AI
	WorkClass *string `gorm:"type:varchar(20);index" json:"work_class"` // HARDWARE, IMPLEMENTATION, MAINTENANCE, MANPOWER, SAP_SUPPORT, SUBSCRIPTION

	ItemName    string  `gorm:"type:varchar(255);not null;index" json:"item_name"`
	Category    *string `gorm:"type:varchar(255);index" json:"category"`
	SubCategory *string `gorm:"type:varchar(255)" json:"sub_category"`
	Model       *string `gorm:"type:varchar(255)" json:"model"`

	OwnerID      *uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index" json:"department_id"`
	LocationID   *uuid.UUID `gorm:"type:uuid;index" json:"location_id"`
	VendorID     *uuid.UUID `gorm:"type:uuid;index" json:"vendor_id"`
	ProgramID    *uuid.UUID `gorm:"type:uuid;index" json:"program_id"`
	ProjectID    *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	CostCenterID *uuid.UUID `gorm:"type:uuid;index" json:"cost_center_id"`
	GLID         *uuid.UUID `gorm:"type:uuid;index;column:gl_id" json:"gl_id"`

	Quantity  int              `gorm:"not null;default:1" json:"quantity"`
	UnitCost  *decimal.Decimal `gorm:"type:decimal(18,4)" json:"unit_cost"`
	Capex     *decimal.Decimal `gorm:"type:decimal(18,4)" json:"capex"`
	Opex      *decimal.Decimal `gorm:"type:decimal(18,4)" json:"opex"`
	Budget    *decimal.Decimal `gorm:"type:decimal(18,4)" json:"budget"`    // defaults to capex+opex when either is present
	Committed decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0" json:"committed"`
	Spent     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0" json:"spent"`
	Remaining *decimal.Decimal `gorm:"type:decimal(18,4)" json:"remaining"` // budget - spent whenever budget is known

	Status          string `gorm:"type:varchar(20);not null;default:'NOT_STARTED';index" json:"status"`
	PercentComplete int    `gorm:"not null;default:0" json:"percent_complete"`

	PRNumber *string `gorm:"type:varchar(100);column:pr_number" json:"pr_number"`
	PONumber *string `gorm:"type:varchar(100);column:po_number" json:"po_number"`
	Notes    *string `gorm:"type:text" json:"notes"`

	// Replacement links are kept symmetric: if A.ReplacedByID = B then
	// B.ReplacesItemID = A. Both sides are maintained on every write.
	ReplacesItemID *uuid.UUID `gorm:"type:uuid" json:"replaces_item_id"`
	ReplacedByID   *uuid.UUID `gorm:"type:uuid" json:"replaced_by_id"`

	// Spreadsheet columns that mapped to no known field, preserved verbatim
	// per import row and keyed by original header text. Serialized JSON.
	ExtendedFields *string `gorm:"type:jsonb" json:"extended_fields"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is one of the four status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusPartial, StatusCompleted:
		return true
	}
	return false
}

// ValidType reports whether s is a known Type value.
func ValidType(s string) bool {
	switch s {
	case TypeBAU, TypeNeoBAU, TypeRev:
		return true
	}
	return false
}

// ValidSubType reports whether s is a known SubType value.
func ValidSubType(s string) bool {
	switch s {
	case SubTypeBAU, SubTypeNeoBAU, SubTypeSAP, SubTypeMES, SubTypeSustainability, SubTypeAI:
		return true
	}
	return false
}

// ValidWorkClass reports whether s is a known WorkClass value.
func ValidWorkClass(s string) bool {
	switch s {
	case ClassHardware, ClassImplementation, ClassMaintenance, ClassManpower, ClassSAPSupport, ClassSubscription:
		return true
	}
	return false
}
