package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ColumnMapping maps a raw spreadsheet header to a canonical field name.
type ColumnMapping map[string]string

// Canonical field names a column may map onto.
const (
	FieldItemName        = "itemName"
	FieldSubItem         = "subItem"
	FieldCategory        = "category"
	FieldSubCategory     = "subCategory"
	FieldModel           = "model"
	FieldYear            = "year"
	FieldQuarter         = "quarter"
	FieldCapex           = "capex"
	FieldOpex            = "opex"
	FieldBudget          = "budget"
	FieldCommitted       = "committed"
	FieldSpent           = "spent"
	FieldRemaining       = "remaining"
	FieldUnitCost        = "unitCost"
	FieldQuantity        = "quantity"
	FieldTotal           = "total"
	FieldStatus          = "status"
	FieldCondition       = "condition"
	FieldPercentComplete = "percentComplete"
	FieldNotes           = "notes"
	FieldOwnerID         = "ownerId"
	FieldDepartmentID    = "departmentId"
	FieldLocationID      = "locationId"
	FieldVendorID        = "vendorId"
	FieldProgramID       = "programId"
	FieldProjectID       = "projectId"
	FieldCostCenterID    = "costCenterId"
	FieldGLID            = "glId"
	FieldType            = "type"
	FieldSubType         = "subType"
	FieldWorkClass       = "workClass"
)

// DefaultColumnMappings is the static header dictionary used when the caller
// supplies no override mapping for a sheet.
var DefaultColumnMappings = ColumnMapping{
	// Identity
	"Item":         FieldItemName,
	"Sub-Item":     FieldSubItem,
	"Project":      FieldProjectID,
	"Program":      FieldProgramID,
	"Category":     FieldCategory,
	"Sub-Category": FieldSubCategory,
	"Model":        FieldModel,

	// Finance
	"Capex":         FieldCapex,
	"Opex":          FieldOpex,
	"Budget":        FieldBudget,
	"Committed":     FieldCommitted,
	"Spent":         FieldSpent,
	"Remaining":     FieldRemaining,
	"Unit Cost":     FieldUnitCost,
	"Quantity":      FieldQuantity,
	"Total":         FieldTotal,
	"Cost Center":   FieldCostCenterID,
	"GL":            FieldGLID,
	"Purchase cost": FieldCapex,
	"Purchase year": FieldYear,

	// Time & plan
	"Year":    FieldYear,
	"Quarter": FieldQuarter,

	// Status & tracking
	"Status":     FieldStatus,
	"Condition":  FieldCondition,
	"% Complete": FieldPercentComplete,
	"Notes":      FieldNotes,
	"Owner":      FieldOwnerID,
	"Department": FieldDepartmentID,

	// Logistics
	"Location": FieldLocationID,
	"Vendor":   FieldVendorID,

	// Classification
	"Type":     FieldType,
	"Subtype":  FieldSubType,
	"Sub-Type": FieldSubType,
	"Class":    FieldWorkClass,
}

// InferColumnMapping resolves each non-blank header against the default
// dictionary: exact match first, then case-insensitive. Headers that match
// nothing are left out of the mapping; their values land in extendedFields
// during commit.
func InferColumnMapping(headers []string) ColumnMapping {
	mapping := ColumnMapping{}
	for _, raw := range headers {
		header := strings.TrimSpace(raw)
		if header == "" {
			continue
		}
		if field, ok := DefaultColumnMappings[header]; ok {
			mapping[header] = field
			continue
		}
		lower := strings.ToLower(header)
		for key, field := range DefaultColumnMappings {
			if strings.ToLower(key) == lower {
				mapping[header] = field
				break
			}
		}
	}
	return mapping
}

// maxSuggestionDistance bounds how far a header may drift from a dictionary
// key before no suggestion is offered.
const maxSuggestionDistance = 2

// SuggestHeader returns the dictionary key closest to an unmapped header, or
// "" when nothing is within edit distance 2. Suggestions are advisory only
// and never applied to a mapping.
func SuggestHeader(header string) string {
	normalized := strings.ToLower(strings.TrimSpace(header))
	if normalized == "" {
		return ""
	}
	best := ""
	bestDist := maxSuggestionDistance + 1
	for key := range DefaultColumnMappings {
		dist := levenshtein.ComputeDistance(normalized, strings.ToLower(key))
		if dist < bestDist || (dist == bestDist && best != "" && key < best) {
			best = key
			bestDist = dist
		}
	}
	if bestDist > maxSuggestionDistance {
		return ""
	}
	return best
}

var yearSheetPattern = regexp.MustCompile(`^(202[5-8])$`)

// YearFromSheetName reports whether a sheet name is a bare in-range fiscal
// year ("2025".."2028"). Such sheets force every row's year regardless of
// any mapped year column.
func YearFromSheetName(name string) (int, bool) {
	m := yearSheetPattern.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return 0, false
	}
	year, _ := strconv.Atoi(m[1])
	return year, true
}

// IdempotencyKey derives the natural-key string for one import row. The
// upsert re-derives equivalence with a direct store lookup, so the key is
// informational, but it pins down what "the same row" means.
func IdempotencyKey(year int, sheetName, itemName, ownerID, costCenterID, glID string) string {
	parts := []string{
		strconv.Itoa(year),
		sheetName,
		strings.ToLower(strings.TrimSpace(itemName)),
		strings.ToLower(strings.TrimSpace(ownerID)),
		strings.ToLower(strings.TrimSpace(costCenterID)),
		strings.ToLower(strings.TrimSpace(glID)),
	}
	return strings.Join(parts, "::")
}
