package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tzakkar/UTECBUDGET/internal/model"
)

var (
	numericJunk = regexp.MustCompile(`[^0-9.\-]`)
	enumPrefix  = regexp.MustCompile(`^\s*\d+\s*`)
)

// ParseNumeric turns messy spreadsheet cell text into a float. Currency
// symbols and thousands separators are stripped before parsing; anything
// still unparseable yields nil rather than an error. Spreadsheets are messy,
// so this stays best-effort on purpose.
func ParseNumeric(raw string) *float64 {
	if raw == "" {
		return nil
	}
	cleaned := numericJunk.ReplaceAllString(raw, "")
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// ParseInteger is ParseNumeric floored toward negative infinity, so
// "-1.5" becomes -2, not -1.
func ParseInteger(raw string) *int {
	num := ParseNumeric(raw)
	if num == nil {
		return nil
	}
	floored := int(math.Floor(*num))
	return &floored
}

// MapStatusString classifies free-text status by substring. "partial" wins
// over "completed" so "Partially Completed" lands on PARTIAL. Unrecognized
// or blank input falls back to NOT_STARTED; this mapper never rejects.
func MapStatusString(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(normalized, "completed") && !strings.Contains(normalized, "partial"):
		return model.StatusCompleted
	case strings.Contains(normalized, "partial"):
		return model.StatusPartial
	case strings.Contains(normalized, "progress"):
		return model.StatusInProgress
	default:
		return model.StatusNotStarted
	}
}

// stripEnumPrefix drops a leading numeric token ("00 BAU" -> "BAU") and
// lowercases for matching.
func stripEnumPrefix(raw string) string {
	return strings.ToLower(strings.TrimSpace(enumPrefix.ReplaceAllString(raw, "")))
}

// MapTypeString classifies a Type cell. Unlike the status mapper, an
// unrecognized value stays unclassified ("") instead of being coerced to a
// fallback.
func MapTypeString(raw string) string {
	switch stripEnumPrefix(raw) {
	case "bau":
		return model.TypeBAU
	case "neobau", "neo-bau", "neo_bau":
		return model.TypeNeoBAU
	case "rev":
		return model.TypeRev
	}
	return ""
}

// MapSubTypeString classifies a SubType cell; "" when unrecognized.
func MapSubTypeString(raw string) string {
	switch stripEnumPrefix(raw) {
	case "bau":
		return model.SubTypeBAU
	case "neobau", "neo-bau", "neo_bau":
		return model.SubTypeNeoBAU
	case "sap":
		return model.SubTypeSAP
	case "mes":
		return model.SubTypeMES
	case "sustainability":
		return model.SubTypeSustainability
	case "ai":
		return model.SubTypeAI
	}
	return ""
}

// MapClassString classifies a work-class cell; "" when unrecognized.
func MapClassString(raw string) string {
	switch stripEnumPrefix(raw) {
	case "hardware":
		return model.ClassHardware
	case "implementation":
		return model.ClassImplementation
	case "maintenance":
		return model.ClassMaintenance
	case "manpower":
		return model.ClassManpower
	case "sap support", "sap_support":
		return model.ClassSAPSupport
	case "subscription":
		return model.ClassSubscription
	}
	return ""
}
