package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tzakkar/UTECBUDGET/internal/model"
	"github.com/tzakkar/UTECBUDGET/internal/parser"
	"github.com/tzakkar/UTECBUDGET/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// PreviewCounts summarizes what a commit of one sheet would do. Conflicts
// flag enum cells that would stay unclassified; they do not block a row
// from counting as addable.
type PreviewCounts struct {
	Added     int      `json:"added"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Conflicts []string `json:"conflicts"`
}

type SheetPreview struct {
	Name       string               `json:"name"`
	Headers    []string             `json:"headers"`
	RowCount   int                  `json:"rowCount"`
	SampleRows [][]string           `json:"sampleRows"`
	Mapping    parser.ColumnMapping `json:"mapping"`
	Preview    PreviewCounts        `json:"preview"`
}

type ImportPreview struct {
	Sheets    []SheetPreview `json:"sheets"`
	TotalRows int            `json:"totalRows"`
	Warnings  []string       `json:"warnings"`
}

type ImportResult struct {
	Added   int      `json:"added"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// --- Interface ---

type ImportService interface {
	// Preview is read-only: it never touches the store and is always safely
	// re-runnable.
	Preview(ctx context.Context, file []byte, overrides map[string]parser.ColumnMapping) (*ImportPreview, error)
	// Commit upserts every importable row. Row-level failures are recorded
	// in Errors and never abort the batch; only an unreadable workbook does.
	Commit(ctx context.Context, file []byte, overrides map[string]parser.ColumnMapping, forceYear *int) (*ImportResult, error)
}

type importService struct {
	items   repository.BudgetItemRepository
	lookups repository.LookupRepository
	audit   repository.AuditRepository
}

func NewImportService(
	items repository.BudgetItemRepository,
	lookups repository.LookupRepository,
	audit repository.AuditRepository,
) ImportService {
	return &importService{items: items, lookups: lookups, audit: audit}
}

// --- Implementation ---

const previewSampleRows = 3

func (s *importService) Preview(ctx context.Context, file []byte, overrides map[string]parser.ColumnMapping) (*ImportPreview, error) {
	wb, err := parser.ParseWorkbook(file)
	if err != nil {
		return nil, err
	}

	preview := &ImportPreview{Sheets: []SheetPreview{}, Warnings: []string{}}
	for _, sheet := range wb.Sheets {
		mapping, inferred := resolveMapping(sheet.Name, sheet.Headers, overrides)
		if inferred {
			preview.Warnings = append(preview.Warnings, headerSuggestions(sheet.Name, sheet.Headers, mapping)...)
		}

		_, isYearSheet := parser.YearFromSheetName(sheet.Name)
		counts := PreviewCounts{Conflicts: []string{}}

		for i, row := range sheet.Rows {
			if len(row) == 0 {
				counts.Skipped++
				continue
			}
			mapped, _ := mapRow(sheet.Headers, mapping, row)

			if !isYearSheet && strings.TrimSpace(mapped[parser.FieldYear]) == "" {
				counts.Skipped++
				preview.Warnings = append(preview.Warnings,
					fmt.Sprintf("Row %d in %s: Missing year", i+2, sheet.Name))
				continue
			}
			if strings.TrimSpace(mapped[parser.FieldItemName]) == "" {
				counts.Skipped++
				preview.Warnings = append(preview.Warnings,
					fmt.Sprintf("Row %d in %s: Missing item name", i+2, sheet.Name))
				continue
			}

			if raw := strings.TrimSpace(mapped[parser.FieldType]); raw != "" && parser.MapTypeString(raw) == "" {
				counts.Conflicts = append(counts.Conflicts,
					fmt.Sprintf("Row %d in %s: Unknown Type '%s'", i+2, sheet.Name, raw))
			}
			if raw := strings.TrimSpace(mapped[parser.FieldSubType]); raw != "" && parser.MapSubTypeString(raw) == "" {
				counts.Conflicts = append(counts.Conflicts,
					fmt.Sprintf("Row %d in %s: Unknown SubType '%s'", i+2, sheet.Name, raw))
			}
			if raw := strings.TrimSpace(mapped[parser.FieldWorkClass]); raw != "" && parser.MapClassString(raw) == "" {
				counts.Conflicts = append(counts.Conflicts,
					fmt.Sprintf("Row %d in %s: Unknown Class '%s'", i+2, sheet.Name, raw))
			}

			counts.Added++
		}

		sample := sheet.Rows
		if len(sample) > previewSampleRows {
			sample = sample[:previewSampleRows]
		}
		preview.Sheets = append(preview.Sheets, SheetPreview{
			Name:       sheet.Name,
			Headers:    sheet.Headers,
			RowCount:   len(sheet.Rows),
			SampleRows: sample,
			Mapping:    mapping,
			Preview:    counts,
		})
		preview.TotalRows += len(sheet.Rows)
	}

	return preview, nil
}

func (s *importService) Commit(ctx context.Context, file []byte, overrides map[string]parser.ColumnMapping, forceYear *int) (*ImportResult, error) {
	wb, err := parser.ParseWorkbook(file)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []string{}}
	for _, sheet := range wb.Sheets {
		mapping, _ := resolveMapping(sheet.Name, sheet.Headers, overrides)

		defaultYear := 0
		if sheetYear, ok := parser.YearFromSheetName(sheet.Name); ok {
			defaultYear = sheetYear
		} else if forceYear != nil {
			defaultYear = *forceYear
		}

		// Rows are processed strictly in order; a failed row is recorded and
		// the batch moves on. Already-committed rows stay committed.
		for i, row := range sheet.Rows {
			if len(row) == 0 {
				continue
			}
			outcome, err := s.commitRow(ctx, sheet.Name, sheet.Headers, mapping, defaultYear, row)
			if err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Row %d in %s: %s", i+2, sheet.Name, err.Error()))
				continue
			}
			switch outcome {
			case outcomeAdded:
				result.Added++
			case outcomeUpdated:
				result.Updated++
			}
		}
	}

	return result, nil
}

type rowOutcome int

const (
	outcomeSkipped rowOutcome = iota
	outcomeAdded
	outcomeUpdated
)

func (s *importService) commitRow(
	ctx context.Context,
	sheetName string,
	headers []string,
	mapping parser.ColumnMapping,
	defaultYear int,
	row []string,
) (rowOutcome, error) {
	mapped, extended := mapRow(headers, mapping, row)

	year := defaultYear
	if year == 0 {
		if parsed := parser.ParseInteger(mapped[parser.FieldYear]); parsed != nil {
			year = *parsed
		}
	}
	if year < model.MinYear || year > model.MaxYear {
		return 0, errors.New("Invalid year")
	}

	itemName := strings.TrimSpace(mapped[parser.FieldItemName])
	if itemName == "" {
		// nothing identifiable to import; omit without an error entry
		return outcomeSkipped, nil
	}

	ownerID, err := s.resolveLookup(ctx, model.DimensionOwner, mapped[parser.FieldOwnerID])
	if err != nil {
		return 0, err
	}
	departmentID, err := s.resolveLookup(ctx, model.DimensionDepartment, mapped[parser.FieldDepartmentID])
	if err != nil {
		return 0, err
	}
	locationID, err := s.resolveLookup(ctx, model.DimensionLocation, mapped[parser.FieldLocationID])
	if err != nil {
		return 0, err
	}
	vendorID, err := s.resolveLookup(ctx, model.DimensionVendor, mapped[parser.FieldVendorID])
	if err != nil {
		return 0, err
	}
	programID, err := s.resolveLookup(ctx, model.DimensionProgram, mapped[parser.FieldProgramID])
	if err != nil {
		return 0, err
	}
	projectID, err := s.resolveLookup(ctx, model.DimensionProject, mapped[parser.FieldProjectID])
	if err != nil {
		return 0, err
	}
	costCenterID, err := s.resolveLookup(ctx, model.DimensionCostCenter, mapped[parser.FieldCostCenterID])
	if err != nil {
		return 0, err
	}
	glID, err := s.resolveLookup(ctx, model.DimensionGL, mapped[parser.FieldGLID])
	if err != nil {
		return 0, err
	}

	capex := toDecimal(parser.ParseNumeric(mapped[parser.FieldCapex]))
	opex := toDecimal(parser.ParseNumeric(mapped[parser.FieldOpex]))
	unitCost := toDecimal(parser.ParseNumeric(mapped[parser.FieldUnitCost]))

	budget := toDecimal(parser.ParseNumeric(mapped[parser.FieldBudget]))
	if budget == nil {
		sum := decimal.Zero
		if capex != nil {
			sum = sum.Add(*capex)
		}
		if opex != nil {
			sum = sum.Add(*opex)
		}
		if sum.IsPositive() {
			budget = &sum
		}
	}
	committed := decimal.Zero
	if parsed := parser.ParseNumeric(mapped[parser.FieldCommitted]); parsed != nil {
		committed = decimal.NewFromFloat(*parsed)
	}
	spent := decimal.Zero
	if parsed := parser.ParseNumeric(mapped[parser.FieldSpent]); parsed != nil {
		spent = decimal.NewFromFloat(*parsed)
	}
	var remaining *decimal.Decimal
	if budget != nil {
		diff := budget.Sub(spent)
		remaining = &diff
	}

	quantity := 1
	if parsed := parser.ParseInteger(mapped[parser.FieldQuantity]); parsed != nil && *parsed > 0 {
		quantity = *parsed
	}
	percentComplete := 0
	if parsed := parser.ParseInteger(mapped[parser.FieldPercentComplete]); parsed != nil {
		percentComplete = *parsed
	}

	var extendedFields *string
	if len(extended) > 0 {
		raw, err := json.Marshal(extended)
		if err != nil {
			return 0, fmt.Errorf("serialize extended fields: %w", err)
		}
		encoded := string(raw)
		extendedFields = &encoded
	}

	item := model.BudgetItem{
		Year:            year,
		Quarter:         parser.ParseInteger(mapped[parser.FieldQuarter]),
		Type:            nonEmptyPtr(parser.MapTypeString(mapped[parser.FieldType])),
		SubType:         nonEmptyPtr(parser.MapSubTypeString(mapped[parser.FieldSubType])),
		WorkClass:       nonEmptyPtr(parser.MapClassString(mapped[parser.FieldWorkClass])),
		ItemName:        itemName,
		Category:        trimmedPtr(mapped[parser.FieldCategory]),
		SubCategory:     trimmedPtr(mapped[parser.FieldSubCategory]),
		Model:           trimmedPtr(mapped[parser.FieldModel]),
		OwnerID:         ownerID,
		DepartmentID:    departmentID,
		LocationID:      locationID,
		VendorID:        vendorID,
		ProgramID:       programID,
		ProjectID:       projectID,
		CostCenterID:    costCenterID,
		GLID:            glID,
		Quantity:        quantity,
		UnitCost:        unitCost,
		Capex:           capex,
		Opex:            opex,
		Budget:          budget,
		Committed:       committed,
		Spent:           spent,
		Remaining:       remaining,
		Status:          parser.MapStatusString(mapped[parser.FieldStatus]),
		PercentComplete: percentComplete,
		Notes:           trimmedPtr(mapped[parser.FieldNotes]),
		ExtendedFields:  extendedFields,
	}

	existing, err := s.items.FindByNaturalKey(ctx, year, itemName, ownerID, costCenterID)
	if err != nil {
		return 0, err
	}

	if existing != nil {
		pre := snapshotJSON(existing)
		// fresh fields win wholesale; identity, replacement links and the
		// manual-entry PR/PO numbers (no spreadsheet column feeds them) survive
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
		item.ReplacesItemID = existing.ReplacesItemID
		item.ReplacedByID = existing.ReplacedByID
		item.PRNumber = existing.PRNumber
		item.PONumber = existing.PONumber
		if err := s.items.Update(ctx, &item); err != nil {
			return 0, err
		}
		if err := s.audit.Append(ctx, &model.AuditLog{
			Actor:      model.ActorSystem,
			EntityType: model.EntityTypeBudgetItem,
			EntityID:   item.ID.String(),
			Action:     model.AuditActionUpdate,
			Pre:        pre,
			Post:       snapshotJSON(&item),
		}); err != nil {
			return 0, err
		}
		return outcomeUpdated, nil
	}

	if err := s.items.Create(ctx, &item); err != nil {
		return 0, err
	}
	if err := s.audit.Append(ctx, &model.AuditLog{
		Actor:      model.ActorSystem,
		EntityType: model.EntityTypeBudgetItem,
		EntityID:   item.ID.String(),
		Action:     model.AuditActionCreate,
		Post:       snapshotJSON(&item),
	}); err != nil {
		return 0, err
	}
	return outcomeAdded, nil
}

// resolveLookup maps a raw cell to a lookup id, leaving nil for blank cells.
func (s *importService) resolveLookup(ctx context.Context, dimension, raw string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := s.lookups.FindOrCreate(ctx, dimension, raw)
	if err != nil {
		return nil, fmt.Errorf("resolve %s '%s': %w", dimension, strings.TrimSpace(raw), err)
	}
	return &id, nil
}

// --- Row helpers ---

// resolveMapping picks the caller override for a sheet when present,
// otherwise infers from the headers. The bool reports whether inference ran.
func resolveMapping(sheetName string, headers []string, overrides map[string]parser.ColumnMapping) (parser.ColumnMapping, bool) {
	if overrides != nil {
		if mapping, ok := overrides[sheetName]; ok {
			return mapping, false
		}
	}
	return parser.InferColumnMapping(headers), true
}

// mapRow pairs row cells with trimmed headers. Mapped columns land in the
// canonical-field map (later columns overwrite earlier on collision);
// unmapped non-blank headers land in the extended map keyed by header text.
// Cells beyond the header count, and headers beyond the row's cells, are
// ignored.
func mapRow(headers []string, mapping parser.ColumnMapping, row []string) (mapped, extended map[string]string) {
	mapped = map[string]string{}
	extended = map[string]string{}
	for j := 0; j < len(headers) && j < len(row); j++ {
		header := strings.TrimSpace(headers[j])
		if header == "" {
			continue
		}
		if field, ok := mapping[header]; ok {
			mapped[field] = row[j]
		} else {
			extended[header] = row[j]
		}
	}
	return mapped, extended
}

// headerSuggestions builds near-miss warnings for headers inference could
// not place.
func headerSuggestions(sheetName string, headers []string, mapping parser.ColumnMapping) []string {
	var warnings []string
	for _, raw := range headers {
		header := strings.TrimSpace(raw)
		if header == "" {
			continue
		}
		if _, ok := mapping[header]; ok {
			continue
		}
		if suggestion := parser.SuggestHeader(header); suggestion != "" {
			warnings = append(warnings,
				fmt.Sprintf("Sheet %s: unmapped header '%s' (did you mean '%s'?)", sheetName, header, suggestion))
		}
	}
	return warnings
}

func snapshotJSON(item *model.BudgetItem) *string {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil
	}
	encoded := string(raw)
	return &encoded
}

func toDecimal(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

func nonEmptyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func trimmedPtr(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
