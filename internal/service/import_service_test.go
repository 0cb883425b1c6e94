package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tzakkar/UTECBUDGET/internal/model"
	"github.com/tzakkar/UTECBUDGET/internal/parser"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			for j, cell := range row {
				axis, err := excelize.CoordinatesToCellName(j+1, i+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, axis, cell))
			}
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func newImportFixture() (*fakeItemRepo, *fakeLookupRepo, *fakeAuditRepo, ImportService) {
	items := newFakeItemRepo()
	lookups := newFakeLookupRepo()
	audit := newFakeAuditRepo()
	return items, lookups, audit, NewImportService(items, lookups, audit)
}

func TestCommit_CreatesItemWithDerivedFinancials(t *testing.T) {
	t.Parallel()

	items, lookups, audit, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"2025": {
			{"Item", "Capex", "Opex", "Owner"},
			{"Router", 1000, 500, "Alice"},
		},
	})

	result, err := svc.Commit(context.Background(), file, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Added)
	require.Equal(t, 0, result.Updated)
	require.Empty(t, result.Errors)
	require.Equal(t, 1, items.count())

	item := items.first()
	require.Equal(t, 2025, item.Year)
	require.Equal(t, "Router", item.ItemName)
	require.NotNil(t, item.OwnerID)
	require.True(t, item.Budget.Equal(decimal.NewFromInt(1500)))
	require.True(t, item.Remaining.Equal(decimal.NewFromInt(1500)))
	require.True(t, item.Committed.IsZero())
	require.True(t, item.Spent.IsZero())
	require.Equal(t, 1, item.Quantity)
	require.Equal(t, model.StatusNotStarted, item.Status)

	require.Equal(t, 1, lookups.countIn(model.DimensionOwner))
	require.Equal(t, []string{model.AuditActionCreate}, audit.actions())
}

func TestCommit_SecondRunUpdatesInPlace(t *testing.T) {
	t.Parallel()

	items, lookups, audit, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"2025": {
			{"Item", "Capex", "Owner"},
			{"Router", 1000, "Alice"},
		},
	})

	first, err := svc.Commit(context.Background(), file, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, first.Added)

	second, err := svc.Commit(context.Background(), file, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 0, second.Added)
	require.Equal(t, 1, second.Updated)
	require.Empty(t, second.Errors)

	require.Equal(t, 1, items.count())
	require.Equal(t, 1, lookups.countIn(model.DimensionOwner))
	require.Equal(t, []string{model.AuditActionCreate, model.AuditActionUpdate}, audit.actions())
}

func TestCommit_ReimportKeepsManualEntryFields(t *testing.T) {
	t.Parallel()

	items, _, _, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"2025": {
			{"Item", "Capex", "Owner"},
			{"Router", 1000, "Alice"},
		},
	})

	_, err := svc.Commit(context.Background(), file, nil, nil)
	require.NoError(t, err)

	// PR/PO numbers have no spreadsheet column; they are entered by hand
	item := items.first()
	pr, po := "PR-42", "PO-77"
	item.PRNumber = &pr
	item.PONumber = &po
	require.NoError(t, items.Update(context.Background(), &item))

	result, err := svc.Commit(context.Background(), file, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Updated)

	after := items.first()
	require.NotNil(t, after.PRNumber)
	require.Equal(t, "PR-42", *after.PRNumber)
	require.NotNil(t, after.PONumber)
	require.Equal(t, "PO-77", *after.PONumber)
}

func TestCommit_SheetYearBeatsForceYearAndColumn(t *testing.T) {
	t.Parallel()

	items, _, _, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"2027": {
			{"Item", "Year"},
			{"Router", 2025},
		},
	})

	forceYear := 2026
	result, err := svc.Commit(context.Background(), file, nil, &forceYear)
	require.NoError(t, err)
	require.Equal(t, 1, result.Added)
	require.Equal(t, 2027, items.first().Year)
}

func TestCommit_ForceYearCoversMissingColumn(t *testing.T) {
	t.Parallel()

	items, _, _, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"Budget Data": {
			{"Item", "Capex"},
			{"Router", 100},
		},
	})

	forceYear := 2026
	result, err := svc.Commit(context.Background(), file, nil, &forceYear)
	require.NoError(t, err)
	require.Equal(t, 1, result.Added)
	require.Equal(t, 2026, items.first().Year)
}

func TestCommit_RowFailuresDoNotAbortBatch(t *testing.T) {
	t.Parallel()

	items, _, _, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"Budget Data": {
			{"Item", "Year", "Capex"},
			{"No Year Item", "", 100},
			{"", 2025, 200},
			{"Good Item", 2025, 300},
		},
	})

	result, err := svc.Commit(context.Background(), file, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Added)
	require.Equal(t, 1, items.count())
	// the missing-year row errors; the nameless row is silently omitted
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "Row 2 in Budget Data")
	require.Contains(t, result.Errors[0], "Invalid year")
	require.Equal(t, "Good Item", items.first().ItemName)
}

func TestCommit_PreservesUnmappedColumns(t *testing.T) {
	t.Parallel()

	items, _, _, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"2025": {
			{"Item", "Warranty Until", "Capex"},
			{"Router", "2027-06-30", 100},
		},
	})

	result, err := svc.Commit(context.Background(), file, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Added)

	item := items.first()
	require.NotNil(t, item.ExtendedFields)
	var extended map[string]string
	require.NoError(t, json.Unmarshal([]byte(*item.ExtendedFields), &extended))
	require.Equal(t, "2027-06-30", extended["Warranty Until"])
}

func TestCommit_NormalizesEnumColumns(t *testing.T) {
	t.Parallel()

	items, _, _, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"2025": {
			{"Item", "Status", "Type", "Class"},
			{"Router", "work in progress", "00 BAU", "10 Hardware"},
		},
	})

	_, err := svc.Commit(context.Background(), file, nil, nil)
	require.NoError(t, err)

	item := items.first()
	require.Equal(t, model.StatusInProgress, item.Status)
	require.NotNil(t, item.Type)
	require.Equal(t, model.TypeBAU, *item.Type)
	require.NotNil(t, item.WorkClass)
	require.Equal(t, model.ClassHardware, *item.WorkClass)
}

func TestCommit_MappingOverrideWinsOverInference(t *testing.T) {
	t.Parallel()

	items, _, _, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"2025": {
			{"Name of Thing", "Money"},
			{"Router", 750},
		},
	})

	overrides := map[string]parser.ColumnMapping{
		"2025": {
			"Name of Thing": parser.FieldItemName,
			"Money":         parser.FieldBudget,
		},
	}
	result, err := svc.Commit(context.Background(), file, overrides, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Added)

	item := items.first()
	require.Equal(t, "Router", item.ItemName)
	require.True(t, item.Budget.Equal(decimal.NewFromInt(750)))
	require.Nil(t, item.ExtendedFields)
}

func TestCommit_UnreadableFile(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newImportFixture()
	_, err := svc.Commit(context.Background(), []byte("not a workbook"), nil, nil)
	require.ErrorIs(t, err, parser.ErrUnreadableWorkbook)
}

func TestPreview_CountsWithoutWriting(t *testing.T) {
	t.Parallel()

	items, lookups, audit, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"Budget Data": {
			{"Item", "Year", "Capex"},
			{"No Year Item", "", 100},
			{"Good Item", 2025, 300},
		},
	})

	preview, err := svc.Preview(context.Background(), file, nil)
	require.NoError(t, err)
	require.Len(t, preview.Sheets, 1)
	require.Equal(t, 2, preview.TotalRows)
	require.Equal(t, 1, preview.Sheets[0].Preview.Added)
	require.Equal(t, 1, preview.Sheets[0].Preview.Skipped)

	// preview never touches the store
	require.Equal(t, 0, items.count())
	require.Equal(t, 0, lookups.countIn(model.DimensionOwner))
	require.Empty(t, audit.actions())
}

func TestPreview_SuggestsNearMissHeaders(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"2025": {
			{"Item", "Ownr"},
			{"Router", "Alice"},
		},
	})

	preview, err := svc.Preview(context.Background(), file, nil)
	require.NoError(t, err)

	var found bool
	for _, warning := range preview.Warnings {
		if strings.Contains(warning, "Ownr") && strings.Contains(warning, "Owner") {
			found = true
		}
	}
	require.True(t, found, "expected a near-miss suggestion, got %v", preview.Warnings)
}

func TestPreview_FlagsUnknownEnumValues(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newImportFixture()
	file := buildWorkbook(t, map[string][][]any{
		"2025": {
			{"Item", "Type"},
			{"Router", "mystery"},
		},
	})

	preview, err := svc.Preview(context.Background(), file, nil)
	require.NoError(t, err)
	require.Len(t, preview.Sheets[0].Preview.Conflicts, 1)
	require.Contains(t, preview.Sheets[0].Preview.Conflicts[0], "mystery")
	// an unclassifiable enum does not block the row itself
	require.Equal(t, 1, preview.Sheets[0].Preview.Added)
}
