package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/tzakkar/UTECBUDGET/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newBudgetFixture() (*fakeItemRepo, *fakeAuditRepo, BudgetService) {
	items := newFakeItemRepo()
	audit := newFakeAuditRepo()
	return items, audit, NewBudgetService(items, audit, fakeTxManager{}, nil)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestCreate_DerivesBudgetAndRemaining(t *testing.T) {
	t.Parallel()

	_, audit, svc := newBudgetFixture()
	item, err := svc.Create(context.Background(), "alice", CreateItemRequest{
		Year:     2025,
		ItemName: "Router",
		Capex:    decPtr(1000),
		Opex:     decPtr(500),
	})
	require.NoError(t, err)
	require.True(t, item.Budget.Equal(decimal.NewFromInt(1500)))
	require.True(t, item.Remaining.Equal(decimal.NewFromInt(1500)))
	require.True(t, item.Committed.IsZero())
	require.True(t, item.Spent.IsZero())
	require.Equal(t, 1, item.Quantity)
	require.Equal(t, model.StatusNotStarted, item.Status)
	require.Equal(t, []string{model.AuditActionCreate}, audit.actions())
}

func TestCreate_NonPositiveSumLeavesBudgetNull(t *testing.T) {
	t.Parallel()

	_, _, svc := newBudgetFixture()
	item, err := svc.Create(context.Background(), "alice", CreateItemRequest{
		Year:     2025,
		ItemName: "Writeoff",
		Capex:    decPtr(-100),
		Opex:     decPtr(100),
	})
	require.NoError(t, err)
	require.Nil(t, item.Budget)
	require.Nil(t, item.Remaining)
}

func TestCreate_RejectsYearOutOfRange(t *testing.T) {
	t.Parallel()

	_, _, svc := newBudgetFixture()
	_, err := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2024, ItemName: "Router"})
	require.ErrorIs(t, err, ErrYearOutOfRange)
}

func TestCreate_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	_, _, svc := newBudgetFixture()
	status := "DONE"
	_, err := svc.Create(context.Background(), "alice", CreateItemRequest{
		Year: 2025, ItemName: "Router", Status: &status,
	})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdate_RecomputesRemainingFromSpent(t *testing.T) {
	t.Parallel()

	_, _, svc := newBudgetFixture()
	item, err := svc.Create(context.Background(), "alice", CreateItemRequest{
		Year: 2025, ItemName: "Router", Budget: decPtr(1000),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "alice", item.ID, UpdateItemRequest{
		Spent: decPtr(400),
	})
	require.NoError(t, err)
	require.True(t, updated.Remaining.Equal(decimal.NewFromInt(600)))
}

func TestUpdate_LinkStaysSymmetric(t *testing.T) {
	t.Parallel()

	items, _, svc := newBudgetFixture()
	old, err := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2025, ItemName: "Old Switch"})
	require.NoError(t, err)
	replacement, err := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2026, ItemName: "New Switch"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "alice", old.ID, UpdateItemRequest{
		ReplacedByID: NullableUUID{Set: true, Value: &replacement.ID},
	})
	require.NoError(t, err)

	require.Equal(t, replacement.ID, *items.get(old.ID).ReplacedByID)
	require.Equal(t, old.ID, *items.get(replacement.ID).ReplacesItemID)
}

func TestUpdate_RepointingLinkClearsOldPeer(t *testing.T) {
	t.Parallel()

	items, _, svc := newBudgetFixture()
	old, _ := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2025, ItemName: "Old Switch"})
	first, _ := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2026, ItemName: "First Candidate"})
	second, _ := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2026, ItemName: "Second Candidate"})

	_, err := svc.Update(context.Background(), "alice", old.ID, UpdateItemRequest{
		ReplacedByID: NullableUUID{Set: true, Value: &first.ID},
	})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), "alice", old.ID, UpdateItemRequest{
		ReplacedByID: NullableUUID{Set: true, Value: &second.ID},
	})
	require.NoError(t, err)

	require.Nil(t, items.get(first.ID).ReplacesItemID)
	require.Equal(t, old.ID, *items.get(second.ID).ReplacesItemID)
	require.Equal(t, second.ID, *items.get(old.ID).ReplacedByID)
}

func TestUpdate_ExplicitNullClearsBothSides(t *testing.T) {
	t.Parallel()

	items, _, svc := newBudgetFixture()
	old, _ := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2025, ItemName: "Old Switch"})
	replacement, _ := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2026, ItemName: "New Switch"})
	_, err := svc.Update(context.Background(), "alice", old.ID, UpdateItemRequest{
		ReplacedByID: NullableUUID{Set: true, Value: &replacement.ID},
	})
	require.NoError(t, err)

	// clients clear the link with an explicit JSON null
	var req UpdateItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"replacedById": null}`), &req))
	require.True(t, req.ReplacedByID.Set)
	require.Nil(t, req.ReplacedByID.Value)

	_, err = svc.Update(context.Background(), "alice", old.ID, req)
	require.NoError(t, err)
	require.Nil(t, items.get(old.ID).ReplacedByID)
	require.Nil(t, items.get(replacement.ID).ReplacesItemID)
}

func TestUpdate_AbsentLinkFieldLeavesLinkAlone(t *testing.T) {
	t.Parallel()

	items, _, svc := newBudgetFixture()
	old, _ := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2025, ItemName: "Old Switch"})
	replacement, _ := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2026, ItemName: "New Switch"})
	_, err := svc.Update(context.Background(), "alice", old.ID, UpdateItemRequest{
		ReplacedByID: NullableUUID{Set: true, Value: &replacement.ID},
	})
	require.NoError(t, err)

	var req UpdateItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"notes": "edited"}`), &req))
	_, err = svc.Update(context.Background(), "alice", old.ID, req)
	require.NoError(t, err)

	require.Equal(t, replacement.ID, *items.get(old.ID).ReplacedByID)
	require.Equal(t, old.ID, *items.get(replacement.ID).ReplacesItemID)
}

func TestUpdate_MissingLinkTargetFails(t *testing.T) {
	t.Parallel()

	_, _, svc := newBudgetFixture()
	old, _ := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2025, ItemName: "Old Switch"})

	ghost := uuid.New()
	_, err := svc.Update(context.Background(), "alice", old.ID, UpdateItemRequest{
		ReplacedByID: NullableUUID{Set: true, Value: &ghost},
	})
	require.ErrorIs(t, err, ErrLinkedItemNotFound)
}

func TestDelete_SeversPeerLinks(t *testing.T) {
	t.Parallel()

	items, audit, svc := newBudgetFixture()
	old, _ := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2025, ItemName: "Old Switch"})
	replacement, _ := svc.Create(context.Background(), "alice", CreateItemRequest{Year: 2026, ItemName: "New Switch"})
	_, err := svc.Update(context.Background(), "alice", old.ID, UpdateItemRequest{
		ReplacedByID: NullableUUID{Set: true, Value: &replacement.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "alice", old.ID))
	require.Equal(t, 1, items.count())
	require.Nil(t, items.get(replacement.ID).ReplacesItemID)

	actions := audit.actions()
	require.Equal(t, model.AuditActionDelete, actions[len(actions)-1])
}

func TestDelete_UnknownItem(t *testing.T) {
	t.Parallel()

	_, _, svc := newBudgetFixture()
	err := svc.Delete(context.Background(), "alice", uuid.New())
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestGet_UnknownItem(t *testing.T) {
	t.Parallel()

	_, _, svc := newBudgetFixture()
	_, err := svc.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrItemNotFound)
}
