package service

import (
	"context"
	"strings"
	"sync"

	"github.com/tzakkar/UTECBUDGET/internal/model"
	"github.com/tzakkar/UTECBUDGET/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeItemRepo is an in-memory BudgetItemRepository. It copies on both write
// and read so tests cannot alias stored rows.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]model.BudgetItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[uuid.UUID]model.BudgetItem{}}
}

func (f *fakeItemRepo) Create(_ context.Context, item *model.BudgetItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *model.BudgetItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BudgetItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (f *fakeItemRepo) FindByNaturalKey(_ context.Context, year int, itemName string, ownerID, costCenterID *uuid.UUID) (*model.BudgetItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.Year != year || item.ItemName != itemName {
			continue
		}
		if !uuidPtrEqual(item.OwnerID, ownerID) || !uuidPtrEqual(item.CostCenterID, costCenterID) {
			continue
		}
		found := item
		return &found, nil
	}
	return nil, nil
}

func (f *fakeItemRepo) List(_ context.Context, _ repository.ItemFilters, _, _ int) ([]model.BudgetItem, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]model.BudgetItem, 0, len(f.items))
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, int64(len(items)), nil
}

func (f *fakeItemRepo) SetReplacesItem(_ context.Context, id uuid.UUID, replacesItemID *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil
	}
	item.ReplacesItemID = replacesItemID
	f.items[id] = item
	return nil
}

func (f *fakeItemRepo) SetReplacedBy(_ context.Context, id uuid.UUID, replacedByID *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil
	}
	item.ReplacedByID = replacedByID
	f.items[id] = item
	return nil
}

func (f *fakeItemRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

func (f *fakeItemRepo) get(id uuid.UUID) model.BudgetItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id]
}

func (f *fakeItemRepo) first() model.BudgetItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		return item
	}
	return model.BudgetItem{}
}

// fakeLookupRepo resolves by (dimension, trimmed name), creating ids on first
// reference, and counts how many entities exist per dimension.
type fakeLookupRepo struct {
	mu      sync.Mutex
	entries map[string]map[string]uuid.UUID
}

func newFakeLookupRepo() *fakeLookupRepo {
	return &fakeLookupRepo{entries: map[string]map[string]uuid.UUID{}}
}

func (f *fakeLookupRepo) FindOrCreate(_ context.Context, dimension, nameOrCode string) (uuid.UUID, error) {
	name := strings.TrimSpace(nameOrCode)
	if name == "" {
		return uuid.Nil, repository.ErrEmptyLookupName
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	byName, ok := f.entries[dimension]
	if !ok {
		byName = map[string]uuid.UUID{}
		f.entries[dimension] = byName
	}
	if id, ok := byName[name]; ok {
		return id, nil
	}
	id := uuid.New()
	byName[name] = id
	return id, nil
}

func (f *fakeLookupRepo) List(_ context.Context, dimension, _ string) ([]repository.LookupEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.LookupEntry
	for name, id := range f.entries[dimension] {
		out = append(out, repository.LookupEntry{ID: id, Name: name})
	}
	return out, nil
}

func (f *fakeLookupRepo) countIn(dimension string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries[dimension])
}

// fakeAuditRepo appends in memory.
type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (f *fakeAuditRepo) Append(_ context.Context, entry *model.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, entityType, entityID string, _, _ int) ([]model.AuditLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AuditLog
	for _, entry := range f.entries {
		if entityType != "" && entry.EntityType != entityType {
			continue
		}
		if entityID != "" && entry.EntityID != entityID {
			continue
		}
		out = append(out, entry)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAuditRepo) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.entries))
	for _, entry := range f.entries {
		out = append(out, entry.Action)
	}
	return out
}

// fakeTxManager runs the callback without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}
