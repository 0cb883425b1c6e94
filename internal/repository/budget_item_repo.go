package repository

import (
	"context"
	"errors"

	"github.com/tzakkar/UTECBUDGET/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemFilters narrows List queries; zero values mean "no filter".
type ItemFilters struct {
	Year         int
	Quarter      int
	Status       string
	Type         string
	SubType      string
	WorkClass    string
	Category     string
	OwnerID      string
	DepartmentID string
	LocationID   string
	VendorID     string
	ProgramID    string
	ProjectID    string
	Search       string
	SortBy       string
	SortOrder    string
}

type BudgetItemRepository interface {
	Create(ctx context.Context, item *model.BudgetItem) error
	Update(ctx context.Context, item *model.BudgetItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BudgetItem, error)
	// FindByNaturalKey matches (year, itemName, ownerId, costCenterId) with
	// null-equality: a nil owner matches only rows whose owner is also null.
	// Returns (nil, nil) when no item matches.
	FindByNaturalKey(ctx context.Context, year int, itemName string, ownerID, costCenterID *uuid.UUID) (*model.BudgetItem, error)
	List(ctx context.Context, filters ItemFilters, page, limit int) ([]model.BudgetItem, int64, error)
	// SetReplacesItem / SetReplacedBy write one side of the symmetric
	// replacement link without touching any other column.
	SetReplacesItem(ctx context.Context, id uuid.UUID, replacesItemID *uuid.UUID) error
	SetReplacedBy(ctx context.Context, id uuid.UUID, replacedByID *uuid.UUID) error
}

type budgetItemRepository struct {
	db *gorm.DB
}

func NewBudgetItemRepository(db *gorm.DB) BudgetItemRepository {
	return &budgetItemRepository{db: db}
}

func (r *budgetItemRepository) Create(ctx context.Context, item *model.BudgetItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

// Update persists the full row, including fields being cleared to null.
func (r *budgetItemRepository) Update(ctx context.Context, item *model.BudgetItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *budgetItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.BudgetItem{}).Error
}

func (r *budgetItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BudgetItem, error) {
	var item model.BudgetItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *budgetItemRepository) FindByNaturalKey(ctx context.Context, year int, itemName string, ownerID, costCenterID *uuid.UUID) (*model.BudgetItem, error) {
	query := GetDB(ctx, r.db).Where("year = ? AND item_name = ?", year, itemName)
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	} else {
		query = query.Where("owner_id IS NULL")
	}
	if costCenterID != nil {
		query = query.Where("cost_center_id = ?", *costCenterID)
	} else {
		query = query.Where("cost_center_id IS NULL")
	}

	var item model.BudgetItem
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// sortColumns whitelists user-supplied sort fields.
var sortColumns = map[string]string{
	"year":       "year",
	"item_name":  "item_name",
	"status":     "status",
	"budget":     "budget",
	"spent":      "spent",
	"remaining":  "remaining",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func applyItemFilters(query *gorm.DB, filters ItemFilters) *gorm.DB {
	if filters.Year != 0 {
		query = query.Where("year = ?", filters.Year)
	}
	if filters.Quarter != 0 {
		query = query.Where("quarter = ?", filters.Quarter)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.SubType != "" {
		query = query.Where("sub_type = ?", filters.SubType)
	}
	if filters.WorkClass != "" {
		query = query.Where("work_class = ?", filters.WorkClass)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.OwnerID != "" {
		query = query.Where("owner_id = ?", filters.OwnerID)
	}
	if filters.DepartmentID != "" {
		query = query.Where("department_id = ?", filters.DepartmentID)
	}
	if filters.LocationID != "" {
		query = query.Where("location_id = ?", filters.LocationID)
	}
	if filters.VendorID != "" {
		query = query.Where("vendor_id = ?", filters.VendorID)
	}
	if filters.ProgramID != "" {
		query = query.Where("program_id = ?", filters.ProgramID)
	}
	if filters.ProjectID != "" {
		query = query.Where("project_id = ?", filters.ProjectID)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("item_name ILIKE ? OR category ILIKE ? OR sub_category ILIKE ? OR notes ILIKE ?",
			like, like, like, like)
	}
	return query
}

func (r *budgetItemRepository) List(ctx context.Context, filters ItemFilters, page, limit int) ([]model.BudgetItem, int64, error) {
	var items []model.BudgetItem
	var total int64

	db := GetDB(ctx, r.db)
	if err := applyItemFilters(db.Model(&model.BudgetItem{}), filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "year DESC"
	if col, ok := sortColumns[filters.SortBy]; ok {
		direction := "DESC"
		if filters.SortOrder == "asc" {
			direction = "ASC"
		}
		order = col + " " + direction
	}

	offset := (page - 1) * limit
	query := applyItemFilters(db.Model(&model.BudgetItem{}), filters)
	if err := query.Order(order).Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *budgetItemRepository) SetReplacesItem(ctx context.Context, id uuid.UUID, replacesItemID *uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.BudgetItem{}).
		Where("id = ?", id).
		Update("replaces_item_id", replacesItemID).Error
}

func (r *budgetItemRepository) SetReplacedBy(ctx context.Context, id uuid.UUID, replacedByID *uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.BudgetItem{}).
		Where("id = ?", id).
		Update("replaced_by_id", replacedByID).Error
}
