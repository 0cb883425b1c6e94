package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tzakkar/UTECBUDGET/internal/model"
	"github.com/tzakkar/UTECBUDGET/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound       = errors.New("budget item not found")
	ErrYearOutOfRange     = errors.New("year must be between 2025 and 2028")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidType        = errors.New("invalid type")
	ErrInvalidSubType     = errors.New("invalid sub type")
	ErrInvalidWorkClass   = errors.New("invalid work class")
	ErrLinkedItemNotFound = errors.New("linked budget item not found")
)

// NullableUUID distinguishes an absent JSON field from an explicit null, so
// PATCH can clear a replacement link without clobbering it on unrelated edits.
type NullableUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

func (n NullableUUID) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

type CreateItemRequest struct {
	Year      int  `json:"year" binding:"required"`
	Quarter   *int `json:"quarter"`
	Type      *string `json:"type"`
	SubType   *string `json:"subType"`
	WorkClass *string `json:"workClass"`

	ItemName    string  `json:"itemName" binding:"required"`
	Category    *string `json:"category"`
	SubCategory *string `json:"subCategory"`
	Model       *string `json:"model"`

	OwnerID      *uuid.UUID `json:"ownerId"`
	DepartmentID *uuid.UUID `json:"departmentId"`
	LocationID   *uuid.UUID `json:"locationId"`
	VendorID     *uuid.UUID `json:"vendorId"`
	ProgramID    *uuid.UUID `json:"programId"`
	ProjectID    *uuid.UUID `json:"projectId"`
	CostCenterID *uuid.UUID `json:"costCenterId"`
	GLID         *uuid.UUID `json:"glId"`

	Quantity  *int             `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unitCost"`
	Capex     *decimal.Decimal `json:"capex"`
	Opex      *decimal.Decimal `json:"opex"`
	Budget    *decimal.Decimal `json:"budget"`
	Committed *decimal.Decimal `json:"committed"`
	Spent     *decimal.Decimal `json:"spent"`

	Status          *string `json:"status"`
	PercentComplete *int    `json:"percentComplete"`
	PRNumber        *string `json:"prNumber"`
	PONumber        *string `json:"poNumber"`
	Notes           *string `json:"notes"`
}

type UpdateItemRequest struct {
	Year      *int    `json:"year"`
	Quarter   *int    `json:"quarter"`
	Type      *string `json:"type"`
	SubType   *string `json:"subType"`
	WorkClass *string `json:"workClass"`

	ItemName    *string `json:"itemName"`
	Category    *string `json:"category"`
	SubCategory *string `json:"subCategory"`
	Model       *string `json:"model"`

	OwnerID      *uuid.UUID `json:"ownerId"`
	DepartmentID *uuid.UUID `json:"departmentId"`
	LocationID   *uuid.UUID `json:"locationId"`
	VendorID     *uuid.UUID `json:"vendorId"`
	ProgramID    *uuid.UUID `json:"programId"`
	ProjectID    *uuid.UUID `json:"projectId"`
	CostCenterID *uuid.UUID `json:"costCenterId"`
	GLID         *uuid.UUID `json:"glId"`

	Quantity  *int             `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unitCost"`
	Capex     *decimal.Decimal `json:"capex"`
	Opex      *decimal.Decimal `json:"opex"`
	Budget    *decimal.Decimal `json:"budget"`
	Committed *decimal.Decimal `json:"committed"`
	Spent     *decimal.Decimal `json:"spent"`

	Status          *string `json:"status"`
	PercentComplete *int    `json:"percentComplete"`
	PRNumber        *string `json:"prNumber"`
	PONumber        *string `json:"poNumber"`
	Notes           *string `json:"notes"`

	ReplacesItemID NullableUUID `json:"replacesItemId"`
	ReplacedByID   NullableUUID `json:"replacedById"`
}

// ItemNotifier pushes change events to connected clients. A nil notifier
// disables broadcasting.
type ItemNotifier interface {
	BroadcastItemChange(action string, item *model.BudgetItem)
}

type BudgetService interface {
	Create(ctx context.Context, actor string, req CreateItemRequest) (*model.BudgetItem, error)
	Get(ctx context.Context, id uuid.UUID) (*model.BudgetItem, error)
	List(ctx context.Context, filters repository.ItemFilters, page, limit int) ([]model.BudgetItem, int64, error)
	Update(ctx context.Context, actor string, id uuid.UUID, req UpdateItemRequest) (*model.BudgetItem, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
}

type budgetService struct {
	items    repository.BudgetItemRepository
	audit    repository.AuditRepository
	tx       repository.TransactionManager
	notifier ItemNotifier
}

func NewBudgetService(
	items repository.BudgetItemRepository,
	audit repository.AuditRepository,
	tx repository.TransactionManager,
	notifier ItemNotifier,
) BudgetService {
	return &budgetService{items: items, audit: audit, tx: tx, notifier: notifier}
}

func (s *budgetService) Create(ctx context.Context, actor string, req CreateItemRequest) (*model.BudgetItem, error) {
	if req.Year < model.MinYear || req.Year > model.MaxYear {
		return nil, ErrYearOutOfRange
	}
	if err := validateEnums(req.Status, req.Type, req.SubType, req.WorkClass); err != nil {
		return nil, err
	}

	budget := req.Budget
	if budget == nil {
		sum := decimal.Zero
		if req.Capex != nil {
			sum = sum.Add(*req.Capex)
		}
		if req.Opex != nil {
			sum = sum.Add(*req.Opex)
		}
		if sum.IsPositive() {
			budget = &sum
		}
	}
	committed := decimal.Zero
	if req.Committed != nil {
		committed = *req.Committed
	}
	spent := decimal.Zero
	if req.Spent != nil {
		spent = *req.Spent
	}
	var remaining *decimal.Decimal
	if budget != nil {
		diff := budget.Sub(spent)
		remaining = &diff
	}
	quantity := 1
	if req.Quantity != nil && *req.Quantity > 0 {
		quantity = *req.Quantity
	}
	status := model.StatusNotStarted
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}
	percentComplete := 0
	if req.PercentComplete != nil {
		percentComplete = *req.PercentComplete
	}

	item := &model.BudgetItem{
		Year:            req.Year,
		Quarter:         req.Quarter,
		Type:            req.Type,
		SubType:         req.SubType,
		WorkClass:       req.WorkClass,
		ItemName:        req.ItemName,
		Category:        req.Category,
		SubCategory:     req.SubCategory,
		Model:           req.Model,
		OwnerID:         req.OwnerID,
		DepartmentID:    req.DepartmentID,
		LocationID:      req.LocationID,
		VendorID:        req.VendorID,
		ProgramID:       req.ProgramID,
		ProjectID:       req.ProjectID,
		CostCenterID:    req.CostCenterID,
		GLID:            req.GLID,
		Quantity:        quantity,
		UnitCost:        req.UnitCost,
		Capex:           req.Capex,
		Opex:            req.Opex,
		Budget:          budget,
		Committed:       committed,
		Spent:           spent,
		Remaining:       remaining,
		Status:          status,
		PercentComplete: percentComplete,
		PRNumber:        req.PRNumber,
		PONumber:        req.PONumber,
		Notes:           req.Notes,
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	if err := s.audit.Append(ctx, &model.AuditLog{
		Actor:      actor,
		EntityType: model.EntityTypeBudgetItem,
		EntityID:   item.ID.String(),
		Action:     model.AuditActionCreate,
		Post:       snapshotJSON(item),
	}); err != nil {
		return nil, err
	}

	s.broadcast(model.AuditActionCreate, item)
	return item, nil
}

func (s *budgetService) Get(ctx context.Context, id uuid.UUID) (*model.BudgetItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *budgetService) List(ctx context.Context, filters repository.ItemFilters, page, limit int) ([]model.BudgetItem, int64, error) {
	return s.items.List(ctx, filters, page, limit)
}

func (s *budgetService) Update(ctx context.Context, actor string, id uuid.UUID, req UpdateItemRequest) (*model.BudgetItem, error) {
	if req.Year != nil && (*req.Year < model.MinYear || *req.Year > model.MaxYear) {
		return nil, ErrYearOutOfRange
	}
	if err := validateEnums(req.Status, req.Type, req.SubType, req.WorkClass); err != nil {
		return nil, err
	}

	var updated *model.BudgetItem
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.items.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		pre := snapshotJSON(item)

		applyItemUpdate(item, req)

		// remaining tracks budget and spend; it is never set directly
		if req.Budget != nil || req.Spent != nil || req.Capex != nil || req.Opex != nil {
			if item.Budget != nil {
				diff := item.Budget.Sub(item.Spent)
				item.Remaining = &diff
			} else {
				item.Remaining = nil
			}
		}

		if req.ReplacedByID.Set {
			if err := s.relinkReplacedBy(txCtx, item, req.ReplacedByID.Value); err != nil {
				return err
			}
		}
		if req.ReplacesItemID.Set {
			if err := s.relinkReplaces(txCtx, item, req.ReplacesItemID.Value); err != nil {
				return err
			}
		}

		if err := s.items.Update(txCtx, item); err != nil {
			return err
		}
		if err := s.audit.Append(txCtx, &model.AuditLog{
			Actor:      actor,
			EntityType: model.EntityTypeBudgetItem,
			EntityID:   item.ID.String(),
			Action:     model.AuditActionUpdate,
			Pre:        pre,
			Post:       snapshotJSON(item),
		}); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(model.AuditActionUpdate, updated)
	return updated, nil
}

func (s *budgetService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	var deleted *model.BudgetItem
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.items.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		// sever both sides so no peer keeps a dangling link
		if item.ReplacedByID != nil {
			if err := s.items.SetReplacesItem(txCtx, *item.ReplacedByID, nil); err != nil {
				return err
			}
		}
		if item.ReplacesItemID != nil {
			if err := s.items.SetReplacedBy(txCtx, *item.ReplacesItemID, nil); err != nil {
				return err
			}
		}

		if err := s.items.Delete(txCtx, item.ID); err != nil {
			return err
		}
		if err := s.audit.Append(txCtx, &model.AuditLog{
			Actor:      actor,
			EntityType: model.EntityTypeBudgetItem,
			EntityID:   item.ID.String(),
			Action:     model.AuditActionDelete,
			Pre:        snapshotJSON(item),
		}); err != nil {
			return err
		}
		deleted = item
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcast(model.AuditActionDelete, deleted)
	return nil
}

// relinkReplacedBy points item.ReplacedByID at target and keeps both the old
// and new peer's ReplacesItemID consistent with it.
func (s *budgetService) relinkReplacedBy(ctx context.Context, item *model.BudgetItem, target *uuid.UUID) error {
	if uuidPtrEqual(item.ReplacedByID, target) {
		return nil
	}
	if item.ReplacedByID != nil {
		if err := s.items.SetReplacesItem(ctx, *item.ReplacedByID, nil); err != nil {
			return err
		}
	}
	if target != nil {
		if _, err := s.items.FindByID(ctx, *target); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLinkedItemNotFound
			}
			return err
		}
		if err := s.items.SetReplacesItem(ctx, *target, &item.ID); err != nil {
			return err
		}
	}
	item.ReplacedByID = target
	return nil
}

// relinkReplaces is the mirror of relinkReplacedBy for the other direction.
func (s *budgetService) relinkReplaces(ctx context.Context, item *model.BudgetItem, target *uuid.UUID) error {
	if uuidPtrEqual(item.ReplacesItemID, target) {
		return nil
	}
	if item.ReplacesItemID != nil {
		if err := s.items.SetReplacedBy(ctx, *item.ReplacesItemID, nil); err != nil {
			return err
		}
	}
	if target != nil {
		if _, err := s.items.FindByID(ctx, *target); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLinkedItemNotFound
			}
			return err
		}
		if err := s.items.SetReplacedBy(ctx, *target, &item.ID); err != nil {
			return err
		}
	}
	item.ReplacesItemID = target
	return nil
}

func (s *budgetService) broadcast(action string, item *model.BudgetItem) {
	if s.notifier != nil {
		s.notifier.BroadcastItemChange(action, item)
	}
}

func applyItemUpdate(item *model.BudgetItem, req UpdateItemRequest) {
	if req.Year != nil {
		item.Year = *req.Year
	}
	if req.Quarter != nil {
		item.Quarter = req.Quarter
	}
	if req.Type != nil {
		item.Type = req.Type
	}
	if req.SubType != nil {
		item.SubType = req.SubType
	}
	if req.WorkClass != nil {
		item.WorkClass = req.WorkClass
	}
	if req.ItemName != nil {
		item.ItemName = *req.ItemName
	}
	if req.Category != nil {
		item.Category = req.Category
	}
	if req.SubCategory != nil {
		item.SubCategory = req.SubCategory
	}
	if req.Model != nil {
		item.Model = req.Model
	}
	if req.OwnerID != nil {
		item.OwnerID = req.OwnerID
	}
	if req.DepartmentID != nil {
		item.DepartmentID = req.DepartmentID
	}
	if req.LocationID != nil {
		item.LocationID = req.LocationID
	}
	if req.VendorID != nil {
		item.VendorID = req.VendorID
	}
	if req.ProgramID != nil {
		item.ProgramID = req.ProgramID
	}
	if req.ProjectID != nil {
		item.ProjectID = req.ProjectID
	}
	if req.CostCenterID != nil {
		item.CostCenterID = req.CostCenterID
	}
	if req.GLID != nil {
		item.GLID = req.GLID
	}
	if req.Quantity != nil && *req.Quantity > 0 {
		item.Quantity = *req.Quantity
	}
	if req.UnitCost != nil {
		item.UnitCost = req.UnitCost
	}
	if req.Capex != nil {
		item.Capex = req.Capex
	}
	if req.Opex != nil {
		item.Opex = req.Opex
	}
	if req.Budget != nil {
		item.Budget = req.Budget
	}
	if req.Committed != nil {
		item.Committed = *req.Committed
	}
	if req.Spent != nil {
		item.Spent = *req.Spent
	}
	if req.Status != nil && *req.Status != "" {
		item.Status = *req.Status
	}
	if req.PercentComplete != nil {
		item.PercentComplete = *req.PercentComplete
	}
	if req.PRNumber != nil {
		item.PRNumber = req.PRNumber
	}
	if req.PONumber != nil {
		item.PONumber = req.PONumber
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
}

func validateEnums(status, typ, subType, workClass *string) error {
	if status != nil && *status != "" && !model.ValidStatus(*status) {
		return ErrInvalidStatus
	}
	if typ != nil && *typ != "" && !model.ValidType(*typ) {
		return ErrInvalidType
	}
	if subType != nil && *subType != "" && !model.ValidSubType(*subType) {
		return ErrInvalidSubType
	}
	if workClass != nil && *workClass != "" && !model.ValidWorkClass(*workClass) {
		return ErrInvalidWorkClass
	}
	return nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
