package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/tzakkar/UTECBUDGET/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEmptyLookupName rejects blank (after trim) lookup references.
var ErrEmptyLookupName = errors.New("lookup name required")

// ErrUnknownDimension rejects dimension names outside the eight known ones.
var ErrUnknownDimension = errors.New("unknown lookup dimension")

// LookupEntry is the dimension-agnostic view of a lookup entity.
type LookupEntry struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code,omitempty"`
}

type LookupRepository interface {
	// FindOrCreate resolves a raw name (or, for CostCenter/GL, name or code)
	// to an entity id, creating the entity on first reference. Creation uses
	// ON CONFLICT DO NOTHING against the unique name index, so two resolvers
	// racing on the same new name converge on a single row.
	FindOrCreate(ctx context.Context, dimension, nameOrCode string) (uuid.UUID, error)
	List(ctx context.Context, dimension, search string) ([]LookupEntry, error)
}

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) FindOrCreate(ctx context.Context, dimension, nameOrCode string) (uuid.UUID, error) {
	name := strings.TrimSpace(nameOrCode)
	if name == "" {
		return uuid.Nil, ErrEmptyLookupName
	}
	db := GetDB(ctx, r.db)

	switch dimension {
	case model.DimensionOwner:
		entity := model.Owner{Name: name}
		return findOrCreateNamed(db, &model.Owner{}, &entity, name, func(e *model.Owner) uuid.UUID { return e.ID })
	case model.DimensionDepartment:
		entity := model.Department{Name: name}
		return findOrCreateNamed(db, &model.Department{}, &entity, name, func(e *model.Department) uuid.UUID { return e.ID })
	case model.DimensionLocation:
		entity := model.Location{Name: name}
		return findOrCreateNamed(db, &model.Location{}, &entity, name, func(e *model.Location) uuid.UUID { return e.ID })
	case model.DimensionVendor:
		entity := model.Vendor{Name: name}
		return findOrCreateNamed(db, &model.Vendor{}, &entity, name, func(e *model.Vendor) uuid.UUID { return e.ID })
	case model.DimensionProgram:
		entity := model.Program{Name: name}
		return findOrCreateNamed(db, &model.Program{}, &entity, name, func(e *model.Program) uuid.UUID { return e.ID })
	case model.DimensionProject:
		entity := model.Project{Name: name}
		return findOrCreateNamed(db, &model.Project{}, &entity, name, func(e *model.Project) uuid.UUID { return e.ID })
	case model.DimensionCostCenter:
		entity := model.CostCenter{Name: name, Code: name}
		return findOrCreateCoded(db, &model.CostCenter{}, &entity, name, func(e *model.CostCenter) uuid.UUID { return e.ID })
	case model.DimensionGL:
		entity := model.GL{Name: name, Code: name}
		return findOrCreateCoded(db, &model.GL{}, &entity, name, func(e *model.GL) uuid.UUID { return e.ID })
	}
	return uuid.Nil, ErrUnknownDimension
}

// findOrCreateNamed resolves a name-keyed lookup entity: find by exact name,
// else insert with conflict-do-nothing and re-find if the insert lost a race.
func findOrCreateNamed[T any](db *gorm.DB, existing, entity *T, name string, id func(*T) uuid.UUID) (uuid.UUID, error) {
	err := db.Where("name = ?", name).First(existing).Error
	if err == nil {
		return id(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(entity).Error; err != nil {
		return uuid.Nil, err
	}
	if id(entity) != uuid.Nil {
		return id(entity), nil
	}
	// lost the insert race; the winner's row exists now
	if err := db.Where("name = ?", name).First(existing).Error; err != nil {
		return uuid.Nil, err
	}
	return id(existing), nil
}

// findOrCreateCoded is findOrCreateNamed for CostCenter/GL, which match on
// name or code and carry code = name when created from an import cell.
func findOrCreateCoded[T any](db *gorm.DB, existing, entity *T, name string, id func(*T) uuid.UUID) (uuid.UUID, error) {
	err := db.Where("name = ? OR code = ?", name, name).First(existing).Error
	if err == nil {
		return id(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(entity).Error; err != nil {
		return uuid.Nil, err
	}
	if id(entity) != uuid.Nil {
		return id(entity), nil
	}
	if err := db.Where("name = ? OR code = ?", name, name).First(existing).Error; err != nil {
		return uuid.Nil, err
	}
	return id(existing), nil
}

func (r *lookupRepository) List(ctx context.Context, dimension, search string) ([]LookupEntry, error) {
	db := GetDB(ctx, r.db)

	switch dimension {
	case model.DimensionOwner:
		return listNamed[model.Owner](db, search, func(e model.Owner) LookupEntry { return LookupEntry{ID: e.ID, Name: e.Name} })
	case model.DimensionDepartment:
		return listNamed[model.Department](db, search, func(e model.Department) LookupEntry { return LookupEntry{ID: e.ID, Name: e.Name} })
	case model.DimensionLocation:
		return listNamed[model.Location](db, search, func(e model.Location) LookupEntry { return LookupEntry{ID: e.ID, Name: e.Name} })
	case model.DimensionVendor:
		return listNamed[model.Vendor](db, search, func(e model.Vendor) LookupEntry { return LookupEntry{ID: e.ID, Name: e.Name} })
	case model.DimensionProgram:
		return listNamed[model.Program](db, search, func(e model.Program) LookupEntry { return LookupEntry{ID: e.ID, Name: e.Name} })
	case model.DimensionProject:
		return listNamed[model.Project](db, search, func(e model.Project) LookupEntry { return LookupEntry{ID: e.ID, Name: e.Name} })
	case model.DimensionCostCenter:
		return listNamed[model.CostCenter](db, search, func(e model.CostCenter) LookupEntry {
			return LookupEntry{ID: e.ID, Name: e.Name, Code: e.Code}
		})
	case model.DimensionGL:
		return listNamed[model.GL](db, search, func(e model.GL) LookupEntry {
			return LookupEntry{ID: e.ID, Name: e.Name, Code: e.Code}
		})
	}
	return nil, ErrUnknownDimension
}

func listNamed[T any](db *gorm.DB, search string, toEntry func(T) LookupEntry) ([]LookupEntry, error) {
	var rows []T
	query := db.Order("name")
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]LookupEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toEntry(row))
	}
	return entries, nil
}
