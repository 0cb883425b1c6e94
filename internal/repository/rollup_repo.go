package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tzakkar/UTECBUDGET/internal/model"

	"gorm.io/gorm"
)

// ErrUnknownRollupGroup rejects group-by fields outside the whitelist.
var ErrUnknownRollupGroup = errors.New("unknown rollup grouping")

// rollupGroups whitelists user-supplied group-by fields.
var rollupGroups = map[string]string{
	"year":       "year",
	"quarter":    "quarter",
	"status":     "status",
	"category":   "category",
	"owner":      "owner_id",
	"department": "department_id",
}

type RollupRepository interface {
	// Aggregate sums budget figures across items, bucketed by groupBy.
	// Zero year/quarter means no filter on that field.
	Aggregate(ctx context.Context, groupBy string, year, quarter int) ([]model.RollupRow, error)
}

type rollupRepository struct {
	db *gorm.DB
}

func NewRollupRepository(db *gorm.DB) RollupRepository {
	return &rollupRepository{db: db}
}

func (r *rollupRepository) Aggregate(ctx context.Context, groupBy string, year, quarter int) ([]model.RollupRow, error) {
	col, ok := rollupGroups[groupBy]
	if !ok {
		return nil, ErrUnknownRollupGroup
	}

	query := GetDB(ctx, r.db).Model(&model.BudgetItem{})
	if year != 0 {
		query = query.Where("year = ?", year)
	}
	if quarter != 0 {
		query = query.Where("quarter = ?", quarter)
	}

	selects := fmt.Sprintf(`%s,
		COUNT(*) AS item_count,
		COALESCE(SUM(budget), 0) AS allocated,
		COALESCE(SUM(committed), 0) AS committed,
		COALESCE(SUM(spent), 0) AS spent,
		COALESCE(SUM(remaining), 0) AS remaining`, col)

	var rows []model.RollupRow
	if err := query.Select(selects).Group(col).Order(col).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
