package service

import (
	"context"

	"github.com/tzakkar/UTECBUDGET/internal/model"
	"github.com/tzakkar/UTECBUDGET/internal/repository"
)

type RollupService interface {
	Rollup(ctx context.Context, groupBy string, year, quarter int) ([]model.RollupRow, error)
}

type rollupService struct {
	rollups repository.RollupRepository
}

func NewRollupService(rollups repository.RollupRepository) RollupService {
	return &rollupService{rollups: rollups}
}

func (s *rollupService) Rollup(ctx context.Context, groupBy string, year, quarter int) ([]model.RollupRow, error) {
	if groupBy == "" {
		groupBy = "year"
	}
	rows, err := s.rollups.Aggregate(ctx, groupBy, year, quarter)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Allocated > 0 {
			rows[i].ExecutionPct = rows[i].Spent / rows[i].Allocated * 100
		}
	}
	return rows, nil
}
