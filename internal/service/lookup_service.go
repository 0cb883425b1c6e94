package service

import (
	"context"

	"github.com/tzakkar/UTECBUDGET/internal/repository"

	"github.com/google/uuid"
)

type LookupService interface {
	List(ctx context.Context, dimension, search string) ([]repository.LookupEntry, error)
	// Resolve finds or creates a lookup entity by name, for manual entry
	// paths that accept free-text dimension values.
	Resolve(ctx context.Context, dimension, name string) (uuid.UUID, error)
}

type lookupService struct {
	lookups repository.LookupRepository
}

func NewLookupService(lookups repository.LookupRepository) LookupService {
	return &lookupService{lookups: lookups}
}

func (s *lookupService) List(ctx context.Context, dimension, search string) ([]repository.LookupEntry, error) {
	return s.lookups.List(ctx, dimension, search)
}

func (s *lookupService) Resolve(ctx context.Context, dimension, name string) (uuid.UUID, error) {
	return s.lookups.FindOrCreate(ctx, dimension, name)
}
