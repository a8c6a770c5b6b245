package testutil

import (
	"context"

	"github.com/gymflow/gymflow/internal/domain/catalog"
	ierr "github.com/gymflow/gymflow/internal/errors"
)

// InMemoryCatalogStore implements catalog.Repository
type InMemoryCatalogStore struct {
	*InMemoryStore[*catalog.Service]
}

func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		InMemoryStore: NewInMemoryStore[*catalog.Service](),
	}
}

// Add seeds a catalog service for test setup
func (s *InMemoryCatalogStore) Add(ctx context.Context, svc *catalog.Service) error {
	return s.InMemoryStore.Create(ctx, svc.ID, svc)
}

func (s *InMemoryCatalogStore) Get(ctx context.Context, id string) (*catalog.Service, error) {
	svc, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("service with ID %s was not found", id).
			WithHint("the catalog service does not exist").
			Mark(ierr.ErrNotFound)
	}
	return svc, nil
}

func (s *InMemoryCatalogStore) List(ctx context.Context) ([]*catalog.Service, error) {
	return s.InMemoryStore.List(ctx, nil, nil, func(i, j *catalog.Service) bool {
		return i.Name < j.Name
	})
}
