package testutil

import (
	"context"

	"github.com/gymflow/gymflow/internal/domain/branch"
	ierr "github.com/gymflow/gymflow/internal/errors"
)

// InMemoryBranchStore implements branch.Repository
type InMemoryBranchStore struct {
	*InMemoryStore[*branch.Branch]
}

func NewInMemoryBranchStore() *InMemoryBranchStore {
	return &InMemoryBranchStore{
		InMemoryStore: NewInMemoryStore[*branch.Branch](),
	}
}

// Add seeds a branch for test setup
func (s *InMemoryBranchStore) Add(ctx context.Context, b *branch.Branch) error {
	return s.InMemoryStore.Create(ctx, b.ID, b)
}

func (s *InMemoryBranchStore) Get(ctx context.Context, id string) (*branch.Branch, error) {
	b, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("branch with ID %s was not found", id).
			WithHint("the branch does not exist").
			Mark(ierr.ErrNotFound)
	}
	return b, nil
}
