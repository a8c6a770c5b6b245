package testutil

import (
	"context"

	"github.com/gymflow/gymflow/internal/domain/staff"
	ierr "github.com/gymflow/gymflow/internal/errors"
)

// InMemoryStaffStore implements staff.Repository
type InMemoryStaffStore struct {
	*InMemoryStore[*staff.Staff]
}

func NewInMemoryStaffStore() *InMemoryStaffStore {
	return &InMemoryStaffStore{
		InMemoryStore: NewInMemoryStore[*staff.Staff](),
	}
}

// Add seeds a staff member for test setup
func (s *InMemoryStaffStore) Add(ctx context.Context, st *staff.Staff) error {
	return s.InMemoryStore.Create(ctx, st.ID, st)
}

func (s *InMemoryStaffStore) Get(ctx context.Context, id string) (*staff.Staff, error) {
	st, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("staff with ID %s was not found", id).
			WithHint("the staff member does not exist").
			Mark(ierr.ErrNotFound)
	}
	return st, nil
}
