package testutil

import (
	"context"

	"github.com/gymflow/gymflow/internal/domain/member"
	ierr "github.com/gymflow/gymflow/internal/errors"
)

// InMemoryMemberStore implements member.Repository
type InMemoryMemberStore struct {
	*InMemoryStore[*member.Member]
}

func NewInMemoryMemberStore() *InMemoryMemberStore {
	return &InMemoryMemberStore{
		InMemoryStore: NewInMemoryStore[*member.Member](),
	}
}

// Add seeds a member for test setup
func (s *InMemoryMemberStore) Add(ctx context.Context, m *member.Member) error {
	return s.InMemoryStore.Create(ctx, m.ID, m)
}

func (s *InMemoryMemberStore) Get(ctx context.Context, id string) (*member.Member, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("member with ID %s was not found", id).
			WithHint("the member does not exist").
			Mark(ierr.ErrNotFound)
	}
	return m, nil
}
