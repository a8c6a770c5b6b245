package member

import (
	"context"
)

// Repository resolves member references for invoice attribution
type Repository interface {
	// Get retrieves a member by ID
	Get(ctx context.Context, id string) (*Member, error)
}
