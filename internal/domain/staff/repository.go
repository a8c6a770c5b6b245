package staff

import (
	"context"
)

// Repository resolves staff references for sales-rep attribution
type Repository interface {
	// Get retrieves a staff record by ID
	Get(ctx context.Context, id string) (*Staff, error)
}
