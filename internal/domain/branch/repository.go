package branch

import (
	"context"
)

// Repository defines the interface for branch profile lookups
type Repository interface {
	// Get retrieves a branch by ID
	Get(ctx context.Context, id string) (*Branch, error)
}
