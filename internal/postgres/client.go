package postgres

import (
	"context"
)

// IClient is the narrow database surface services depend on. Repositories
// take the concrete *DB; services only ever need transaction scoping, which
// keeps them testable with an in-memory client.
type IClient interface {
	// WithTx executes fn within a transaction; the transaction rides on the
	// returned context and is committed or rolled back based on fn's error
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ IClient = (*DB)(nil)
