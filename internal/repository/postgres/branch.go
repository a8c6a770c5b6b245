package postgres

import (
	"context"
	"database/sql"

	"github.com/gymflow/gymflow/internal/cache"
	"github.com/gymflow/gymflow/internal/domain/branch"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/postgres"
)

type branchRepository struct {
	db     *postgres.DB
	cache  cache.Cache
	logger *logger.Logger
}

// NewBranchRepository creates a new postgres-backed branch profile store
func NewBranchRepository(db *postgres.DB, c cache.Cache, logger *logger.Logger) branch.Repository {
	return &branchRepository{db: db, cache: c, logger: logger}
}

func (r *branchRepository) Get(ctx context.Context, id string) (*branch.Branch, error) {
	key := cache.Key(cache.PrefixBranch, id)
	if cached, ok := r.cache.Get(ctx, key); ok {
		if b, ok := cached.(*branch.Branch); ok {
			return b, nil
		}
	}

	var b branch.Branch
	err := r.db.GetQuerier(ctx).GetContext(ctx, &b,
		`SELECT * FROM branches WHERE id = $1 AND status != 'deleted'`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("branch not found").
				WithHintf("branch %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get branch").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, key, &b, cache.DefaultExpiration)
	return &b, nil
}
