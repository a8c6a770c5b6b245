package postgres

import (
	"context"
	"database/sql"

	"github.com/gymflow/gymflow/internal/cache"
	"github.com/gymflow/gymflow/internal/domain/staff"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/postgres"
)

type staffRepository struct {
	db     *postgres.DB
	cache  cache.Cache
	logger *logger.Logger
}

// NewStaffRepository creates a new postgres-backed staff directory
func NewStaffRepository(db *postgres.DB, c cache.Cache, logger *logger.Logger) staff.Repository {
	return &staffRepository{db: db, cache: c, logger: logger}
}

func (r *staffRepository) Get(ctx context.Context, id string) (*staff.Staff, error) {
	key := cache.Key(cache.PrefixStaff, id)
	if cached, ok := r.cache.Get(ctx, key); ok {
		if s, ok := cached.(*staff.Staff); ok {
			return s, nil
		}
	}

	var s staff.Staff
	err := r.db.GetQuerier(ctx).GetContext(ctx, &s,
		`SELECT * FROM staff WHERE id = $1 AND status != 'deleted'`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("staff not found").
				WithHintf("staff %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get staff").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, key, &s, cache.DefaultExpiration)
	return &s, nil
}
