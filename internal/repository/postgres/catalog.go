package postgres

import (
	"context"
	"database/sql"

	"github.com/gymflow/gymflow/internal/cache"
	"github.com/gymflow/gymflow/internal/domain/catalog"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/postgres"
)

type catalogRepository struct {
	db     *postgres.DB
	cache  cache.Cache
	logger *logger.Logger
}

// NewCatalogRepository creates a new postgres-backed service catalog
func NewCatalogRepository(db *postgres.DB, c cache.Cache, logger *logger.Logger) catalog.Repository {
	return &catalogRepository{db: db, cache: c, logger: logger}
}

func (r *catalogRepository) Get(ctx context.Context, id string) (*catalog.Service, error) {
	key := cache.Key(cache.PrefixService, id)
	if cached, ok := r.cache.Get(ctx, key); ok {
		if svc, ok := cached.(*catalog.Service); ok {
			return svc, nil
		}
	}

	var svc catalog.Service
	err := r.db.GetQuerier(ctx).GetContext(ctx, &svc,
		`SELECT * FROM services WHERE id = $1 AND status != 'deleted'`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("service not found").
				WithHintf("service %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get service").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, key, &svc, cache.DefaultExpiration)
	return &svc, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]*catalog.Service, error) {
	var services []*catalog.Service
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &services,
		`SELECT * FROM services WHERE status = 'published' ORDER BY name`)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list services").
			Mark(ierr.ErrDatabase)
	}
	return services, nil
}
