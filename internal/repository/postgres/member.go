package postgres

import (
	"context"
	"database/sql"

	"github.com/gymflow/gymflow/internal/cache"
	"github.com/gymflow/gymflow/internal/domain/member"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/postgres"
)

type memberRepository struct {
	db     *postgres.DB
	cache  cache.Cache
	logger *logger.Logger
}

// NewMemberRepository creates a new postgres-backed member directory with a
// read-through cache; member profiles change rarely and are read on every
// invoice render.
func NewMemberRepository(db *postgres.DB, c cache.Cache, logger *logger.Logger) member.Repository {
	return &memberRepository{db: db, cache: c, logger: logger}
}

func (r *memberRepository) Get(ctx context.Context, id string) (*member.Member, error) {
	key := cache.Key(cache.PrefixMember, id)
	if cached, ok := r.cache.Get(ctx, key); ok {
		if m, ok := cached.(*member.Member); ok {
			return m, nil
		}
	}

	var m member.Member
	err := r.db.GetQuerier(ctx).GetContext(ctx, &m,
		`SELECT * FROM members WHERE id = $1 AND status != 'deleted'`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("member not found").
				WithHintf("member %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get member").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, key, &m, cache.DefaultExpiration)
	return &m, nil
}
