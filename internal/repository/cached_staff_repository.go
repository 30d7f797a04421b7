package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/domain"
)

// StaffCacheKey is the Redis key holding the serialized staff directory.
const StaffCacheKey = "roster:staff"

// StaffCacheRefresher is implemented by cached staff repositories. Refresh
// reloads the directory from the underlying store and rewrites the cache entry
// with a fresh TTL.
type StaffCacheRefresher interface {
	Refresh(ctx context.Context) ([]domain.StaffMember, error)
}

type cachedStaffRepository struct {
	next   StaffRepository
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedStaffRepository wraps next with a Redis read-through cache. Redis
// failures are logged and the call falls through to next.
func NewCachedStaffRepository(next StaffRepository, client redis.Cmdable, ttl time.Duration, logger *zap.Logger) StaffRepository {
	if client == nil || ttl <= 0 {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedStaffRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (r *cachedStaffRepository) List(ctx context.Context) ([]domain.StaffMember, error) {
	raw, err := r.client.Get(ctx, StaffCacheKey).Bytes()
	switch {
	case err == nil:
		var rows []staffRow
		if jerr := json.Unmarshal(raw, &rows); jerr != nil {
			r.logger.Warn("discarding corrupt staff cache entry", zap.Error(jerr))
			break
		}
		staff := make([]domain.StaffMember, 0, len(rows))
		for _, row := range rows {
			staff = append(staff, row.toDomain())
		}
		return staff, nil
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("staff cache read failed", zap.Error(err))
	}
	return r.Refresh(ctx)
}

func (r *cachedStaffRepository) Refresh(ctx context.Context) ([]domain.StaffMember, error) {
	staff, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]staffRow, 0, len(staff))
	for _, m := range staff {
		rows = append(rows, staffRowFrom(m))
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		r.logger.Warn("failed to encode staff cache entry", zap.Error(err))
		return staff, nil
	}
	if err := r.client.Set(ctx, StaffCacheKey, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("staff cache write failed", zap.Error(err))
	}
	return staff, nil
}
