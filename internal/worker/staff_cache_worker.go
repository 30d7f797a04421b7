package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/repository"
)

// StartStaffCacheWarmer refreshes the staff directory once right away and then
// every interval until ctx ends. A repo implementing
// repository.StaffCacheRefresher has its cache entry rewritten on each tick;
// any other repo is simply read. With an interval below the cache TTL the entry
// stays populated for as long as the store answers. The returned channel closes
// when the worker stops.
func StartStaffCacheWarmer(ctx context.Context, repo repository.StaffRepository, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	stopped := make(chan struct{})
	if repo == nil || interval <= 0 {
		close(stopped)
		return stopped
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			warmStaff(ctx, repo, logger)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return stopped
}

func warmStaff(ctx context.Context, repo repository.StaffRepository, logger *zap.Logger) {
	load := repo.List
	if refresher, ok := repo.(repository.StaffCacheRefresher); ok {
		load = refresher.Refresh
	}
	staff, err := load(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("staff cache warm failed", zap.Error(err))
		}
		return
	}
	logger.Debug("staff cache warmed", zap.Int("staff", len(staff)))
}
