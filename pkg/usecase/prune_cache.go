package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
)

// PruneCache deletes cached API responses stored more than olderThan ago
// and returns how many were deleted.
func (x *UseCase) PruneCache(ctx context.Context, olderThan time.Duration) (int, error) {
	cache := x.clients.HTTPCache()
	if cache == nil {
		return 0, goerr.Wrap(types.ErrConfiguration, "HTTP cache is disabled")
	}
	if olderThan <= 0 {
		return 0, goerr.Wrap(types.ErrInvalidOption, "retention must be positive", goerr.V("older_than", olderThan))
	}

	threshold := x.clock(ctx).Add(-olderThan)
	n, err := cache.Prune(ctx, threshold)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to prune HTTP cache", goerr.V("threshold", threshold))
	}

	logging.From(ctx).Info("HTTP cache pruned", slog.Int("deleted", n), slog.Time("threshold", threshold))
	return n, nil
}
