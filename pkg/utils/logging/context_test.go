package logging_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
)

func TestLoggerInContext(t *testing.T) {
	t.Run("stored logger is returned", func(t *testing.T) {
		logger := slog.Default().With("run_id", "abc")
		ctx := logging.With(context.Background(), logger)
		gt.V(t, logging.From(ctx)).Equal(logger)
	})

	t.Run("falls back to the default logger", func(t *testing.T) {
		logger := logging.From(context.Background())
		gt.V(t, logger.Handler()).Equal(logging.Default().Handler())
	})
}

func TestCtxRequestID(t *testing.T) {
	id, ctx := logging.CtxRequestID(context.Background())
	gt.V(t, len(id)).Equal(36)

	again, ctx2 := logging.CtxRequestID(ctx)
	gt.V(t, again).Equal(id)
	gt.True(t, ctx2 == ctx)

	other, _ := logging.CtxRequestID(context.Background())
	gt.V(t, other).NotEqual(id)
}

func TestCtxTime(t *testing.T) {
	t.Run("wall clock by default", func(t *testing.T) {
		before := time.Now()
		now := logging.CtxTime(context.Background())
		gt.False(t, now.Before(before))
	})

	t.Run("replaced clock", func(t *testing.T) {
		fixed := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)
		ctx := logging.CtxWithTime(context.Background(), func() time.Time { return fixed })
		gt.True(t, logging.CtxTime(ctx).Equal(fixed))
	})
}
