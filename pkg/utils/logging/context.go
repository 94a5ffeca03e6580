package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/octopages/pkg/domain/types"
)

type (
	ctxLoggerKey    struct{}
	ctxRequestIDKey struct{}
	ctxTimeKey      struct{}
)

// CtxRequestID returns the ID of the current run or HTTP request, creating
// and storing a new one when ctx has none.
func CtxRequestID(ctx context.Context) (types.RequestID, context.Context) {
	if id, ok := ctx.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		return id, ctx
	}

	id := types.NewRequestID()
	return id, context.WithValue(ctx, ctxRequestIDKey{}, id)
}

func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From falls back to the process-wide logger.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return defaultLogger
}

type TimeFunc func() time.Time

// CtxTime is the clock of the run. It is the wall clock unless a test
// replaced it with CtxWithTime.
func CtxTime(ctx context.Context) time.Time {
	if now, ok := ctx.Value(ctxTimeKey{}).(TimeFunc); ok {
		return now()
	}
	return time.Now()
}

func CtxWithTime(ctx context.Context, now TimeFunc) context.Context {
	return context.WithValue(ctx, ctxTimeKey{}, now)
}
