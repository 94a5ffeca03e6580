package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
	"github.com/m-mizutani/octopages/pkg/infra"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
)

const (
	DefaultConcurrency = 4

	// DefaultCacheRetention is how long unused cache entries survive the
	// pruning that follows every assembly.
	DefaultCacheRetention = 7 * 24 * time.Hour
)

type UseCase struct {
	clients *infra.Clients

	githubOutput   string
	cacheRetention time.Duration
	now            func() time.Time
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

// WithGitHubOutput sets the GitHub Actions output file. The output
// directory is appended to it as "path=<dir>".
func WithGitHubOutput(path string) Option {
	return func(x *UseCase) {
		x.githubOutput = path
	}
}

func WithCacheRetention(d time.Duration) Option {
	return func(x *UseCase) {
		x.cacheRetention = d
	}
}

// WithNow fixes the clock. Without it the time comes from the context, see
// logging.CtxTime.
func WithNow(now func() time.Time) Option {
	return func(x *UseCase) {
		x.now = now
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:        clients,
		cacheRetention: DefaultCacheRetention,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

func (x *UseCase) clock(ctx context.Context) time.Time {
	if x.now != nil {
		return x.now()
	}
	return logging.CtxTime(ctx)
}
