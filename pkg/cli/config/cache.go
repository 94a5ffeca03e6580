package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/infra/httpcache"
	"github.com/m-mizutani/octopages/pkg/repository/memory"
	"github.com/m-mizutani/octopages/pkg/repository/sqlite"
	"github.com/urfave/cli/v3"
)

type Cache struct {
	backend string
	path    string
	ttl     time.Duration
}

func (x *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cache-backend",
			Usage:       "HTTP cache backend [sqlite|memory|none]",
			Category:    "Cache",
			Sources:     cli.EnvVars("OCTOPAGES_CACHE_BACKEND"),
			Value:       string(types.CacheBackendSQLite),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "cache-path",
			Usage:       "SQLite cache file (default: <user cache dir>/octopages/http.db)",
			Category:    "Cache",
			Sources:     cli.EnvVars("OCTOPAGES_CACHE_PATH"),
			Destination: &x.path,
		},
		&cli.DurationFlag{
			Name:        "cache-ttl",
			Usage:       "Age after which cached API responses are revalidated",
			Category:    "Cache",
			Sources:     cli.EnvVars("OCTOPAGES_CACHE_TTL"),
			Value:       httpcache.DefaultTTL,
			Destination: &x.ttl,
		},
	}
}

func (x *Cache) TTL() time.Duration {
	return x.ttl
}

// New opens the configured backend. It returns nil without error for the
// "none" backend.
func (x *Cache) New(ctx context.Context) (interfaces.HTTPCache, error) {
	switch types.CacheBackend(x.backend) {
	case types.CacheBackendNone:
		return nil, nil

	case types.CacheBackendMemory:
		return memory.New(), nil

	case types.CacheBackendSQLite, "":
		dbPath := x.path
		if dbPath == "" {
			dir, err := os.UserCacheDir()
			if err != nil {
				return nil, goerr.Wrap(types.ErrConfiguration, "cannot determine user cache directory, set --cache-path",
					goerr.V("error", err.Error()))
			}
			dbPath = filepath.Join(dir, "octopages", "http.db")
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, goerr.Wrap(types.ErrFilesystem, "failed to create cache directory",
				goerr.V("path", dbPath), goerr.V("error", err.Error()))
		}
		return sqlite.New(ctx, dbPath)

	default:
		return nil, goerr.Wrap(types.ErrInvalidOption, "unknown cache backend", goerr.V("backend", x.backend))
	}
}

func (x *Cache) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Backend", x.backend),
		slog.String("Path", x.path),
		slog.Duration("TTL", x.ttl),
	)
}
