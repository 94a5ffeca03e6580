package sqlite

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/repository"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const defaultPoolSize = 4

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA temp_store=MEMORY",
}

const schema = `CREATE TABLE IF NOT EXISTS http_cache (
	key        TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	status     INTEGER NOT NULL,
	header     TEXT NOT NULL,
	body       BLOB,
	stored_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS http_cache_stored_at ON http_cache (stored_at);`

var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithZeroFrames(true))
	if err != nil {
		panic("zstd encoder: " + err.Error())
	}
	decoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("zstd decoder: " + err.Error())
	}
}

type cacheRepository struct {
	pool *sqlitex.Pool
	path string
}

// New opens (or creates) the response cache database at path. Bodies are
// stored zstd-compressed.
func New(ctx context.Context, path string) (interfaces.HTTPCache, error) {
	if path == "" {
		return nil, goerr.Wrap(types.ErrConfiguration, "cache path is required")
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize: defaultPoolSize,
		PrepareConn: func(conn *sqlite.Conn) error {
			for _, pragma := range pragmas {
				if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
					return goerr.Wrap(err, "failed to apply pragma", goerr.V("pragma", pragma))
				}
			}
			return nil
		},
	})
	if err != nil {
		return nil, goerr.Wrap(types.ErrFilesystem, "failed to open cache database",
			goerr.V("path", path), goerr.V("error", err.Error()))
	}

	repo := &cacheRepository{pool: pool, path: path}
	if err := repo.migrate(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	logging.From(ctx).Debug("cache database opened", slog.String("path", path))
	return repo, nil
}

func (r *cacheRepository) migrate(ctx context.Context) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to take connection")
	}
	defer r.pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to create cache schema",
			goerr.V("path", r.path), goerr.V("error", err.Error()))
	}
	return nil
}

func (r *cacheRepository) Get(ctx context.Context, key string) (*model.CachedResponse, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to take connection")
	}
	defer r.pool.Put(conn)

	var (
		found              bool
		entry              model.CachedResponse
		headerJSON         string
		compressed         []byte
		storedAtUnixMillis int64
	)

	err = sqlitex.Execute(conn,
		`SELECT key, url, status, header, body, stored_at FROM http_cache WHERE key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				entry.Key = stmt.ColumnText(0)
				entry.URL = stmt.ColumnText(1)
				entry.StatusCode = stmt.ColumnInt(2)
				headerJSON = stmt.ColumnText(3)
				compressed = make([]byte, stmt.ColumnLen(4))
				stmt.ColumnBytes(4, compressed)
				storedAtUnixMillis = stmt.ColumnInt64(5)
				return nil
			},
		})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query cache", goerr.V("key", key))
	}
	if !found {
		return nil, goerr.Wrap(types.ErrNotFound, "cache entry not found", goerr.V("key", key))
	}

	if err := json.Unmarshal([]byte(headerJSON), &entry.Header); err != nil {
		return nil, goerr.Wrap(repository.ErrCorruptEntry, "failed to decode header",
			goerr.V("key", key), goerr.V("error", err.Error()))
	}
	if entry.Header == nil {
		entry.Header = http.Header{}
	}

	body, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, goerr.Wrap(repository.ErrCorruptEntry, "failed to decompress body",
			goerr.V("key", key), goerr.V("error", err.Error()))
	}
	entry.Body = body
	entry.StoredAt = time.UnixMilli(storedAtUnixMillis)

	return &entry, nil
}

func (r *cacheRepository) Put(ctx context.Context, resp *model.CachedResponse) error {
	if resp == nil || resp.Key == "" {
		return goerr.Wrap(types.ErrInvalidOption, "cache entry has no key")
	}

	header := resp.Header
	if header == nil {
		header = http.Header{}
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return goerr.Wrap(err, "failed to encode header", goerr.V("key", resp.Key))
	}
	compressed := encoder.EncodeAll(resp.Body, nil)

	conn, err := r.pool.Take(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to take connection")
	}
	defer r.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO http_cache (key, url, status, header, body, stored_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   url = excluded.url,
		   status = excluded.status,
		   header = excluded.header,
		   body = excluded.body,
		   stored_at = excluded.stored_at`,
		&sqlitex.ExecOptions{
			Args: []any{resp.Key, resp.URL, resp.StatusCode, string(headerJSON), compressed, resp.StoredAt.UnixMilli()},
		})
	if err != nil {
		return goerr.Wrap(err, "failed to store cache entry", goerr.V("key", resp.Key))
	}
	return nil
}

func (r *cacheRepository) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to take connection")
	}
	defer r.pool.Put(conn)

	err = sqlitex.Execute(conn, `DELETE FROM http_cache WHERE stored_at < ?`,
		&sqlitex.ExecOptions{Args: []any{olderThan.UnixMilli()}})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to prune cache")
	}
	return conn.Changes(), nil
}

func (r *cacheRepository) Close() error {
	if err := r.pool.Close(); err != nil {
		return goerr.Wrap(err, "failed to close cache database", goerr.V("path", r.path))
	}
	return nil
}
