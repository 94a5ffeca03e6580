package memory

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
)

type cacheRepository struct {
	mu      sync.RWMutex
	entries map[string]*model.CachedResponse
}

// New creates an in-memory response cache that lives as long as the process.
func New() interfaces.HTTPCache {
	return &cacheRepository{
		entries: make(map[string]*model.CachedResponse),
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) (*model.CachedResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[key]
	if !ok {
		return nil, goerr.Wrap(types.ErrNotFound, "cache entry not found", goerr.V("key", key))
	}
	return copyResponse(entry), nil
}

func (r *cacheRepository) Put(ctx context.Context, resp *model.CachedResponse) error {
	if resp == nil || resp.Key == "" {
		return goerr.Wrap(types.ErrInvalidOption, "cache entry has no key")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[resp.Key] = copyResponse(resp)
	return nil
}

func (r *cacheRepository) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	for key, entry := range r.entries {
		if entry.StoredAt.Before(olderThan) {
			delete(r.entries, key)
			n++
		}
	}
	return n, nil
}

func (r *cacheRepository) Close() error {
	return nil
}

func copyResponse(src *model.CachedResponse) *model.CachedResponse {
	dst := *src
	if src.Header != nil {
		dst.Header = src.Header.Clone()
	} else {
		dst.Header = http.Header{}
	}
	dst.Body = append([]byte(nil), src.Body...)
	return &dst
}
