package testhelper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
)

// TestAll runs all test cases for HTTPCache
// This is the main entry point for testing any HTTPCache implementation
func TestAll(t *testing.T, cache interfaces.HTTPCache) {
	t.Run("PutAndGet", func(t *testing.T) {
		TestPutAndGet(t, cache)
	})
	t.Run("NotFound", func(t *testing.T) {
		TestNotFound(t, cache)
	})
	t.Run("Overwrite", func(t *testing.T) {
		TestOverwrite(t, cache)
	})
	t.Run("LargeBody", func(t *testing.T) {
		TestLargeBody(t, cache)
	})
	t.Run("Prune", func(t *testing.T) {
		TestPrune(t, cache)
	})
	t.Run("ConcurrentWriters", func(t *testing.T) {
		TestConcurrentWriters(t, cache)
	})
}

func newEntry(body string, storedAt time.Time) *model.CachedResponse {
	key := fmt.Sprintf("key-%s", uuid.New().String())
	return &model.CachedResponse{
		Key:        key,
		URL:        "https://api.github.com/repos/octo/game/branches?page=1",
		StatusCode: http.StatusOK,
		Header: http.Header{
			"Etag":         []string{`W/"` + key + `"`},
			"Content-Type": []string{"application/json; charset=utf-8"},
		},
		Body:     []byte(body),
		StoredAt: storedAt,
	}
}

// TestPutAndGet stores an entry and reads it back unchanged
func TestPutAndGet(t *testing.T, cache interfaces.HTTPCache) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	entry := newEntry(`[{"name":"main"}]`, now)

	gt.NoError(t, cache.Put(ctx, entry))

	got, err := cache.Get(ctx, entry.Key)
	gt.NoError(t, err)
	gt.V(t, got.Key).Equal(entry.Key)
	gt.V(t, got.URL).Equal(entry.URL)
	gt.V(t, got.StatusCode).Equal(http.StatusOK)
	gt.V(t, got.ETag()).Equal(entry.ETag())
	gt.V(t, got.Header.Get("Content-Type")).Equal("application/json; charset=utf-8")
	gt.V(t, string(got.Body)).Equal(`[{"name":"main"}]`)
	gt.True(t, got.StoredAt.Equal(now))

	// Mutating the returned entry must not change the stored one
	got.Body[0] = 'X'
	got.Header.Set("Etag", "changed")
	again, err := cache.Get(ctx, entry.Key)
	gt.NoError(t, err)
	gt.V(t, string(again.Body)).Equal(`[{"name":"main"}]`)
	gt.V(t, again.ETag()).Equal(entry.ETag())
}

// TestNotFound checks that a missing key maps to types.ErrNotFound
func TestNotFound(t *testing.T, cache interfaces.HTTPCache) {
	_, err := cache.Get(context.Background(), fmt.Sprintf("missing-%s", uuid.New().String()))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

// TestOverwrite checks last writer wins per key
func TestOverwrite(t *testing.T, cache interfaces.HTTPCache) {
	ctx := context.Background()
	entry := newEntry("first", time.Now())
	gt.NoError(t, cache.Put(ctx, entry))

	entry.Body = []byte("second")
	entry.StatusCode = http.StatusOK
	gt.NoError(t, cache.Put(ctx, entry))

	got, err := cache.Get(ctx, entry.Key)
	gt.NoError(t, err)
	gt.V(t, string(got.Body)).Equal("second")
}

// TestLargeBody stores a body that compresses well and one that does not
func TestLargeBody(t *testing.T, cache interfaces.HTTPCache) {
	ctx := context.Background()

	repetitive := make([]byte, 256*1024)
	for i := range repetitive {
		repetitive[i] = byte('a' + i%7)
	}
	random := []byte(uuid.New().String() + uuid.New().String())

	for _, body := range [][]byte{repetitive, random, {}} {
		entry := newEntry("", time.Now())
		entry.Body = body
		gt.NoError(t, cache.Put(ctx, entry))

		got, err := cache.Get(ctx, entry.Key)
		gt.NoError(t, err)
		gt.V(t, len(got.Body)).Equal(len(body))
		gt.True(t, string(got.Body) == string(body))
	}
}

// TestPrune removes only entries older than the threshold
func TestPrune(t *testing.T, cache interfaces.HTTPCache) {
	ctx := context.Background()
	now := time.Now()

	old := newEntry("old", now.Add(-8*24*time.Hour))
	fresh := newEntry("fresh", now.Add(-time.Hour))
	gt.NoError(t, cache.Put(ctx, old))
	gt.NoError(t, cache.Put(ctx, fresh))

	n, err := cache.Prune(ctx, now.Add(-7*24*time.Hour))
	gt.NoError(t, err)
	gt.True(t, n >= 1)

	_, err = cache.Get(ctx, old.Key)
	gt.True(t, errors.Is(err, types.ErrNotFound))

	got, err := cache.Get(ctx, fresh.Key)
	gt.NoError(t, err)
	gt.V(t, string(got.Body)).Equal("fresh")
}

// TestConcurrentWriters writes the same key from several goroutines; any
// complete value may win but the entry must stay readable
func TestConcurrentWriters(t *testing.T, cache interfaces.HTTPCache) {
	ctx := context.Background()
	base := newEntry("", time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry := *base
			entry.Body = []byte(fmt.Sprintf("writer-%d", i))
			if err := cache.Put(ctx, &entry); err != nil {
				t.Errorf("concurrent put failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := cache.Get(ctx, base.Key)
	gt.NoError(t, err)
	gt.S(t, string(got.Body)).Contains("writer-")
}
