package httpcache

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
	"github.com/m-mizutani/octopages/pkg/utils/safe"
	"github.com/zeebo/blake3"
)

const (
	DefaultTTL = 60 * time.Second

	// Responses larger than this are passed through without being stored.
	maxBodySize = 32 << 20

	headerFromCache = "X-Octopages-Cache"
)

// Transport serves GET responses from a store. Fresh entries (younger than
// the TTL) are returned without a request; stale entries are revalidated
// with If-None-Match and reused on 304. Artifact listings carry expiry
// state and are always revalidated. Archive downloads are never cached.
type Transport struct {
	base  http.RoundTripper
	store interfaces.HTTPCache
	ttl   time.Duration
	now   func() time.Time
}

func New(base http.RoundTripper, store interfaces.HTTPCache, ttl time.Duration) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		base:  base,
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Key is the request signature: method, URL and Accept header.
func Key(req *http.Request) string {
	sum := blake3.Sum256([]byte(req.Method + "\n" + req.URL.String() + "\n" + req.Header.Get("Accept")))
	return hex.EncodeToString(sum[:])
}

func cacheable(req *http.Request) bool {
	if req.Method != http.MethodGet || req.Header.Get("Range") != "" {
		return false
	}
	if strings.Contains(req.Header.Get("Accept"), "application/octet-stream") {
		return false
	}
	return !strings.HasSuffix(req.URL.Path, "/zip")
}

func alwaysRevalidate(req *http.Request) bool {
	return strings.Contains(req.URL.Path, "/artifacts")
}

func (x *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !cacheable(req) {
		return x.base.RoundTrip(req)
	}

	ctx := req.Context()
	logger := logging.From(ctx)
	key := Key(req)

	cached, err := x.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			logger.Warn("failed to read HTTP cache", slog.Any("error", err))
		}
		cached = nil
	}

	if cached != nil && !alwaysRevalidate(req) && x.now().Sub(cached.StoredAt) < x.ttl {
		logger.Debug("serving response from cache", slog.String("url", req.URL.String()))
		return toResponse(req, cached, "hit"), nil
	}

	outReq := req
	if cached != nil && cached.ETag() != "" {
		outReq = req.Clone(ctx)
		outReq.Header.Set("If-None-Match", cached.ETag())
	}

	resp, err := x.base.RoundTrip(outReq)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusNotModified && cached != nil:
		_, _ = io.Copy(io.Discard, resp.Body)
		safe.Close(resp.Body)

		// Rate limit headers of the fresh response are more accurate.
		if cached.Header == nil {
			cached.Header = http.Header{}
		}
		for k, v := range resp.Header {
			cached.Header[k] = v
		}
		cached.StoredAt = x.now()
		x.put(req, cached)

		logger.Debug("revalidated cached response", slog.String("url", req.URL.String()))
		return toResponse(req, cached, "revalidated"), nil

	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
		if err != nil {
			safe.Close(resp.Body)
			return nil, goerr.Wrap(err, "failed to read response body", goerr.V("url", req.URL.String()))
		}

		if len(body) > maxBodySize {
			resp.Body = &multiReadCloser{Reader: io.MultiReader(bytes.NewReader(body), resp.Body), closer: resp.Body}
			return resp, nil
		}
		safe.Close(resp.Body)

		x.put(req, &model.CachedResponse{
			Key:        key,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
			Body:       body,
			StoredAt:   x.now(),
		})

		resp.Body = io.NopCloser(bytes.NewReader(body))
		return resp, nil

	default:
		return resp, nil
	}
}

func (x *Transport) put(req *http.Request, entry *model.CachedResponse) {
	if err := x.store.Put(req.Context(), entry); err != nil {
		logging.From(req.Context()).Warn("failed to write HTTP cache",
			slog.String("url", entry.URL),
			slog.Any("error", err),
		)
	}
}

func toResponse(req *http.Request, cached *model.CachedResponse, state string) *http.Response {
	header := cached.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	header.Set(headerFromCache, state)

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", cached.StatusCode, http.StatusText(cached.StatusCode)),
		StatusCode:    cached.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(cached.Body)),
		ContentLength: int64(len(cached.Body)),
		Request:       req,
	}
}

type multiReadCloser struct {
	io.Reader
	closer io.Closer
}

func (x *multiReadCloser) Close() error {
	return x.closer.Close()
}
