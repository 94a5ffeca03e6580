package model

import (
	"net/http"
	"time"
)

// CachedResponse is an HTTP response stored by the response cache.
type CachedResponse struct {
	Key        string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
	StoredAt   time.Time
}

func (x *CachedResponse) ETag() string {
	if x.Header == nil {
		return ""
	}
	return x.Header.Get("ETag")
}
