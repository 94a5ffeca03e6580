package repository

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrCorruptEntry is returned when a stored entry cannot be decoded.
	// Callers treat it like a cache miss.
	ErrCorruptEntry = goerr.New("corrupt cache entry")
)
