package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrConfiguration aborts the run before any output is written.
	ErrConfiguration = goerr.New("configuration error")

	// ErrAuth aborts the run.
	ErrAuth = goerr.New("authentication error")

	// ErrTransient is a retryable upstream failure. After retries are
	// exhausted only the affected item is degraded.
	ErrTransient = goerr.New("transient upstream error")

	// ErrDownloadCorruption marks an archive that must not be unpacked.
	ErrDownloadCorruption = goerr.New("download corruption")

	// ErrFilesystem indicates a violated layout assumption such as two
	// units sanitizing to the same directory.
	ErrFilesystem = goerr.New("filesystem error")

	ErrInvalidOption   = goerr.New("invalid option")
	ErrNotFound        = goerr.New("not found")
	ErrMalformedRecord = goerr.New("malformed upstream record")
)
