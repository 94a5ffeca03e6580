package safe

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/m-mizutani/octopages/pkg/utils/logging"
)

// Close closes the resource and logs the error if any. io.EOF and
// fs.ErrClosed are ignored.
func Close(closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, fs.ErrClosed) {
			return
		}
		logging.Default().Warn("Fail to close resource", slog.Any("error", err))
	}
}

// Remove removes the file. A missing file is not an error, since temporary
// files are often renamed into place before cleanup runs.
func Remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Default().Warn("Fail to remove file", slog.String("path", path), slog.Any("error", err))
	}
}

// RemoveAll removes the directory tree and logs the error if any.
func RemoveAll(path string) {
	if err := os.RemoveAll(path); err != nil {
		logging.Default().Warn("Fail to remove directory", slog.String("path", path), slog.Any("error", err))
	}
}
