package errutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
)

// HandleError reports a fatal error once: to Sentry when a client is bound
// and to the context logger.
func HandleError(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(fmt.Sprintf("%v", k), v)
			}
		}
	})
	evID := hub.CaptureException(err)

	logging.From(ctx).Error(msg,
		"error", err,
		"sentry.EventID", evID,
	)
}

var annotationEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

// Annotate writes a GitHub Actions error annotation for configuration
// errors so they surface in the workflow summary. Other errors are ignored.
func Annotate(w io.Writer, err error) {
	if err == nil || !errors.Is(err, types.ErrConfiguration) {
		return
	}
	_, _ = fmt.Fprintf(w, "::error::%s\n", annotationEscaper.Replace(err.Error()))
}
