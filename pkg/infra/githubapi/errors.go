package githubapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/types"
)

// classify maps a go-github error to the sentinel errors of the domain.
// Anything that is neither an auth failure nor a missing resource is
// treated as transient.
func classify(err error, msg string, options ...goerr.Option) error {
	if err == nil {
		return nil
	}

	var sentinel error = types.ErrTransient
	status := 0

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse
	var netErr net.Error

	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		sentinel = types.ErrTransient

	case errors.As(err, &respErr) && respErr.Response != nil:
		status = respErr.Response.StatusCode
		sentinel = classifyStatus(status)

	case errors.Is(err, context.Canceled):
		return goerr.Wrap(err, msg, options...)

	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		sentinel = types.ErrTransient
	}

	options = append(options,
		goerr.V("error", err.Error()),
		goerr.V("status", status),
	)
	return goerr.Wrap(sentinel, msg, options...)
}

// classifyResponse is classify for calls that can fail with a plain error
// while still returning the API response, such as redirect lookups.
func classifyResponse(err error, resp *github.Response, msg string, options ...goerr.Option) error {
	var respErr *github.ErrorResponse
	if err != nil && !errors.As(err, &respErr) && resp != nil && resp.Response != nil && resp.StatusCode >= 400 {
		options = append(options,
			goerr.V("error", err.Error()),
			goerr.V("status", resp.StatusCode),
		)
		return goerr.Wrap(classifyStatus(resp.StatusCode), msg, options...)
	}
	return classify(err, msg, options...)
}

func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return types.ErrAuth
	case status == http.StatusNotFound, status == http.StatusGone:
		return types.ErrNotFound
	default:
		return types.ErrTransient
	}
}

// classifyStorageStatus maps the status of a pre-signed storage download.
// Storage URLs carry their own short-lived signature, so 401 and 403 mean
// an expired or rejected signature rather than bad credentials.
func classifyStorageStatus(status int) error {
	switch status {
	case http.StatusNotFound, http.StatusGone:
		return types.ErrNotFound
	default:
		return types.ErrTransient
	}
}
