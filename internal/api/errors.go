// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package api

import (
	"errors"
	"fmt"
)

// StatusError reports a non-2xx HTTP response from the provider.
// 4xx responses are never retried; 5xx responses are retried per the
// client's retry policy and wrapped in a TransientError.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: provider returned HTTP %d", e.Endpoint, e.Code)
}

// TransientError wraps a network failure or 5xx response that survived
// all retries. Callers treat it as recoverable: displayed data is kept
// and the error is surfaced alongside it.
type TransientError struct {
	Endpoint string
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsClientError reports whether err is a non-retryable 4xx failure.
func IsClientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 400 && se.Code < 500
}

// IsTransient reports whether err is a retryable-class failure that
// exhausted its retries.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
