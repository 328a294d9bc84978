// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-fin-tracker/internal/service"
)

var (
	// ErrMissingAuthorizationHeader is reported when a protected route is
	// called without an "Authorization" header.
	ErrMissingAuthorizationHeader = fmt.Errorf("%w: not authenticated", service.ErrUnauthorized)

	// ErrMalformedAuthorizationHeader is reported when the header is not of
	// the form "Bearer <token>".
	ErrMalformedAuthorizationHeader = fmt.Errorf("%w: invalid authorization header", service.ErrUnauthorized)

	// ErrInvalidJSON is reported when a request body cannot be decoded.
	ErrInvalidJSON = fmt.Errorf("%w: invalid JSON was passed", service.ErrInvalidArgument)

	// ErrInvalidTransactionID is reported when the {transaction_id} path
	// segment is not an integer.
	ErrInvalidTransactionID = fmt.Errorf("%w: transaction_id must be a positive integer", service.ErrInvalidArgument)

	// errNoUserInContext means a protected handler was reached without the
	// auth middleware. It is a wiring bug, never a client error.
	errNoUserInContext = errors.New("no authenticated user in request context")
)

// invalidQueryParam reports a query parameter that could not be parsed.
func invalidQueryParam(name, expected string) error {
	return fmt.Errorf("%w: query parameter %s must be %s", service.ErrInvalidArgument, name, expected)
}
