// SPDX-License-Identifier: GPL-3.0-only

package repository

import "errors"

// Typed outcomes surfaced by the repositories. Handlers map these onto
// HTTP statuses; anything else is a store failure for the current
// request.
var (
	ErrNotFound        = errors.New("record not found")
	ErrConflict        = errors.New("conflicting record exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
)
