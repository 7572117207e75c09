// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package database

import "errors"

// Sentinel errors returned by store operations. Callers translate these to
// HTTP status codes at the boundary; the store itself never recovers them.
var (
	// ErrNotFound means the referenced user, group, post or follow edge
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means a uniqueness constraint would be violated, e.g.
	// signing up with a taken username.
	ErrDuplicate = errors.New("already exists")

	// ErrSelfFollow means a user tried to follow themself. The HTTP layer
	// treats this as a no-op before the store is reached; the store guard
	// is a backstop.
	ErrSelfFollow = errors.New("cannot follow yourself")
)
