// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package migration

import "github.com/juju/errors"

const (
	// InvalidScope is returned when a destination is not below the
	// data bag base path.
	InvalidScope = errors.ConstError("invalid scope")

	// UnsupportedScope is returned when a destination is below the base
	// path but does not name all containers, a container or a bag.
	UnsupportedScope = errors.ConstError("unsupported scope")

	// UnrecognizedBagShape is reported for bags that are neither a
	// mapping nor a string. It never aborts a migration.
	UnrecognizedBagShape = errors.ConstError("unrecognized bag shape")

	// StoreWriteFailure is returned when the secrets store rejects a write.
	StoreWriteFailure = errors.ConstError("store write failure")
)
