// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package migration

import (
	"context"

	"github.com/juju/errors"
)

// Store is the secrets store data bags are migrated to.
type Store interface {
	// Write overwrites the entry at path with data.
	Write(ctx context.Context, path string, data map[string]interface{}) error
}

// Reporter receives operator progress messages.
type Reporter interface {
	Infof(format string, params ...interface{})
	Warningf(format string, params ...interface{})
}

// Writer persists write units to a Store.
type Writer struct {
	store    Store
	reporter Reporter
	dryRun   bool
}

// NewWriter returns a Writer. When dryRun is set every unit is
// reported but nothing is written and store may be nil.
func NewWriter(store Store, reporter Reporter, dryRun bool) *Writer {
	return &Writer{
		store:    store,
		reporter: reporter,
		dryRun:   dryRun,
	}
}

// Write reports and then writes each unit in turn. The first failed
// write stops the remaining units.
func (w *Writer) Write(ctx context.Context, units []WriteUnit) error {
	for _, unit := range units {
		if w.dryRun {
			w.reporter.Infof("Would write %s to %q (%d keys)", unit.Source, unit.Path, len(unit.Data))
			continue
		}
		w.reporter.Infof("Writing %s to %q", unit.Source, unit.Path)
		if err := w.store.Write(ctx, unit.Path, unit.Data); err != nil {
			return errors.WithType(errors.Annotatef(err, "writing %q", unit.Path), StoreWriteFailure)
		}
	}
	return nil
}
