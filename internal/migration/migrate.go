// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package migration copies Chef data bags into the secrets store.
//
// A destination path is resolved into a Scope, the Scope is expanded
// into (container, bag) pairs, every bag is fetched and transformed
// into WriteUnits, and the units are written one at a time. Nothing is
// done concurrently and nothing is retried: the first source or store
// failure aborts the run. Writes are whole-entry overwrites, so a
// failed run can simply be repeated.
package migration

import (
	"context"
	"path"

	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("bagsync.migration")

// Summary describes a completed migration.
type Summary struct {
	Scope   Scope
	Bags    int
	Units   int
	Skipped []Pair
}

// Migrator runs a data bag migration.
type Migrator struct {
	source   Source
	writer   *Writer
	reporter Reporter
}

// NewMigrator returns a Migrator reading from source and writing with writer.
func NewMigrator(source Source, writer *Writer, reporter Reporter) *Migrator {
	return &Migrator{
		source:   source,
		writer:   writer,
		reporter: reporter,
	}
}

// Run migrates every bag covered by dest.
func (m *Migrator) Run(ctx context.Context, dest string) (Summary, error) {
	scope, err := ResolveScope(dest)
	if err != nil {
		return Summary{}, errors.Trace(err)
	}
	summary := Summary{Scope: scope}

	pairs, err := Enumerate(ctx, m.source, scope)
	if err != nil {
		return summary, errors.Trace(err)
	}
	for _, pair := range pairs {
		m.reporter.Infof("Migrating data bag %q to %q", pair.String(), path.Join(BasePath, pair.Container, pair.Bag))
		content, err := m.source.FetchBag(ctx, pair.Container, pair.Bag)
		if err != nil {
			return summary, errors.Trace(err)
		}
		units, err := Transform(BasePath, pair, content)
		if errors.Is(err, UnrecognizedBagShape) {
			m.reporter.Warningf("Skipping %s: %v", pair, err)
			summary.Skipped = append(summary.Skipped, pair)
			continue
		} else if err != nil {
			return summary, errors.Trace(err)
		}
		if pair.Container == ProxyContainer && pair.Bag == CertsBag {
			m.reporter.Infof("Splitting %s into %d entries", pair, len(units))
		}
		if err := m.writer.Write(ctx, units); err != nil {
			return summary, errors.Trace(err)
		}
		summary.Bags++
		summary.Units += len(units)
	}
	return summary, nil
}
