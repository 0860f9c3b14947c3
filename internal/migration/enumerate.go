// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package migration

import (
	"context"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/naturalsort"

	"github.com/juju/bagsync/internal/databag"
)

// Source is the legacy data bag store being migrated from.
type Source interface {
	ListContainers(ctx context.Context) (set.Strings, error)
	ListBags(ctx context.Context, container string) (set.Strings, error)
	FetchBag(ctx context.Context, container, bag string) (databag.Content, error)
}

// Pair identifies a single bag within a container.
type Pair struct {
	Container string
	Bag       string
}

// String implements fmt.Stringer.
func (p Pair) String() string {
	return p.Container + "/" + p.Bag
}

// Enumerate expands scope into the bags it covers. A single bag scope
// is returned without querying the source. Pairs are sorted by
// container then bag, in natural order so "site2" precedes "site10".
func Enumerate(ctx context.Context, source Source, scope Scope) ([]Pair, error) {
	var containers []string
	switch scope.Kind {
	case OneBag:
		return []Pair{{Container: scope.Container, Bag: scope.Bag}}, nil
	case OneContainer:
		containers = []string{scope.Container}
	case AllContainers:
		names, err := source.ListContainers(ctx)
		if err != nil {
			return nil, errors.Trace(err)
		}
		containers = naturalsort.Sort(names.Values())
	default:
		return nil, errors.NotValidf("scope kind %d", scope.Kind)
	}

	var pairs []Pair
	for _, container := range containers {
		bags, err := source.ListBags(ctx, container)
		if err != nil {
			return nil, errors.Trace(err)
		}
		for _, bag := range naturalsort.Sort(bags.Values()) {
			pairs = append(pairs, Pair{Container: container, Bag: bag})
		}
	}
	logger.Debugf("%s %q covers %d bags", scope.Kind, scope.Path(), len(pairs))
	return pairs, nil
}
