// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package migration

import (
	"path"
	"strings"

	"github.com/juju/errors"
)

const (
	// StoreRoot is the mount all migrated secrets live under.
	StoreRoot = "secret"

	// BasePath is the path data bags are migrated below.
	BasePath = StoreRoot + "/databags"
)

// ScopeKind identifies how much of the data bag source a
// migration covers.
type ScopeKind int

const (
	AllContainers ScopeKind = iota
	OneContainer
	OneBag
)

// String implements fmt.Stringer.
func (k ScopeKind) String() string {
	switch k {
	case AllContainers:
		return "all containers"
	case OneContainer:
		return "container"
	case OneBag:
		return "bag"
	}
	return "unknown"
}

// Scope is the resolved unit of migration.
type Scope struct {
	Kind      ScopeKind
	Container string
	Bag       string
}

// Path returns the store path the scope covers.
func (s Scope) Path() string {
	switch s.Kind {
	case OneContainer:
		return path.Join(BasePath, s.Container)
	case OneBag:
		return path.Join(BasePath, s.Container, s.Bag)
	}
	return BasePath
}

// ResolveScope parses a requested destination into a Scope. The
// destination may omit the store root; an empty destination selects
// all containers.
func ResolveScope(dest string) (Scope, error) {
	normalized := normalizeDestination(dest)

	segments := strings.Split(normalized, "/")
	base := strings.Split(BasePath, "/")
	if len(segments) < len(base) || path.Join(segments[:len(base)]...) != BasePath {
		return Scope{}, errors.WithType(
			errors.Errorf("destination %q must start with %q and name a container or a single bag", normalized, BasePath),
			InvalidScope,
		)
	}

	rest := segments[len(base):]
	switch len(rest) {
	case 0:
		return Scope{Kind: AllContainers}, nil
	case 1:
		return Scope{Kind: OneContainer, Container: rest[0]}, nil
	case 2:
		return Scope{Kind: OneBag, Container: rest[0], Bag: rest[1]}, nil
	}
	return Scope{}, errors.WithType(
		errors.NotImplementedf("migrating %q", normalized),
		UnsupportedScope,
	)
}

func normalizeDestination(dest string) string {
	dest = strings.Trim(strings.TrimSpace(dest), "/")
	if dest == "" {
		return BasePath
	}
	dest = path.Clean(dest)
	if !strings.HasPrefix(dest, StoreRoot+"/") {
		dest = path.Join(StoreRoot, dest)
	}
	return dest
}
