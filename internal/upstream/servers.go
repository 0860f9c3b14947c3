// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package upstream

import (
	"regexp"
	"strings"

	"github.com/juju/errors"
)

const (
	serverPrefix = "server "
	defaultPort  = ":80;"
)

var entryPattern = regexp.MustCompile(`^server [^\s:;]+(:[0-9]+)?;$`)

// Outcome describes what a list operation did.
type Outcome int

const (
	// Added means the server was appended to the list.
	Added Outcome = iota
	// AlreadyPresent means an identical entry was already in rotation.
	AlreadyPresent
	// Removed means the first matching entry was removed.
	Removed
	// NotFound means no entry matched the server to remove.
	NotFound
	// NothingInRotation means there was no list to remove from.
	NothingInRotation
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case AlreadyPresent:
		return "already present"
	case Removed:
		return "removed"
	case NotFound:
		return "not found"
	case NothingInRotation:
		return "nothing in rotation"
	}
	return "unknown"
}

// Changed reports whether the list was modified.
func (o Outcome) Changed() bool {
	return o == Added || o == Removed
}

// Normalize turns a host name into an upstream entry of the form
// "server <host>:80;". Entries already carrying the prefix or the
// port suffix are left alone, so Normalize is idempotent.
func Normalize(server string) string {
	if !strings.HasPrefix(server, serverPrefix) {
		server = serverPrefix + server
	}
	if !strings.Contains(server, defaultPort) {
		server += defaultPort
	}
	return server
}

// Add appends the normalized server to servers unless an identical
// entry exists. A nil list is treated as empty. The order of existing
// entries is kept.
func Add(servers []string, server string) ([]string, Outcome, error) {
	entry := Normalize(server)
	if !entryPattern.MatchString(entry) {
		return nil, 0, errors.NotValidf("upstream entry %q", entry)
	}
	for _, existing := range servers {
		if existing == entry {
			return servers, AlreadyPresent, nil
		}
	}
	result := make([]string, len(servers), len(servers)+1)
	copy(result, servers)
	return append(result, entry), Added, nil
}

// Remove drops the first entry containing target as a substring. It
// is not an error for nothing to match: the list is returned unchanged.
func Remove(servers []string, target string) ([]string, Outcome) {
	if servers == nil {
		return []string{}, NothingInRotation
	}
	for i, existing := range servers {
		if strings.Contains(existing, target) {
			result := make([]string, 0, len(servers)-1)
			result = append(result, servers[:i]...)
			return append(result, servers[i+1:]...), Removed
		}
	}
	return servers, NotFound
}
