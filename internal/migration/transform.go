// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package migration

import (
	"path"
	"sort"

	"github.com/juju/errors"
	"github.com/kr/pretty"

	"github.com/juju/bagsync/internal/databag"
)

const (
	// ProxyContainer holds the proxy configuration data bags.
	ProxyContainer = "nmdproxy"

	// CertsBag holds every proxied site's certificates. It is too large
	// for a single store entry so it is written one entry per site.
	CertsBag = "certs"

	idField    = "id"
	valueField = "value"
)

// WriteUnit is a single overwrite of a store path.
type WriteUnit struct {
	Source Pair
	Path   string
	Data   map[string]interface{}
}

// Transform converts one bag's content into the writes needed to
// migrate it below base. Content that is neither a mapping nor a string
// yields no units and an UnrecognizedBagShape error.
func Transform(base string, pair Pair, content databag.Content) ([]WriteUnit, error) {
	if pair.Container == ProxyContainer && pair.Bag == CertsBag {
		return splitCerts(base, pair, content)
	}

	target := path.Join(base, pair.Container, pair.Bag)
	switch content.Kind() {
	case databag.Structured:
		record := content.Record()
		if len(record) > 0 {
			return []WriteUnit{{Source: pair, Path: target, Data: record}}, nil
		}
		logger.Debugf("bag %s is an empty mapping", pair)
		fallthrough
	case databag.Opaque:
		return []WriteUnit{{
			Source: pair,
			Path:   target,
			Data:   map[string]interface{}{valueField: content.Value()},
		}}, nil
	}
	return nil, unrecognized(pair, content.Raw())
}

// splitCerts writes each environment's sites as separate entries at
// <base>/<container>/certs/<environment>/<site>.
func splitCerts(base string, pair Pair, content databag.Content) ([]WriteUnit, error) {
	if content.Kind() != databag.Structured {
		return nil, unrecognized(pair, content.Raw())
	}

	var units []WriteUnit
	record := content.Record()
	for _, env := range sortedKeys(record) {
		if env == idField {
			continue
		}
		sites, ok := record[env].(map[string]interface{})
		if !ok {
			logger.Warningf("skipping %s environment %q: %s", pair, env, pretty.Sprint(record[env]))
			continue
		}
		for _, site := range sortedKeys(sites) {
			attrs, ok := sites[site].(map[string]interface{})
			if !ok || len(attrs) == 0 {
				logger.Warningf("skipping %s site %s/%s: %s", pair, env, site, pretty.Sprint(sites[site]))
				continue
			}
			units = append(units, WriteUnit{
				Source: pair,
				Path:   path.Join(base, pair.Container, pair.Bag, env, site),
				Data:   attrs,
			})
		}
	}
	return units, nil
}

func unrecognized(pair Pair, raw interface{}) error {
	logger.Warningf("don't know how to migrate bag %s:\n%s", pair, pretty.Sprint(raw))
	return errors.WithType(errors.Errorf("bag %s has unrecognized content %T", pair, raw), UnrecognizedBagShape)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
