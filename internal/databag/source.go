// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package databag reads Chef data bags. A data bag is a container of
// named items; each item is fetched as a Content value.
package databag

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("bagsync.databag")

// SourceUnavailable is returned when data bags cannot be listed or fetched.
const SourceUnavailable = errors.ConstError("data bag source unavailable")

// Source is implemented by the legacy data bag stores.
type Source interface {
	// ListContainers returns the names of all data bags.
	ListContainers(ctx context.Context) (set.Strings, error)

	// ListBags returns the item names held by the named data bag.
	ListBags(ctx context.Context, container string) (set.Strings, error)

	// FetchBag returns the content of a single data bag item.
	FetchBag(ctx context.Context, container, bag string) (Content, error)
}

func unavailable(err error, format string, args ...interface{}) error {
	return errors.WithType(errors.Annotatef(err, format, args...), SourceUnavailable)
}

// decodeJSON decodes a single JSON value into out. Numbers are kept as
// json.Number so large integers survive unchanged.
func decodeJSON(data []byte, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return errors.Trace(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
