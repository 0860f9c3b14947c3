// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package databag

import "fmt"

// Kind describes the shape of a fetched data bag item.
type Kind int

const (
	// Unrecognized content is neither a mapping nor a string.
	Unrecognized Kind = iota
	// Structured content is a mapping of string keys to values.
	Structured
	// Opaque content is a plain string with no structure.
	Opaque
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Structured:
		return "structured"
	case Opaque:
		return "opaque"
	default:
		return "unrecognized"
	}
}

// Content holds the decoded value of a single data bag item.
type Content struct {
	kind   Kind
	record map[string]interface{}
	value  string
	raw    interface{}
}

// NewContent classifies a decoded bag value.
func NewContent(raw interface{}) Content {
	switch v := raw.(type) {
	case map[string]interface{}:
		return Content{kind: Structured, record: v, raw: raw}
	case string:
		return Content{kind: Opaque, value: v, raw: raw}
	default:
		return Content{kind: Unrecognized, raw: raw}
	}
}

// Kind returns the shape of the content.
func (c Content) Kind() Kind {
	return c.kind
}

// Record returns the mapping held by structured content, or nil.
func (c Content) Record() map[string]interface{} {
	return c.record
}

// Value returns the string held by opaque content.
func (c Content) Value() string {
	return c.value
}

// Raw returns the value as it was decoded from the source.
func (c Content) Raw() interface{} {
	return c.raw
}

// GoString implements fmt.GoStringer.
func (c Content) GoString() string {
	return fmt.Sprintf("databag.Content{%s: %#v}", c.kind, c.raw)
}
