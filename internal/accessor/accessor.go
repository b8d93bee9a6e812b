// Package accessor provides a lazy, chainable view over decoded JSON values.
//
// Plex responses arrive as loosely typed trees (objects, arrays and scalars,
// with XML attributes under a "$" key). A Value wraps one node of such a tree
// together with its dotted path and a warnings sink shared by every view
// derived from the same root. Required lookups of missing fields record a
// Warning instead of failing, so a transform always runs to completion and
// the caller decides what to do with the collected warnings.
package accessor

import (
	"fmt"
	"strconv"
	"strings"
)

// Warning describes a required field that was missing from a payload.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// sink collects warnings for every view derived from one root.
type sink struct {
	warnings []Warning
}

func (s *sink) add(path, msg string) {
	s.warnings = append(s.warnings, Warning{Path: path, Message: msg})
}

// Value is an immutable view over one node of a decoded tree.
// The zero Value is absent and has no sink; lookups on it are silent.
type Value struct {
	raw     any
	present bool
	path    []string
	sink    *sink
}

// New wraps a decoded value with a fresh warnings sink.
func New(raw any) Value {
	return Value{raw: raw, present: raw != nil, sink: &sink{}}
}

// Get descends into key. A missing key records a warning and yields an
// absent view.
func (v Value) Get(key string) Value {
	return v.lookup(key, false)
}

// Optional descends into key without recording a warning when it is missing.
func (v Value) Optional(key string) Value {
	return v.lookup(key, true)
}

func (v Value) lookup(key string, quiet bool) Value {
	child := v.child(key)

	obj, ok := v.raw.(map[string]any)
	if !ok {
		switch {
		case quiet:
		case v.present:
			v.warn(child.Path(), fmt.Sprintf("cannot read %q from %s", key, kindOf(v.raw)))
		default:
			v.warn(child.Path(), "missing parent")
		}
		return child
	}

	raw, exists := obj[key]
	if !exists || raw == nil {
		if !quiet {
			v.warn(child.Path(), "missing required field")
		}
		return child
	}

	child.raw = raw
	child.present = true
	return child
}

// Index descends into element i of an array. Out of range yields an absent
// view and records a warning.
func (v Value) Index(i int) Value {
	child := v.child(strconv.Itoa(i))

	arr, ok := v.raw.([]any)
	if !ok || i < 0 || i >= len(arr) || arr[i] == nil {
		v.warn(child.Path(), "missing array element")
		return child
	}

	child.raw = arr[i]
	child.present = true
	return child
}

// Has reports whether key is present on an object. It never records warnings.
func (v Value) Has(key string) bool {
	obj, ok := v.raw.(map[string]any)
	if !ok {
		return false
	}
	raw, exists := obj[key]
	return exists && raw != nil
}

// Array normalizes the wrapped value into a list of views. An absent value
// yields an empty slice, a bare object yields one element and an array yields
// its elements in order. XML translation collapses single children into bare
// objects, so every child list is read through Array.
func (v Value) Array() []Value {
	if !v.present {
		return []Value{}
	}

	arr, ok := v.raw.([]any)
	if !ok {
		return []Value{v}
	}

	out := make([]Value, 0, len(arr))
	for i, raw := range arr {
		child := v.child(strconv.Itoa(i))
		child.raw = raw
		child.present = raw != nil
		out = append(out, child)
	}
	return out
}

// Transform applies fn to the raw value and wraps the result, keeping the
// path and sink of v. fn receives nil for an absent value.
func (v Value) Transform(fn func(any) any) Value {
	raw := fn(v.raw)
	out := v
	out.raw = raw
	out.present = raw != nil
	return out
}

// Raw returns the wrapped value, or nil when absent.
func (v Value) Raw() any {
	if !v.present {
		return nil
	}
	return v.raw
}

// Exists reports whether the view wraps a non-nil value.
func (v Value) Exists() bool {
	return v.present
}

// Path returns the dotted path of the view from its root.
func (v Value) Path() string {
	return strings.Join(v.path, ".")
}

// Warnings returns a copy of the warnings recorded so far by every view that
// shares this view's root.
func (v Value) Warnings() []Warning {
	if v.sink == nil || len(v.sink.warnings) == 0 {
		return nil
	}
	out := make([]Warning, len(v.sink.warnings))
	copy(out, v.sink.warnings)
	return out
}

func (v Value) child(key string) Value {
	path := make([]string, len(v.path), len(v.path)+1)
	copy(path, v.path)
	return Value{path: append(path, key), sink: v.sink}
}

func (v Value) warn(path, msg string) {
	if v.sink != nil {
		v.sink.add(path, msg)
	}
}

func kindOf(raw any) string {
	switch raw.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "scalar"
	}
}
