// Package plugin models test-runner plugins and the reconciliation of
// user-supplied framework and reporter entries against them.
//
// A configuration entry is a [Spec]: either a bare capability name ("mocha")
// or a [Descriptor] that maps one or more capability ids to opaque provider
// values ({"framework:mocha": provider}). The variant is decided once, when
// the entry is constructed or decoded, and is never re-inspected.
package plugin

import "strings"

// SpecKind discriminates the two variants of a [Spec].
type SpecKind int

const (
	// SpecInvalid is the zero value; it is never produced by constructors or decoders.
	SpecInvalid SpecKind = iota
	// SpecName is a bare capability name.
	SpecName
	// SpecDescriptor is a structured plugin descriptor.
	SpecDescriptor
)

func (k SpecKind) String() string {
	switch k {
	case SpecName:
		return "name"
	case SpecDescriptor:
		return "descriptor"
	default:
		return "invalid"
	}
}

// Module is the provider value used by built-in descriptors: the npm module
// that implements the capability.
type Module string

// Entry binds one capability id to its provider.
type Entry struct {
	ID       ID
	Provider any
}

// Provide returns an Entry for id.
func Provide(id ID, provider any) Entry {
	return Entry{ID: id, Provider: provider}
}

// Descriptor is an ordered set of capability entries. The first entry is the
// descriptor's identity; later entries are carried along but never consulted
// by [Find].
type Descriptor []Entry

// ID returns the identity of the descriptor.
// The second return value is false for an empty descriptor.
func (d Descriptor) ID() (ID, bool) {
	if len(d) == 0 {
		return "", false
	}
	return d[0].ID, true
}

// IDs returns every capability id in the descriptor, in order.
func (d Descriptor) IDs() []ID {
	ids := make([]ID, len(d))
	for i, e := range d {
		ids[i] = e.ID
	}
	return ids
}

// Spec is a single plugin configuration entry.
type Spec struct {
	kind       SpecKind
	name       string
	descriptor Descriptor
}

// Name returns a bare-name Spec.
func Name(name string) Spec {
	return Spec{kind: SpecName, name: name}
}

// Plugin returns a descriptor Spec built from entries.
func Plugin(entries ...Entry) Spec {
	d := make(Descriptor, len(entries))
	copy(d, entries)
	return Spec{kind: SpecDescriptor, descriptor: d}
}

// Names converts bare names into Specs.
func Names(names ...string) []Spec {
	specs := make([]Spec, len(names))
	for i, n := range names {
		specs[i] = Name(n)
	}
	return specs
}

// Kind reports which variant s holds.
func (s Spec) Kind() SpecKind { return s.kind }

// IsName reports whether s is a bare name.
func (s Spec) IsName() bool { return s.kind == SpecName }

// IsDescriptor reports whether s is a plugin descriptor.
func (s Spec) IsDescriptor() bool { return s.kind == SpecDescriptor }

// Name returns the bare name held by s.
func (s Spec) Name() (string, bool) {
	if s.kind != SpecName {
		return "", false
	}
	return s.name, true
}

// Descriptor returns the descriptor held by s.
func (s Spec) Descriptor() (Descriptor, bool) {
	if s.kind != SpecDescriptor {
		return nil, false
	}
	return s.descriptor, true
}

func (s Spec) String() string {
	switch s.kind {
	case SpecName:
		return s.name
	case SpecDescriptor:
		ids := make([]string, len(s.descriptor))
		for i, e := range s.descriptor {
			ids[i] = string(e.ID)
		}
		return "{" + strings.Join(ids, ", ") + "}"
	default:
		return "<invalid>"
	}
}
