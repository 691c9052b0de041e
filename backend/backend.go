package backend

import (
	"errors"
	"io"
	"slices"
)

// ErrEmptyData is returned by parsers when the input contains no data.
var ErrEmptyData = errors.New("empty data")

// ErrUnsupportedTarget is returned when a parser cannot decode into, or encode
// from, the given Go value.
var ErrUnsupportedTarget = errors.New("unsupported target type")

// Parser loads and dumps configuration data of a single format.
type Parser interface {
	// Type returns the format type name this parser handles.
	Type() string
	// Load decodes the data read from r into target, which must be a pointer.
	Load(r io.Reader, target any) error
	// Dump encodes data and writes it to w.
	Dump(w io.Writer, data any) error
}

// SectionLoader is implemented by parsers that can decode a nested section of a
// document. The section uses colon (:) as the separator for nested keys, for
// example "database:connection".
type SectionLoader interface {
	LoadSection(r io.Reader, target any, section string) error
}

// Descriptor describes a parser implementation to the registry.
//
// Type and Extensions must be stable for the descriptor's lifetime.
type Descriptor interface {
	Type() string
	Extensions() []string
	Priority() int
	New() Parser
}

// Source supplies descriptors to a registry. Sources are consulted when a
// registry is built and again on every reload.
type Source interface {
	Descriptors() ([]Descriptor, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() ([]Descriptor, error)

// Descriptors calls f.
func (f SourceFunc) Descriptors() ([]Descriptor, error) {
	return f()
}

// Static returns a Source that always yields the given descriptors.
//
//nolint:ireturn // Source is the contract consumed by the registry
func Static(descs ...Descriptor) Source {
	fixed := slices.Clone(descs)

	return SourceFunc(func() ([]Descriptor, error) {
		return slices.Clone(fixed), nil
	})
}

// Concat returns a Source yielding the descriptors of every source in order.
//
//nolint:ireturn // Source is the contract consumed by the registry
func Concat(sources ...Source) Source {
	fixed := slices.Clone(sources)

	return SourceFunc(func() ([]Descriptor, error) {
		var all []Descriptor

		for _, src := range fixed {
			descs, err := src.Descriptors()
			if err != nil {
				return nil, err
			}

			all = append(all, descs...)
		}

		return all, nil
	})
}

type descriptor struct {
	typ        string
	extensions []string
	priority   int
	ctor       func() Parser
}

// Describe returns an immutable Descriptor. The extension slice is copied.
//
//nolint:ireturn // Descriptor is the registry contract
func Describe(typ string, extensions []string, priority int, ctor func() Parser) Descriptor {
	return &descriptor{
		typ:        typ,
		extensions: slices.Clone(extensions),
		priority:   priority,
		ctor:       ctor,
	}
}

func (d *descriptor) Type() string { return d.typ }

func (d *descriptor) Extensions() []string { return slices.Clone(d.extensions) }

func (d *descriptor) Priority() int { return d.priority }

//nolint:ireturn // constructs whichever parser the descriptor wraps
func (d *descriptor) New() Parser { return d.ctor() }
