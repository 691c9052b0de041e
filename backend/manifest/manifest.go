// Package manifest loads alias descriptors from a YAML manifest file.
//
// An alias registers additional extensions, and optionally a new type name,
// for a parser type that already exists in a base source:
//
//	aliases:
//	  - base: yaml
//	    type: compose
//	    extensions: [conf]
//	    priority: 40
//
// The manifest is re-read every time the source is consulted, so a registry
// reload picks up edits.
package manifest

import (
	"errors"
	"fmt"

	"github.com/0xalexb/anyconf/backend"
	"github.com/0xalexb/anyconf/fspath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

// ErrUnknownBase is returned when an alias refers to a type the base source lacks.
var ErrUnknownBase = errors.New("unknown base type")

// ErrNoExtensions is returned when an alias declares no extensions.
var ErrNoExtensions = errors.New("alias declares no extensions")

// ErrNoBase is returned when an alias omits its base type.
var ErrNoBase = errors.New("alias declares no base type")

// Alias is one manifest entry.
type Alias struct {
	Base       string   `yaml:"base"`
	Type       string   `yaml:"type"`
	Extensions []string `yaml:"extensions"`
	Priority   *int     `yaml:"priority"`
}

// File is the manifest document.
type File struct {
	Aliases []Alias `yaml:"aliases"`
}

// Source yields the alias descriptors of a manifest file.
type Source struct {
	path *fspath.Path
	base backend.Source
}

// NewSource returns a Source reading the manifest at path. Alias bases are
// looked up in base.
func NewSource(path *fspath.Path, base backend.Source) *Source {
	return &Source{path: path, base: base}
}

// Name returns the manifest file name.
func (s *Source) Name() string {
	return s.path.Name()
}

// Descriptors reads the manifest and builds one descriptor per alias. A
// missing manifest yields no descriptors; a directory is an error.
func (s *Source) Descriptors() ([]backend.Descriptor, error) {
	path, err := fspath.Existing(s.path.Fs(), s.path.Name())()
	if errors.Is(err, afero.ErrFileNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("checking manifest: %w", err)
	}

	data, err := path.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var file File

	err = yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %q: %w", s.Name(), err)
	}

	if len(file.Aliases) == 0 {
		return nil, nil
	}

	bases, err := s.base.Descriptors()
	if err != nil {
		return nil, fmt.Errorf("loading base descriptors: %w", err)
	}

	byType := backend.GroupByType(bases)
	descs := make([]backend.Descriptor, 0, len(file.Aliases))

	for i, alias := range file.Aliases {
		desc, err := alias.describe(byType)
		if err != nil {
			return nil, fmt.Errorf("manifest %q alias %d: %w", s.Name(), i, err)
		}

		descs = append(descs, desc)
	}

	return descs, nil
}

//nolint:ireturn // Descriptor is the registry contract
func (a Alias) describe(byType backend.Index) (backend.Descriptor, error) {
	if a.Base == "" {
		return nil, ErrNoBase
	}

	if len(a.Extensions) == 0 {
		return nil, ErrNoExtensions
	}

	base, ok := byType.Best(a.Base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBase, a.Base)
	}

	typ := a.Type
	if typ == "" {
		typ = a.Base
	}

	priority := base.Priority()
	if a.Priority != nil {
		priority = *a.Priority
	}

	return backend.Describe(typ, a.Extensions, priority, base.New), nil
}
