// Package shellvars provides a backend for shell variable assignments
// (KEY=value lines, optionally prefixed with export), built on
// github.com/subosito/gotenv.
//
// Documents are flat: Load accepts *map[string]string or *map[string]any and
// Dump accepts map[string]string or map[string]any.
package shellvars

import (
	"fmt"
	"io"

	"github.com/0xalexb/anyconf/backend"

	"github.com/subosito/gotenv"
)

// Type is the format type name.
const Type = "shellvars"

// Priority of the shell variables backend.
const Priority = 10

// Parser implements backend.Parser for shell variable files.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Descriptor describes this backend to the registry.
//
//nolint:ireturn // Descriptor is the registry contract
func Descriptor() backend.Descriptor {
	return backend.Describe(Type, []string{"sh", "env"}, Priority, func() backend.Parser {
		return NewParser()
	})
}

// Type returns "shellvars".
func (p *Parser) Type() string { return Type }

// Load parses variable assignments into target.
func (p *Parser) Load(r io.Reader, target any) error {
	env, err := gotenv.StrictParse(r)
	if err != nil {
		return fmt.Errorf("parsing shell variables: %w", err)
	}

	return backend.AssignStrings(target, env)
}

// Dump writes one assignment per line, sorted by key.
func (p *Parser) Dump(w io.Writer, data any) error {
	values, err := backend.Strings(data)
	if err != nil {
		return err
	}

	out, err := gotenv.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshaling shell variables: %w", err)
	}

	_, err = io.WriteString(w, out+"\n")
	if err != nil {
		return fmt.Errorf("writing shell variables: %w", err)
	}

	return nil
}
