// Package yamlv3 provides a YAML backend built on gopkg.in/yaml.v3. It registers
// under the "yaml" type with a lower priority than package yaml, so it is only
// chosen when the preferred backend is not registered.
package yamlv3

import (
	"errors"
	"fmt"
	"io"

	"github.com/0xalexb/anyconf/backend"

	"gopkg.in/yaml.v3"
)

// Type is the format type name.
const Type = "yaml"

// Priority ranks below the goccy-based backend.
const Priority = 20

// Indent is the number of spaces used by Dump.
const Indent = 2

// Parser implements backend.Parser with gopkg.in/yaml.v3.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Descriptor describes this backend to the registry.
//
//nolint:ireturn // Descriptor is the registry contract
func Descriptor() backend.Descriptor {
	return backend.Describe(Type, []string{"yaml", "yml"}, Priority, func() backend.Parser {
		return NewParser()
	})
}

// Type returns "yaml".
func (p *Parser) Type() string { return Type }

// Load decodes the first document read from r.
func (p *Parser) Load(r io.Reader, target any) error {
	err := yaml.NewDecoder(r).Decode(target)
	if errors.Is(err, io.EOF) {
		return backend.ErrEmptyData
	}

	if err != nil {
		return fmt.Errorf("decoding yaml: %w", err)
	}

	return nil
}

// Dump encodes data as a single YAML document.
func (p *Parser) Dump(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(Indent)

	err := enc.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("closing yaml encoder: %w", err)
	}

	return nil
}
