// Package toml provides the TOML backend, built on github.com/pelletier/go-toml/v2.
package toml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/0xalexb/anyconf/backend"

	"github.com/pelletier/go-toml/v2"
)

// Type is the format type name.
const Type = "toml"

// Priority of the TOML backend.
const Priority = 30

// Parser implements backend.Parser for TOML documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Descriptor describes this backend to the registry.
//
//nolint:ireturn // Descriptor is the registry contract
func Descriptor() backend.Descriptor {
	return backend.Describe(Type, []string{"toml"}, Priority, func() backend.Parser {
		return NewParser()
	})
}

// Type returns "toml".
func (p *Parser) Type() string { return Type }

// Load decodes a TOML document. An empty document is an error.
func (p *Parser) Load(r io.Reader, target any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading toml: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return backend.ErrEmptyData
	}

	err = toml.Unmarshal(data, target)
	if err != nil {
		return fmt.Errorf("decoding toml: %w", err)
	}

	return nil
}

// Dump encodes data as TOML. data must be a map or struct.
func (p *Parser) Dump(w io.Writer, data any) error {
	err := toml.NewEncoder(w).Encode(data)
	if err != nil {
		return fmt.Errorf("encoding toml: %w", err)
	}

	return nil
}
