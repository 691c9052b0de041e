// Package json provides the JSON backend.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/0xalexb/anyconf/backend"
)

// Type is the format type name.
const Type = "json"

// Priority of the JSON backend.
const Priority = 30

// Parser implements backend.Parser for JSON documents.
type Parser struct {
	indent string
}

// NewParser creates a Parser that indents dumped output with two spaces.
func NewParser() *Parser {
	return &Parser{indent: "  "}
}

// Descriptor describes this backend to the registry.
//
//nolint:ireturn // Descriptor is the registry contract
func Descriptor() backend.Descriptor {
	return backend.Describe(Type, []string{"json", "jsn", "js"}, Priority, func() backend.Parser {
		return NewParser()
	})
}

// Type returns "json".
func (p *Parser) Type() string { return Type }

// Load decodes a single JSON value.
func (p *Parser) Load(r io.Reader, target any) error {
	err := json.NewDecoder(r).Decode(target)
	if errors.Is(err, io.EOF) {
		return backend.ErrEmptyData
	}

	if err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}

	return nil
}

// Dump encodes data as indented JSON followed by a newline.
func (p *Parser) Dump(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", p.indent)

	err := enc.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	return nil
}
