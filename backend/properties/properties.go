// Package properties provides a backend for Java-style .properties files.
//
// Files are read with github.com/magiconair/properties: '#' and '!' comments,
// "key=value", "key: value" and "key value" separators, escapes and lines
// continued with a trailing backslash.
package properties

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/0xalexb/anyconf/backend"

	"github.com/magiconair/properties"
)

// Type is the format type name.
const Type = "properties"

// Priority of the properties backend.
const Priority = 10

// Parser implements backend.Parser for properties files.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Descriptor describes this backend to the registry.
//
//nolint:ireturn // Descriptor is the registry contract
func Descriptor() backend.Descriptor {
	return backend.Describe(Type, []string{"properties"}, Priority, func() backend.Parser {
		return NewParser()
	})
}

// Type returns "properties".
func (p *Parser) Type() string { return Type }

// Load parses key/value pairs into a *map[string]string or *map[string]any.
// ${key} references are kept verbatim.
func (p *Parser) Load(r io.Reader, target any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading properties: %w", err)
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}

	props, err := loader.LoadBytes(data)
	if err != nil {
		return fmt.Errorf("parsing properties: %w", err)
	}

	return backend.AssignStrings(target, props.Map())
}

// Dump writes "key = value" lines sorted by key. Keys and values are escaped
// so that Load returns them unchanged.
func (p *Parser) Dump(w io.Writer, data any) error {
	values, err := backend.Strings(data)
	if err != nil {
		return err
	}

	keys := slices.Sorted(maps.Keys(values))

	bw := bufio.NewWriter(w)
	for _, key := range keys {
		_, _ = fmt.Fprintf(bw, "%s = %s\n", escapeKey(key), escapeValue(values[key]))
	}

	err = bw.Flush()
	if err != nil {
		return fmt.Errorf("writing properties: %w", err)
	}

	return nil
}

var controlEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\f", `\f`,
)

func escapeKey(key string) string {
	escaped := strings.NewReplacer(
		"=", `\=`,
		":", `\:`,
		" ", `\ `,
	).Replace(controlEscaper.Replace(key))

	if strings.HasPrefix(escaped, "#") || strings.HasPrefix(escaped, "!") {
		escaped = `\` + escaped
	}

	return escaped
}

// escapeValue escapes backslashes, control characters and leading spaces,
// which the reader would otherwise take as continuations or separators.
func escapeValue(value string) string {
	escaped := controlEscaper.Replace(value)
	trimmed := strings.TrimLeft(escaped, " ")

	return strings.Repeat(`\ `, len(escaped)-len(trimmed)) + trimmed
}
