package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/0xalexb/anyconf/backend"

	"github.com/goccy/go-yaml"
)

// Type is the format type name.
const Type = "yaml"

// Priority is preferred over other YAML backends.
const Priority = 30

// ErrSectionNotFound is returned when the requested section is not in the document.
var ErrSectionNotFound = errors.New("section not found")

// Parser implements backend.Parser and backend.SectionLoader for YAML data.
type Parser struct{}

// NewParser creates a new YAML parser instance.
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

// Load decodes the entire document.
func (p *Parser) Load(r io.Reader, target any) error {
	return p.LoadSection(r, target, "")
}

// LoadSection decodes the section of the document addressed by section, using
// colon (:) as separator. An empty section decodes the entire document.
func (p *Parser) LoadSection(r io.Reader, target any, section string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading yaml: %w", err)
	}

	if len(data) == 0 {
		return backend.ErrEmptyData
	}

	if section == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	pathObj, err := yaml.PathString(toYAMLPath(section))
	if err != nil {
		return fmt.Errorf("invalid section %q: %w", section, err)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrSectionNotFound, section)
		}

		return fmt.Errorf("reading section %q: %w", section, err)
	}

	return nil
}

// Dump encodes data as YAML.
func (p *Parser) Dump(w io.Writer, data any) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("writing yaml: %w", err)
	}

	return nil
}

// toYAMLPath converts a colon-separated section to goccy/go-yaml PathString format.
func toYAMLPath(section string) string {
	return "$." + strings.Join(strings.Split(section, ":"), ".")
}
