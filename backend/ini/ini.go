// Package ini provides the INI backend, built on gopkg.in/ini.v1.
//
// Keys outside any section belong to the default section and decode to the top
// level of a map target. Every other section decodes to a nested map of
// strings. Struct targets follow the ini struct tags of gopkg.in/ini.v1.
package ini

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/0xalexb/anyconf/backend"

	"gopkg.in/ini.v1"
)

// Type is the format type name.
const Type = "ini"

// Priority of the INI backend.
const Priority = 10

// ErrSectionNotFound is returned when the requested section is not in the document.
var ErrSectionNotFound = errors.New("section not found")

// Parser implements backend.Parser and backend.SectionLoader for INI files.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Descriptor describes this backend to the registry.
//
//nolint:ireturn // Descriptor is the registry contract
func Descriptor() backend.Descriptor {
	return backend.Describe(Type, []string{"ini"}, Priority, func() backend.Parser {
		return NewParser()
	})
}

// Type returns "ini".
func (p *Parser) Type() string { return Type }

// Load decodes the document into a *map[string]any or a pointer to a struct.
func (p *Parser) Load(r io.Reader, target any) error {
	file, err := read(r)
	if err != nil {
		return err
	}

	switch dst := target.(type) {
	case *map[string]any:
		if *dst == nil {
			*dst = make(map[string]any)
		}

		maps.Copy(*dst, toMap(file))

		return nil
	default:
		if !isStructPointer(target) {
			return fmt.Errorf("%w: %T", backend.ErrUnsupportedTarget, target)
		}

		err = file.MapTo(target)
		if err != nil {
			return fmt.Errorf("mapping ini: %w", err)
		}

		return nil
	}
}

// LoadSection decodes a single section. Nested sections are addressed with
// colons and map to the dotted child sections of gopkg.in/ini.v1, so
// "database:replica" reads [database.replica]. An empty section decodes the
// entire document.
func (p *Parser) LoadSection(r io.Reader, target any, section string) error {
	if section == "" {
		return p.Load(r, target)
	}

	file, err := read(r)
	if err != nil {
		return err
	}

	sec, err := file.GetSection(strings.ReplaceAll(section, ":", "."))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, section)
	}

	if isStructPointer(target) {
		err = sec.MapTo(target)
		if err != nil {
			return fmt.Errorf("mapping section %q: %w", section, err)
		}

		return nil
	}

	return backend.AssignStrings(target, sec.KeysHash())
}

// Dump encodes data as INI. Map values that are themselves maps become
// sections, everything else is written to the default section. Struct data
// follows the ini struct tags.
func (p *Parser) Dump(w io.Writer, data any) error {
	file, err := build(data)
	if err != nil {
		return err
	}

	_, err = file.WriteTo(w)
	if err != nil {
		return fmt.Errorf("writing ini: %w", err)
	}

	return nil
}

func read(r io.Reader) (*ini.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ini: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, backend.ErrEmptyData
	}

	file, err := ini.LoadSources(ini.LoadOptions{}, data)
	if err != nil {
		return nil, fmt.Errorf("parsing ini: %w", err)
	}

	return file, nil
}

func toMap(file *ini.File) map[string]any {
	out := make(map[string]any)

	for _, sec := range file.Sections() {
		if sec.Name() == ini.DefaultSection {
			for key, value := range sec.KeysHash() {
				out[key] = value
			}

			continue
		}

		values := make(map[string]any, len(sec.Keys()))
		for key, value := range sec.KeysHash() {
			values[key] = value
		}

		out[sec.Name()] = values
	}

	return out
}

func build(data any) (*ini.File, error) {
	file := ini.Empty()

	switch src := data.(type) {
	case map[string]string:
		err := addKeys(file.Section(""), src)
		if err != nil {
			return nil, err
		}
	case map[string]any:
		for _, name := range slices.Sorted(maps.Keys(src)) {
			var err error

			switch value := src[name].(type) {
			case map[string]any, map[string]string:
				var values map[string]string

				values, err = backend.Strings(value)
				if err == nil {
					err = addKeys(file.Section(name), values)
				}
			default:
				_, err = file.Section("").NewKey(name, fmt.Sprint(value))
			}

			if err != nil {
				return nil, fmt.Errorf("building ini: %w", err)
			}
		}
	default:
		ptr, ok := structPointer(data)
		if !ok {
			return nil, fmt.Errorf("%w: %T", backend.ErrUnsupportedTarget, data)
		}

		err := ini.ReflectFrom(file, ptr)
		if err != nil {
			return nil, fmt.Errorf("reflecting ini: %w", err)
		}
	}

	return file, nil
}

func addKeys(sec *ini.Section, values map[string]string) error {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		_, err := sec.NewKey(key, values[key])
		if err != nil {
			return fmt.Errorf("adding key %q to section %q: %w", key, sec.Name(), err)
		}
	}

	return nil
}

func isStructPointer(v any) bool {
	value := reflect.ValueOf(v)

	return value.Kind() == reflect.Pointer && !value.IsNil() && value.Elem().Kind() == reflect.Struct
}

// structPointer returns data as a pointer to a struct, copying struct values.
func structPointer(data any) (any, bool) {
	if isStructPointer(data) {
		return data, true
	}

	value := reflect.ValueOf(data)
	if value.Kind() != reflect.Struct {
		return nil, false
	}

	ptr := reflect.New(value.Type())
	ptr.Elem().Set(value)

	return ptr.Interface(), true
}
