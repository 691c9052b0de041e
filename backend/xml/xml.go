// Package xml provides the XML backend, built on encoding/xml.
//
// Struct targets use the encoding/xml struct tags. Map targets receive the
// element tree: the root element is the single top-level key, attributes are
// stored under "@name" keys, repeated child elements become a []any and the
// text of an element with attributes or children is stored under "#text". A
// leaf element without attributes decodes to its trimmed text.
package xml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/0xalexb/anyconf/backend"
)

// Type is the format type name.
const Type = "xml"

// Priority of the XML backend.
const Priority = 10

const (
	// AttrPrefix marks map keys holding attributes.
	AttrPrefix = "@"
	// TextKey holds the text of elements that also have attributes or children.
	TextKey = "#text"
)

// ErrRootElement is returned when a document or map does not have exactly one
// root element.
var ErrRootElement = errors.New("xml needs exactly one root element")

// Parser implements backend.Parser for XML documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Descriptor describes this backend to the registry.
//
//nolint:ireturn // Descriptor is the registry contract
func Descriptor() backend.Descriptor {
	return backend.Describe(Type, []string{"xml"}, Priority, func() backend.Parser {
		return NewParser()
	})
}

// Type returns "xml".
func (p *Parser) Type() string { return Type }

// Load decodes the document into a *map[string]any or a pointer to a struct.
func (p *Parser) Load(r io.Reader, target any) error {
	if dst, ok := target.(*map[string]any); ok {
		tree, err := decodeTree(xml.NewDecoder(r))
		if err != nil {
			return err
		}

		if *dst == nil {
			*dst = make(map[string]any, len(tree))
		}

		maps.Copy(*dst, tree)

		return nil
	}

	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Pointer || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", backend.ErrUnsupportedTarget, target)
	}

	err := xml.NewDecoder(r).Decode(target)
	if errors.Is(err, io.EOF) {
		return backend.ErrEmptyData
	}

	if err != nil {
		return fmt.Errorf("decoding xml: %w", err)
	}

	return nil
}

// Dump encodes a map in the layout Load produces, or a struct.
func (p *Parser) Dump(w io.Writer, data any) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	var err error

	switch src := data.(type) {
	case map[string]any:
		err = encodeTree(enc, src)
	default:
		kind := reflect.Indirect(reflect.ValueOf(data)).Kind()
		if kind != reflect.Struct {
			return fmt.Errorf("%w: %T", backend.ErrUnsupportedTarget, data)
		}

		err = enc.Encode(data)
	}

	if err != nil {
		return fmt.Errorf("encoding xml: %w", err)
	}

	err = enc.Flush()
	if err != nil {
		return fmt.Errorf("writing xml: %w", err)
	}

	return nil
}

type element struct {
	name   string
	fields map[string]any
	text   strings.Builder
}

func newElement(start xml.StartElement) *element {
	el := &element{name: start.Name.Local, fields: make(map[string]any, len(start.Attr))}
	for _, attr := range start.Attr {
		el.fields[AttrPrefix+attr.Name.Local] = attr.Value
	}

	return el
}

func (e *element) add(name string, value any) {
	switch existing := e.fields[name].(type) {
	case nil:
		e.fields[name] = value
	case []any:
		e.fields[name] = append(existing, value)
	default:
		e.fields[name] = []any{existing, value}
	}
}

func (e *element) value() any {
	text := strings.TrimSpace(e.text.String())
	if len(e.fields) == 0 {
		return text
	}

	if text != "" {
		e.fields[TextKey] = text
	}

	return e.fields
}

func decodeTree(dec *xml.Decoder) (map[string]any, error) {
	var (
		stack []*element
		root  map[string]any
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return nil, fmt.Errorf("%w: found a second root <%s>", ErrRootElement, t.Name.Local)
			}

			stack = append(stack, newElement(t))
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if len(stack) == 0 {
				root = map[string]any{el.name: el.value()}

				continue
			}

			stack[len(stack)-1].add(el.name, el.value())
		}
	}

	if root == nil {
		return nil, backend.ErrEmptyData
	}

	return root, nil
}

func encodeTree(enc *xml.Encoder, tree map[string]any) error {
	if len(tree) != 1 {
		return fmt.Errorf("%w: map has %d keys", ErrRootElement, len(tree))
	}

	for name, value := range tree {
		if _, ok := value.([]any); ok {
			return fmt.Errorf("%w: root <%s> is a list", ErrRootElement, name)
		}

		return encodeElement(enc, name, value)
	}

	return nil
}

func encodeElement(enc *xml.Encoder, name string, value any) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}

	switch v := value.(type) {
	case []any:
		for _, item := range v {
			err := encodeElement(enc, name, item)
			if err != nil {
				return err
			}
		}

		return nil
	case map[string]string:
		fields := make(map[string]any, len(v))
		for key, field := range v {
			fields[key] = field
		}

		return encodeElement(enc, name, fields)
	case map[string]any:
		var children []string

		for _, key := range slices.Sorted(maps.Keys(v)) {
			switch {
			case strings.HasPrefix(key, AttrPrefix):
				start.Attr = append(start.Attr, xml.Attr{
					Name:  xml.Name{Local: strings.TrimPrefix(key, AttrPrefix)},
					Value: fmt.Sprint(v[key]),
				})
			case key != TextKey:
				children = append(children, key)
			}
		}

		err := enc.EncodeToken(start)
		if err != nil {
			return err
		}

		if text, ok := v[TextKey]; ok {
			err = enc.EncodeToken(xml.CharData(fmt.Sprint(text)))
			if err != nil {
				return err
			}
		}

		for _, child := range children {
			err = encodeElement(enc, child, v[child])
			if err != nil {
				return err
			}
		}

		return enc.EncodeToken(start.End())
	default:
		err := enc.EncodeToken(start)
		if err != nil {
			return err
		}

		if v != nil {
			err = enc.EncodeToken(xml.CharData(fmt.Sprint(v)))
			if err != nil {
				return err
			}
		}

		return enc.EncodeToken(start.End())
	}
}
