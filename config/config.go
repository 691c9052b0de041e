package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/0xalexb/anyconf/backend"
	"github.com/0xalexb/anyconf/ioinfo"
)

// ErrNoInput is returned when an input resolved to a parser but has nothing to read or write.
var ErrNoInput = errors.New("input has nothing to read or write")

// ErrSectionUnsupported is returned when a section is requested from a parser
// that cannot load sections.
var ErrSectionUnsupported = errors.New("parser does not support sections")

// Resolver inspects inputs. *registry.Registry implements it.
type Resolver interface {
	Inspect(obj any, forced ioinfo.Forced) (*ioinfo.Input, error)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Load decodes src into target.
func Load(res Resolver, src any, target any, opts ...Option) error {
	options := collect(opts)

	in, err := res.Inspect(src, options.forced)
	if err != nil {
		return err
	}

	reader, closeFn, err := openReader(in)
	if err != nil {
		return err
	}

	defer closeFn()

	parser := in.Parser()

	if options.section == "" {
		err = parser.Load(reader, target)
	} else {
		sectionLoader, ok := parser.(backend.SectionLoader)
		if !ok {
			return fmt.Errorf("%w: %s", ErrSectionUnsupported, parser.Type())
		}

		err = sectionLoader.LoadSection(reader, target, options.section)
	}

	if err != nil {
		return fmt.Errorf("loading %s: %w", describe(in), err)
	}

	return nil
}

// Loads decodes content of the given type into target.
func Loads(res Resolver, content []byte, typ string, target any, opts ...Option) error {
	return Load(res, bytes.NewReader(content), target, append(slices.Clone(opts), ForceType(typ))...)
}

// Dump encodes data to dst.
func Dump(res Resolver, data any, dst any, opts ...Option) error {
	options := collect(opts)

	in, err := res.Inspect(dst, options.forced)
	if err != nil {
		return err
	}

	writer, closeFn, err := openWriter(in)
	if err != nil {
		return err
	}

	err = in.Parser().Dump(writer, data)

	closeErr := closeFn()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("dumping %s: %w", describe(in), err)
	}

	return nil
}

// Dumps encodes data in the given type.
func Dumps(res Resolver, data any, typ string, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer

	err := Dump(res, data, &buf, append(slices.Clone(opts), ForceType(typ))...)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Provider returns a function that loads src into target, sets defaults and validates.
func Provider[T any](target *T, src any, section string, opts ...Option) func(Resolver) (*T, error) {
	opts = append(slices.Clone(opts), Section(section))

	return func(res Resolver) (*T, error) {
		err := Load(res, src, target, opts...)
		if err != nil {
			return nil, fmt.Errorf("loading error: %w", err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("section", section))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}

func openReader(in *ioinfo.Input) (io.Reader, func(), error) {
	switch in.Kind() {
	case ioinfo.KindStream:
		reader, ok := in.Source().(io.Reader)
		if !ok {
			return nil, nil, fmt.Errorf("%w: stream is not readable", ErrNoInput)
		}

		return reader, func() {}, nil
	case ioinfo.KindPath, ioinfo.KindPathObject:
		rwc, err := in.Open(os.O_RDONLY)
		if err != nil {
			return nil, nil, err
		}

		return rwc, func() { _ = rwc.Close() }, nil
	default:
		return nil, nil, ErrNoInput
	}
}

func openWriter(in *ioinfo.Input) (io.Writer, func() error, error) {
	switch in.Kind() {
	case ioinfo.KindStream:
		writer, ok := in.Source().(io.Writer)
		if !ok {
			return nil, nil, fmt.Errorf("%w: stream is not writable", ErrNoInput)
		}

		return writer, func() error { return nil }, nil
	case ioinfo.KindPath, ioinfo.KindPathObject:
		rwc, err := in.Open(os.O_WRONLY | os.O_CREATE | os.O_TRUNC)
		if err != nil {
			return nil, nil, err
		}

		return rwc, rwc.Close, nil
	default:
		return nil, nil, ErrNoInput
	}
}

func describe(in *ioinfo.Input) string {
	if in.Path() != "" {
		return fmt.Sprintf("%s %q as %s", in.Kind(), in.Path(), in.Parser().Type())
	}

	return fmt.Sprintf("%s as %s", in.Kind(), in.Parser().Type())
}
