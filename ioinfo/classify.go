package ioinfo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
)

// Kind is the shape of a configuration input.
type Kind int

// Input kinds.
const (
	KindNone Kind = iota
	KindPath
	KindPathObject
	KindStream
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPath:
		return "path"
	case KindPathObject:
		return "path-object"
	case KindStream:
		return "stream"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Opener opens the resource behind an input. flag takes the os.O_* flags.
type Opener func(flag int) (io.ReadWriteCloser, error)

// PathLike is a structured path that knows how to open itself, for example a
// path on a non-OS filesystem.
type PathLike interface {
	AsPosix() string
	Open(flag int) (io.ReadWriteCloser, error)
}

type named interface {
	Name() string
}

// FilePerm is the permission used when the path opener creates a file.
const FilePerm = 0o600

// Noop is the opener of inputs that are never opened: absent inputs and
// already open streams. It returns nil and no error.
func Noop(int) (io.ReadWriteCloser, error) {
	return nil, nil //nolint:nilnil // nothing to open
}

// OpenPath returns an opener for a filesystem path.
func OpenPath(path string) Opener {
	return func(flag int) (io.ReadWriteCloser, error) {
		file, err := os.OpenFile(path, flag, FilePerm) // #nosec G304 -- path chosen by the caller
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}

		return file, nil
	}
}

// NormPath normalizes a path: it is cleaned and uses forward slashes. The empty
// path stays empty. The filesystem is not consulted.
func NormPath(path string) string {
	if path == "" {
		return ""
	}

	return filepath.ToSlash(filepath.Clean(path))
}

// Classify determines the kind of obj, its normalized path and the opener to
// use for it. Streams without a name get an empty path. Typed nil values, such
// as a nil *os.File, are absent like nil.
func Classify(obj any) (Kind, string, Opener, error) {
	if isNil(obj) {
		return KindNone, "", Noop, nil
	}

	switch value := obj.(type) {
	case nil:
		return KindNone, "", Noop, nil
	case string:
		if value == "" {
			return KindNone, "", Noop, nil
		}

		path := NormPath(value)

		return KindPath, path, OpenPath(path), nil
	case PathLike:
		return KindPathObject, NormPath(value.AsPosix()), value.Open, nil
	case io.Reader, io.Writer:
		path := ""
		if stream, ok := value.(named); ok {
			path = NormPath(stream.Name())
		}

		return KindStream, path, Noop, nil
	default:
		return KindNone, "", nil, &UnknownFileTypeError{Path: fmt.Sprintf("%#v", obj)}
	}
}

// isNil reports whether obj is nil or a nil pointer, map, slice, func, chan or
// interface wrapped in a non-nil interface.
func isNil(obj any) bool {
	if obj == nil {
		return true
	}

	value := reflect.ValueOf(obj)

	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return value.IsNil()
	default:
		return false
	}
}
