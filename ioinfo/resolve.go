package ioinfo

import (
	"fmt"
	"path"
	"strings"

	"github.com/0xalexb/anyconf/backend"
)

// Forced overrides extension-based parser inference. The zero value forces
// nothing.
type Forced struct {
	typ    string
	parser backend.Parser
}

// ForceType forces resolution through the type index. An empty type forces nothing.
func ForceType(typ string) Forced {
	return Forced{typ: typ}
}

// ForceParser bypasses the indices and uses parser as-is.
func ForceParser(parser backend.Parser) Forced {
	return Forced{parser: parser}
}

// IsZero reports whether nothing is forced.
func (f Forced) IsZero() bool {
	return f.typ == "" && f.parser == nil
}

// Type returns the forced type name, or "" if none.
func (f Forced) Type() string {
	return f.typ
}

// Mode names the resolution mode f selects: "parser", "type" or "extension".
func (f Forced) Mode() string {
	switch {
	case f.parser != nil:
		return "parser"
	case f.typ != "":
		return "type"
	default:
		return "extension"
	}
}

// FileExtension returns the text after the last dot of the base name of p.
// Leading dots are not extension separators, so ".bashrc" has no extension.
func FileExtension(p string) string {
	base := strings.TrimLeft(path.Base(NormPath(p)), ".")

	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}

	return base[idx+1:]
}

// FindByExtension returns the preferred descriptor for a file extension.
//
//nolint:ireturn // descriptors are consumed through their interface
func FindByExtension(ext string, byExt backend.Index) (backend.Descriptor, bool) {
	return byExt.Best(ext)
}

// FindByFilepath returns the preferred descriptor for the extension of path.
//
//nolint:ireturn // descriptors are consumed through their interface
func FindByFilepath(path string, byExt backend.Index) (backend.Descriptor, bool) {
	return FindByExtension(FileExtension(path), byExt)
}

// FindByType returns the preferred descriptor for a type name.
//
//nolint:ireturn // descriptors are consumed through their interface
func FindByType(typ string, byType backend.Index) (backend.Descriptor, bool) {
	return byType.Best(typ)
}

// Resolve returns a parser instance for path, honoring forced.
//
// A forced parser is returned unchanged. A forced type is looked up in byType
// only; otherwise the extension of path is looked up in byExt.
//
//nolint:ireturn // parsers are consumed through their interface
func Resolve(path string, forced Forced, byType, byExt backend.Index) (backend.Parser, error) {
	if path == "" && forced.IsZero() {
		return nil, fmt.Errorf("resolving parser: %w", ErrInvalidArgument)
	}

	if forced.parser != nil {
		return forced.parser, nil
	}

	if forced.typ == "" {
		desc, ok := FindByFilepath(path, byExt)
		if !ok {
			return nil, &UnknownFileTypeError{Path: path}
		}

		return desc.New(), nil
	}

	desc, ok := FindByType(forced.typ, byType)
	if !ok {
		return nil, &UnknownParserTypeError{Type: forced.typ}
	}

	return desc.New(), nil
}
