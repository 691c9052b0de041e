package ioinfo

import (
	"fmt"
	"io"

	"github.com/0xalexb/anyconf/backend"
)

// Input describes how to read or write one configuration input. It is created
// by Make and never modified.
type Input struct {
	src    any
	kind   Kind
	path   string
	parser backend.Parser
	opener Opener
}

// Source returns the object Make was called with.
func (in *Input) Source() any { return in.src }

// Kind returns the shape of the source.
func (in *Input) Kind() Kind { return in.kind }

// Path returns the normalized path of the source, or "" if it has none.
func (in *Input) Path() string { return in.path }

// Parser returns the resolved parser.
//
//nolint:ireturn // parsers are consumed through their interface
func (in *Input) Parser() backend.Parser { return in.parser }

// Opener returns the opener for the source.
func (in *Input) Opener() Opener { return in.opener }

// Open invokes the opener. Streams and absent inputs yield nil.
func (in *Input) Open(flag int) (io.ReadWriteCloser, error) {
	return in.opener(flag)
}

// Make classifies obj and resolves its parser. If obj is already an *Input it
// is returned unchanged.
func Make(obj any, byExt, byType backend.Index, forced Forced) (*Input, error) {
	if in, ok := obj.(*Input); ok && in != nil {
		return in, nil
	}

	if isAbsent(obj) && forced.IsZero() {
		return nil, fmt.Errorf("making input: %w", ErrInvalidArgument)
	}

	kind, path, opener, err := Classify(obj)
	if err != nil {
		return nil, err
	}

	parser, err := Resolve(path, forced, byType, byExt)
	if err != nil {
		return nil, err
	}

	return &Input{
		src:    obj,
		kind:   kind,
		path:   path,
		parser: parser,
		opener: opener,
	}, nil
}

func isAbsent(obj any) bool {
	if isNil(obj) {
		return true
	}

	s, ok := obj.(string)

	return ok && s == ""
}
