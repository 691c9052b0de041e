package ioinfo

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when neither an input nor a forced type was supplied.
var ErrInvalidArgument = errors.New("input or forced type must be given")

// ErrUnknownFileType matches every *UnknownFileTypeError.
var ErrUnknownFileType = errors.New("unknown file type")

// ErrUnknownParserType matches every *UnknownParserTypeError.
var ErrUnknownParserType = errors.New("unknown parser type")

// UnknownFileTypeError reports an input whose format could not be determined.
type UnknownFileTypeError struct {
	Path string
}

func (e *UnknownFileTypeError) Error() string {
	return fmt.Sprintf("no parser found for file %q", e.Path)
}

// Is reports whether target is ErrUnknownFileType.
func (e *UnknownFileTypeError) Is(target error) bool {
	return target == ErrUnknownFileType
}

// UnknownParserTypeError reports a forced type with no registered parser.
type UnknownParserTypeError struct {
	Type string
}

func (e *UnknownParserTypeError) Error() string {
	return fmt.Sprintf("no parser found for type %q", e.Type)
}

// Is reports whether target is ErrUnknownParserType.
func (e *UnknownParserTypeError) Is(target error) bool {
	return target == ErrUnknownParserType
}
