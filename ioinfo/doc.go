// Package ioinfo classifies configuration inputs and resolves the parser that
// should process them.
//
// Make is the entry point used by load and dump operations. It classifies the
// input object, resolves a parser from the type and extension indices and
// returns an immutable Input:
//
//	in, err := ioinfo.Make("conf/app.yml", byExt, byType, ioinfo.Forced{})
//	// in.Kind() == ioinfo.KindPath, in.Parser().Type() == "yaml"
//
// Inputs may be path strings, PathLike objects, open streams (io.Reader or
// io.Writer) or nil together with a forced type. Nothing in this package opens
// a file: the Opener carried by an Input is invoked by the caller.
//
// Resolution failures are reported with three conditions:
//   - ErrInvalidArgument when neither an input nor a forced type is given
//   - *UnknownFileTypeError (errors.Is ErrUnknownFileType) when no parser
//     handles the path's extension or the input cannot be classified
//   - *UnknownParserTypeError (errors.Is ErrUnknownParserType) when the forced
//     type is not registered
package ioinfo
