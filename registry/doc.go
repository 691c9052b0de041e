// Package registry owns the parser indices used to resolve configuration inputs.
//
// A Registry is built once from descriptor sources and can be rebuilt later,
// for example when plugin manifests change. Every build produces a new
// immutable Snapshot that replaces the previous one atomically, so concurrent
// readers always see a complete pair of indices.
//
//	reg, err := registry.NewFromSources([]backend.Source{builtin.Source()},
//	    registry.WithLogger(logger))
//	in, err := reg.Inspect("conf/app.yaml", ioinfo.Forced{})
package registry
