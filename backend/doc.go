// Package backend defines the contracts shared by configuration format backends
// and the grouping engine that indexes them.
//
// A backend is described by a Descriptor: a type name (e.g. "json"), the file
// extensions it recognizes, a priority and a constructor for Parser instances.
// Several descriptors may share a type or an extension; the one with the
// highest priority is preferred.
//
// GroupByType and GroupByExtension turn a descriptor collection into two
// immutable Index values:
//
//	byType := backend.GroupByType(descs)
//	byExt := backend.GroupByExtension(descs)
//
//	desc, ok := byExt.Best("yml")
//
// Within each group, entries are sorted by ascending priority. Descriptors with
// equal priority keep their registration order, so the one registered last wins.
package backend
