package registry

import (
	"slices"

	"github.com/0xalexb/anyconf/backend"
)

// Snapshot is an immutable pair of parser indices.
type Snapshot struct {
	descs  []backend.Descriptor
	byType backend.Index
	byExt  backend.Index
}

func newSnapshot(descs []backend.Descriptor) *Snapshot {
	descs = slices.Clone(descs)

	return &Snapshot{
		descs:  descs,
		byType: backend.GroupByType(descs),
		byExt:  backend.GroupByExtension(descs),
	}
}

// ByType returns the type index.
func (s *Snapshot) ByType() backend.Index { return s.byType }

// ByExtension returns the extension index.
func (s *Snapshot) ByExtension() backend.Index { return s.byExt }

// Types returns the sorted, deduplicated type names.
func (s *Snapshot) Types() []string { return s.byType.Keys() }

// Descriptors returns the descriptors the snapshot was built from, in
// registration order.
func (s *Snapshot) Descriptors() []backend.Descriptor { return slices.Clone(s.descs) }
