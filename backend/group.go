package backend

import (
	"cmp"
	"slices"
)

// Index maps a key (type name or file extension) to the descriptors registered
// under it, sorted by ascending priority. An Index is immutable once built.
type Index struct {
	keys   []string
	groups map[string][]Descriptor
}

// Keys returns the index keys in sorted order.
func (ix Index) Keys() []string {
	return slices.Clone(ix.keys)
}

// Len returns the number of keys.
func (ix Index) Len() int {
	return len(ix.keys)
}

// Group returns the descriptors registered under key, lowest priority first.
func (ix Index) Group(key string) []Descriptor {
	return slices.Clone(ix.groups[key])
}

// Best returns the highest-priority descriptor registered under key.
//
//nolint:ireturn // returns the registered descriptor as-is
func (ix Index) Best(key string) (Descriptor, bool) {
	group := ix.groups[key]
	if len(group) == 0 {
		return nil, false
	}

	return group[len(group)-1], true
}

type keyed struct {
	key      string
	desc     Descriptor
	priority int
}

// GroupByType indexes descriptors by their declared type.
func GroupByType(descs []Descriptor) Index {
	entries := make([]keyed, 0, len(descs))

	for _, desc := range descs {
		entries = append(entries, keyed{key: desc.Type(), desc: desc, priority: desc.Priority()})
	}

	return build(entries)
}

// GroupByExtension indexes descriptors by every extension they declare.
// A descriptor appears once under each distinct extension.
func GroupByExtension(descs []Descriptor) Index {
	entries := make([]keyed, 0, len(descs))

	for _, desc := range descs {
		priority := desc.Priority()
		exts := desc.Extensions()
		seen := make(map[string]struct{}, len(exts))

		for _, ext := range exts {
			if _, dup := seen[ext]; dup {
				continue
			}

			seen[ext] = struct{}{}
			entries = append(entries, keyed{key: ext, desc: desc, priority: priority})
		}
	}

	return build(entries)
}

func build(entries []keyed) Index {
	buckets := make(map[string][]keyed)
	keys := make([]string, 0)

	for _, entry := range entries {
		if _, ok := buckets[entry.key]; !ok {
			keys = append(keys, entry.key)
		}

		buckets[entry.key] = append(buckets[entry.key], entry)
	}

	slices.Sort(keys)

	groups := make(map[string][]Descriptor, len(buckets))

	for key, bucket := range buckets {
		// Stable: equal priorities keep registration order.
		slices.SortStableFunc(bucket, func(a, b keyed) int {
			return cmp.Compare(a.priority, b.priority)
		})

		group := make([]Descriptor, len(bucket))
		for i, entry := range bucket {
			group[i] = entry.desc
		}

		groups[key] = group
	}

	return Index{keys: keys, groups: groups}
}
