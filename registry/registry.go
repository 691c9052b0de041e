package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/0xalexb/anyconf/backend"
	"github.com/0xalexb/anyconf/ioinfo"
)

// Registry resolves parsers against the current snapshot.
type Registry struct {
	snapshot atomic.Pointer[Snapshot]
	// mu serializes rebuilds; readers never take it.
	mu       sync.Mutex
	sources  []backend.Source
	logger   *slog.Logger
	observer Observer
}

// New builds a registry from a fixed descriptor list. Reload re-applies the
// same list.
func New(descs []backend.Descriptor, opts ...Option) *Registry {
	reg := newRegistry([]backend.Source{backend.Static(descs...)}, opts)
	reg.swap(newSnapshot(descs))

	return reg
}

// NewFromSources builds a registry from the descriptors of every source, in
// order. The sources are consulted again on Reload.
func NewFromSources(sources []backend.Source, opts ...Option) (*Registry, error) {
	reg := newRegistry(slices.Clone(sources), opts)

	err := reg.Reload()
	if err != nil {
		return nil, err
	}

	return reg, nil
}

func newRegistry(sources []backend.Source, opts []Option) *Registry {
	reg := &Registry{
		sources:  sources,
		logger:   slog.Default(),
		observer: nopObserver{},
	}

	for _, apply := range opts {
		apply(reg)
	}

	return reg
}

// Snapshot returns the current snapshot.
func (r *Registry) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// Rebuild replaces the snapshot with one built from descs. The descriptors also
// replace the registry's sources, so a later Reload keeps them.
func (r *Registry) Rebuild(descs []backend.Descriptor) {
	descs = slices.Clone(descs)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sources = []backend.Source{backend.Static(descs...)}
	r.swap(newSnapshot(descs))
}

// Reload collects descriptors from the registry's sources and rebuilds. The
// current snapshot is kept if any source fails.
func (r *Registry) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var descs []backend.Descriptor

	for i, src := range r.sources {
		found, err := src.Descriptors()
		if err != nil {
			return fmt.Errorf("loading descriptors from source %d: %w", i, err)
		}

		descs = append(descs, found...)
	}

	r.swap(newSnapshot(descs))

	return nil
}

func (r *Registry) swap(snap *Snapshot) {
	r.snapshot.Store(snap)

	r.logger.Info("parser registry built",
		slog.Int("parsers", len(snap.descs)),
		slog.Int("types", snap.byType.Len()),
		slog.Int("extensions", snap.byExt.Len()),
	)
	r.observer.ObserveRebuild(snap.byType.Len(), snap.byExt.Len())
}

// ListTypes returns the sorted, deduplicated names of all registered types.
func (r *Registry) ListTypes() []string {
	return r.Snapshot().Types()
}

// FindByExtension returns the preferred descriptor for a file extension.
//
//nolint:ireturn // descriptors are consumed through their interface
func (r *Registry) FindByExtension(ext string) (backend.Descriptor, bool) {
	return ioinfo.FindByExtension(ext, r.Snapshot().ByExtension())
}

// FindByType returns the preferred descriptor for a type name.
//
//nolint:ireturn // descriptors are consumed through their interface
func (r *Registry) FindByType(typ string) (backend.Descriptor, bool) {
	return ioinfo.FindByType(typ, r.Snapshot().ByType())
}

// Resolve returns a parser for path, honoring forced.
//
//nolint:ireturn // parsers are consumed through their interface
func (r *Registry) Resolve(path string, forced ioinfo.Forced) (backend.Parser, error) {
	snap := r.Snapshot()

	parser, err := ioinfo.Resolve(path, forced, snap.ByType(), snap.ByExtension())
	r.observe(forced, parser, err)

	if err != nil {
		return nil, err
	}

	return parser, nil
}

// Inspect classifies obj and resolves its parser.
func (r *Registry) Inspect(obj any, forced ioinfo.Forced) (*ioinfo.Input, error) {
	if in, ok := obj.(*ioinfo.Input); ok && in != nil {
		return in, nil
	}

	snap := r.Snapshot()

	in, err := ioinfo.Make(obj, snap.ByExtension(), snap.ByType(), forced)
	if err != nil {
		r.observe(forced, nil, err)

		return nil, err
	}

	r.observe(forced, in.Parser(), nil)

	return in, nil
}

// FindParser returns the parser to use for obj, which may be anything Inspect
// accepts.
//
//nolint:ireturn // parsers are consumed through their interface
func (r *Registry) FindParser(obj any, forced ioinfo.Forced) (backend.Parser, error) {
	in, err := r.Inspect(obj, forced)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("using parser",
		slog.String("type", in.Parser().Type()),
		slog.String("kind", in.Kind().String()),
		slog.String("path", in.Path()),
	)

	return in.Parser(), nil
}

// FindParserByType returns a parser instance for the given type.
//
//nolint:ireturn // parsers are consumed through their interface
func (r *Registry) FindParserByType(typ string) (backend.Parser, error) {
	if typ == "" {
		return nil, fmt.Errorf("finding parser by type: %w", ioinfo.ErrInvalidArgument)
	}

	return r.Resolve("", ioinfo.ForceType(typ))
}

func (r *Registry) observe(forced ioinfo.Forced, parser backend.Parser, err error) {
	parserType := ""
	if parser != nil {
		parserType = parser.Type()
	}

	r.observer.ObserveResolve(forced.Mode(), parserType, err)
}
