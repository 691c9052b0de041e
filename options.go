package anyconf

import (
	"time"

	"github.com/0xalexb/anyconf/backend"
	"github.com/0xalexb/anyconf/listener"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules        []fx.Option
	LogLevel       string
	LogFormat      string
	Sources        []backend.Source
	Descriptors    []backend.Descriptor
	ManifestPath   string
	ReloadDebounce time.Duration
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithSources adds descriptor sources after the builtin backends.
func WithSources(sources ...backend.Source) Option {
	return func(opts *Options) {
		opts.Sources = append(opts.Sources, sources...)
	}
}

// WithDescriptors registers additional parser descriptors.
func WithDescriptors(descs ...backend.Descriptor) Option {
	return func(opts *Options) {
		opts.Descriptors = append(opts.Descriptors, descs...)
	}
}

// WithManifest loads alias types from the YAML manifest at path and rebuilds
// the registry whenever the file changes. A missing file contributes nothing.
func WithManifest(path string) Option {
	return func(opts *Options) {
		opts.ManifestPath = path
	}
}

// WithReloadDebounce sets the quiet period before a changed manifest is reloaded.
func WithReloadDebounce(debounce time.Duration) Option {
	return func(opts *Options) {
		opts.ReloadDebounce = debounce
	}
}

// WithInspector adds a named HTTP listener serving registry introspection
// and metrics. Without options it listens on listener.DefaultAddress.
// Call multiple times with different names to create multiple listeners.
func WithInspector(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, inspectorModule(name, opts))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}
