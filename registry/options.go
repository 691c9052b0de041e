package registry

import "log/slog"

// Observer is notified about registry activity.
type Observer interface {
	// ObserveResolve is called after every resolution. parserType is empty on failure.
	ObserveResolve(mode, parserType string, err error)
	// ObserveRebuild is called after a snapshot has been swapped in.
	ObserveRebuild(types, extensions int)
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver registers an observer.
func WithObserver(observer Observer) Option {
	return func(r *Registry) {
		if observer != nil {
			r.observer = observer
		}
	}
}

type nopObserver struct{}

func (nopObserver) ObserveResolve(string, string, error) {}

func (nopObserver) ObserveRebuild(int, int) {}
