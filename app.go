package anyconf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/0xalexb/anyconf/backend"
	"github.com/0xalexb/anyconf/backend/builtin"
	"github.com/0xalexb/anyconf/backend/manifest"
	"github.com/0xalexb/anyconf/config"
	"github.com/0xalexb/anyconf/fspath"
	"github.com/0xalexb/anyconf/listener"
	"github.com/0xalexb/anyconf/logging"
	"github.com/0xalexb/anyconf/metrics"
	"github.com/0xalexb/anyconf/registry"
	"github.com/0xalexb/anyconf/reload"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured starting point for a parser registry application using Fx.
type App struct {
	app      *fx.App
	registry *registry.Registry
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	app := &App{}
	app.app = configure(&options, &app.registry)

	return app
}

func configure(options *Options, reg **registry.Registry) *fx.App {
	logger := createLogger(options.LogLevel, options.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}),
		fx.Supply(logger),
		registryModule(options),
		watchModule(options),
		fx.Options(options.Modules...),
		fx.Populate(reg),
	)
}

func createLogger(level, format string, w io.Writer) *slog.Logger {
	config := logging.LoggerConfig{Level: level, Format: format}

	return logging.NewLogger(config, w)
}

//nolint:ireturn // fx.Option is the standard return type for Fx modules
func registryModule(options *Options) fx.Option {
	return fx.Module("registry",
		fx.Provide(
			prometheus.NewRegistry,
			func(promRegistry *prometheus.Registry) prometheus.Registerer { return promRegistry },
			func(promRegistry *prometheus.Registry) prometheus.Gatherer { return promRegistry },
			metrics.NewCollector,
			func(logger *slog.Logger, collector *metrics.Collector) (*registry.Registry, error) {
				return registry.NewFromSources(
					sources(options),
					registry.WithLogger(logging.Component(logger, "registry")),
					registry.WithObserver(collector),
				)
			},
			func(reg *registry.Registry) config.Resolver { return reg },
		),
	)
}

// sources lists the builtin backends, then user sources and descriptors, then
// the manifest aliases resolved against everything before them.
func sources(options *Options) []backend.Source {
	srcs := []backend.Source{builtin.Source()}
	srcs = append(srcs, options.Sources...)

	if len(options.Descriptors) > 0 {
		srcs = append(srcs, backend.Static(options.Descriptors...))
	}

	if options.ManifestPath != "" {
		srcs = append(srcs, manifest.NewSource(fspath.OS(options.ManifestPath), backend.Concat(srcs...)))
	}

	return srcs
}

//nolint:ireturn // fx.Option is the standard return type for Fx modules
func watchModule(options *Options) fx.Option {
	if options.ManifestPath == "" {
		return fx.Options()
	}

	return fx.Module("reload",
		fx.Invoke(func(lifecycle fx.Lifecycle, reg *registry.Registry, logger *slog.Logger) error {
			watcher, err := reload.New(
				reload.Config{Files: []string{options.ManifestPath}, Debounce: options.ReloadDebounce},
				reg,
				logging.Component(logger, "reload"),
			)
			if err != nil {
				return err
			}

			lifecycle.Append(fx.Hook{
				OnStart: watcher.Start,
				OnStop:  watcher.Stop,
			})

			return nil
		}),
	)
}

//nolint:ireturn // fx.Option is the standard return type for Fx modules
func inspectorModule(name string, opts []listener.Option) fx.Option {
	if len(opts) == 0 {
		opts = []listener.Option{listener.WithAddress(listener.DefaultAddress)}
	}

	return fx.Options(
		fx.Provide(fx.Annotate(
			func(reg *registry.Registry, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
				return listener.NewHandler(reg, gatherer, logging.Component(logger, "inspect"))
			},
			fx.ResultTags(fmt.Sprintf(`name:"%s"`, name)),
		)),
		listener.NewModule(name, opts...),
	)
}

// Registry returns the parser registry, or nil when the app failed to build.
func (app *App) Registry() *registry.Registry {
	if app == nil {
		return nil
	}

	return app.registry
}

// Err returns the error, if any, encountered while building the app.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err() //nolint:wrapcheck // fx already describes the failure
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
