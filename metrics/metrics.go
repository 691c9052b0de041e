// Package metrics exports parser registry activity to Prometheus.
//
// Metrics:
//   - anyconf_resolutions_total: resolutions by mode, parser type and outcome
//   - anyconf_registry_types: number of registered parser types
//   - anyconf_registry_extensions: number of registered file extensions
//   - anyconf_registry_rebuilds_total: number of snapshot swaps
package metrics

import (
	"errors"

	"github.com/0xalexb/anyconf/ioinfo"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "anyconf"

// Outcome label values.
const (
	OutcomeOK                = "ok"
	OutcomeInvalidArgument   = "invalid_argument"
	OutcomeUnknownFileType   = "unknown_file_type"
	OutcomeUnknownParserType = "unknown_parser_type"
	OutcomeError             = "error"
)

// Collector implements registry.Observer.
type Collector struct {
	resolutions *prometheus.CounterVec
	types       prometheus.Gauge
	extensions  prometheus.Gauge
	rebuilds    prometheus.Counter
}

// NewCollector creates the collector and registers its metrics with registerer.
func NewCollector(registerer prometheus.Registerer) *Collector {
	collector := &Collector{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "resolutions_total",
				Help:      "Total number of parser resolutions",
			},
			[]string{"mode", "type", "outcome"},
		),
		types: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "registry",
			Name:      "types",
			Help:      "Number of registered parser types",
		}),
		extensions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "registry",
			Name:      "extensions",
			Help:      "Number of registered file extensions",
		}),
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "registry",
			Name:      "rebuilds_total",
			Help:      "Total number of registry snapshot rebuilds",
		}),
	}

	registerer.MustRegister(
		collector.resolutions,
		collector.types,
		collector.extensions,
		collector.rebuilds,
	)

	return collector
}

// ObserveResolve counts one resolution.
func (c *Collector) ObserveResolve(mode, parserType string, err error) {
	c.resolutions.WithLabelValues(mode, parserType, Outcome(err)).Inc()
}

// ObserveRebuild records the size of a new snapshot.
func (c *Collector) ObserveRebuild(types, extensions int) {
	c.types.Set(float64(types))
	c.extensions.Set(float64(extensions))
	c.rebuilds.Inc()
}

// Outcome maps a resolution error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ioinfo.ErrInvalidArgument):
		return OutcomeInvalidArgument
	case errors.Is(err, ioinfo.ErrUnknownFileType):
		return OutcomeUnknownFileType
	case errors.Is(err, ioinfo.ErrUnknownParserType):
		return OutcomeUnknownParserType
	default:
		return OutcomeError
	}
}
