package listener

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/0xalexb/anyconf/ioinfo"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Introspector is the read side of a parser registry.
type Introspector interface {
	ListTypes() []string
	Inspect(obj any, forced ioinfo.Forced) (*ioinfo.Input, error)
}

// TypesResponse is the body of GET /types.
type TypesResponse struct {
	Types []string `json:"types"`
}

// ResolveResponse is the body of GET /resolve.
type ResolveResponse struct {
	Type string `json:"type"`
	Kind string `json:"kind"`
	Path string `json:"path"`
	Mode string `json:"mode"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHandler serves registry introspection:
//
//	GET /types                    registered parser types
//	GET /resolve?path=..&type=..  parser chosen for a path or forced type
//	GET /metrics                  Prometheus exposition, when gatherer is non-nil
func NewHandler(reg Introspector, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /types", func(w http.ResponseWriter, _ *http.Request) {
		types := reg.ListTypes()
		if types == nil {
			types = []string{}
		}

		writeJSON(w, logger, http.StatusOK, TypesResponse{Types: types})
	})

	mux.HandleFunc("GET /resolve", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		forced := ioinfo.ForceType(query.Get("type"))

		in, err := reg.Inspect(query.Get("path"), forced)
		if err != nil {
			writeJSON(w, logger, statusOf(err), ErrorResponse{Error: err.Error()})

			return
		}

		writeJSON(w, logger, http.StatusOK, ResolveResponse{
			Type: in.Parser().Type(),
			Kind: in.Kind().String(),
			Path: in.Path(),
			Mode: forced.Mode(),
		})
	})

	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{ //nolint:exhaustruct // defaults are fine
			ErrorLog:      slog.NewLogLogger(logger.Handler(), slog.LevelError),
			ErrorHandling: promhttp.ContinueOnError,
		}))
	}

	return withRequestID(withAccessLog(withRecovery(mux, logger), logger))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ioinfo.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ioinfo.ErrUnknownFileType), errors.Is(err, ioinfo.ErrUnknownParserType):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		logger.Error("failed to write response", slog.Any("error", err))
	}
}
