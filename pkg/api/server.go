package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openqpu/pulsecheck/pkg/cache"
	"github.com/openqpu/pulsecheck/pkg/device"
	"github.com/openqpu/pulsecheck/pkg/history"
	"github.com/openqpu/pulsecheck/pkg/httputil"
	"github.com/openqpu/pulsecheck/pkg/observability"
)

// Server wires the validation handlers onto a gorilla/mux router.
type Server struct {
	router   *mux.Router
	registry *device.Registry
	cache    cache.Cache
	recorder history.Recorder
	logger   *observability.Logger
	metrics  *observability.Metrics

	maxBodyBytes int64
}

// Options holds the optional server collaborators. Nil fields degrade
// gracefully: no cache means every task is validated, no recorder means
// history queries return empty results.
type Options struct {
	Cache        cache.Cache
	Recorder     history.Recorder
	Metrics      *observability.Metrics
	MaxBodyBytes int64
}

// NewServer creates the API server and registers all routes.
func NewServer(registry *device.Registry, logger *observability.Logger, opts Options) *Server {
	recorder := opts.Recorder
	if recorder == nil {
		recorder = history.NopRecorder{}
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 4 * 1024 * 1024
	}

	s := &Server{
		router:       mux.NewRouter(),
		registry:     registry,
		cache:        opts.Cache,
		recorder:     recorder,
		logger:       logger,
		metrics:      opts.Metrics,
		maxBodyBytes: maxBody,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.handle("POST", "/api/v1/validate", s.validateInline)
	s.handle("GET", "/api/v1/devices", s.listDevices)
	s.handle("GET", "/api/v1/devices/{name}", s.getDevice)
	s.handle("POST", "/api/v1/devices/{name}/validate", s.validateAgainstDevice)
	s.handle("GET", "/api/v1/history", s.searchHistory)
	s.handle("GET", "/api/v1/history/stats", s.historyStats)
}

func (s *Server) handle(method, path string, handler http.HandlerFunc) {
	var h http.Handler = handler
	if s.metrics != nil {
		h = s.metrics.InstrumentHandler(path, h)
	}
	s.router.Handle(path, h).Methods(method)
}

// Handler returns the complete middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return httputil.Chain(
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(s.logger),
		httputil.RecoveryMiddleware(s.logger),
		httputil.ContentTypeMiddleware,
		httputil.MaxBytesMiddleware(s.maxBodyBytes),
	)(s.router)
}

// Router exposes the bare router for tests.
func (s *Server) Router() *mux.Router {
	return s.router
}
