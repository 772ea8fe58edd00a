// Package api serves the HTTP control surface of a running grab: device
// state, parameter access, the latest frame, device events and metrics.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/smazurov/spincam/internal/api/models"
	"github.com/smazurov/spincam/internal/capture"
	"github.com/smazurov/spincam/internal/devices"
	"github.com/smazurov/spincam/internal/events"
	"github.com/smazurov/spincam/internal/logging"
	"github.com/smazurov/spincam/internal/version"
	"github.com/smazurov/spincam/pkg/machinevision"
)

// Device is the part of the Spinnaker adapter exposed over HTTP.
type Device interface {
	TypeName() string
	ListDevices() []machinevision.ListedDevice
	State() devices.State
	SessionID() string
	Specification() (machinevision.Specification, bool)
	Parameters() []machinevision.Parameter
	Parameter(name string) (machinevision.Parameter, bool)
	SetParameter(name string, v any) error
}

var _ Device = (*devices.Spinnaker)(nil)

// Options configures a Server. Only Device is required.
type Options struct {
	Device Device

	// Snapshot enables GET /api/snapshot.
	Snapshot *capture.Snapshot

	// Bus enables GET /api/events.
	Bus *events.Bus

	// MetricsHandler is mounted at GET /metrics.
	MetricsHandler http.Handler

	Logger *slog.Logger
}

// Server is the HTTP API server.
type Server struct {
	api      huma.API
	mux      *http.ServeMux
	device   Device
	snapshot *capture.Snapshot
	bus      *events.Bus
	logger   *slog.Logger

	mu         sync.Mutex
	httpServer *http.Server
}

// NewServer creates the API and registers all routes on a new mux.
func NewServer(opts Options) *Server {
	mux := http.NewServeMux()

	config := huma.DefaultConfig("spincam API", version.Get().Version)
	config.Info.Description = "Control and monitoring API for a FLIR Spinnaker camera"
	config.Servers = []*huma.Server{}

	s := &Server{
		api:      humago.New(mux, config),
		mux:      mux,
		device:   opts.Device,
		snapshot: opts.Snapshot,
		bus:      opts.Bus,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = logging.GetLogger("api")
	}

	s.api.UseMiddleware(s.loggingMiddleware)

	if opts.MetricsHandler != nil {
		mux.Handle("GET /metrics", opts.MetricsHandler)
	}

	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// API returns the Huma API instance.
func (s *Server) API() huma.API {
	return s.api
}

// Start listens on addr and blocks until Stop is called.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()
	s.logger.Info("Starting API server", "addr", addr, "docs", "http://"+addr+"/docs")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting for in-flight requests until ctx
// expires. Open event streams are cut off when ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	s.logger.Info("Stopping API server")
	if err := srv.Shutdown(ctx); err != nil {
		return srv.Close()
	}
	return nil
}

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Tags:        []string{"system"},
	}, func(_ context.Context, _ *struct{}) (*models.HealthResponse, error) {
		return &models.HealthResponse{
			Body: models.HealthData{Status: "ok", Message: "API is healthy"},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Tags:        []string{"system"},
	}, func(_ context.Context, _ *struct{}) (*models.VersionResponse, error) {
		info := version.Get()
		return &models.VersionResponse{
			Body: models.VersionData{
				Version:   info.Version,
				GitCommit: info.GitCommit,
				BuildDate: info.BuildDate,
				GoVersion: info.GoVersion,
				Platform:  info.Platform,
			},
		}, nil
	})

	s.registerDeviceRoutes()
	s.registerParameterRoutes()
	s.registerSnapshotRoutes()
	if s.bus != nil {
		s.registerEventRoutes()
	}
}
