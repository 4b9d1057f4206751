package http

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pulseboard/pulseboard/internal/logger"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	log    logger.Logger
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	CORSEnabled        bool
	CORSAllowedOrigins []string
}

// Handlers bundles the route registrars mounted on the server.
type Handlers struct {
	Analytics   *AnalyticsHandler
	Board       *BoardHandler
	Messenger   *MessengerHandler
	Reports     *ReportsHandler
	Diagnostics *DiagnosticsHandler
}

// NewServer creates a new HTTP server with all routes and middleware wired.
func NewServer(config ServerConfig, handlers Handlers, log logger.Logger) *Server {
	router := mux.NewRouter()

	router.Use(correlationMiddleware)
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	if config.CORSEnabled {
		router.Use(corsMiddleware(config.CORSAllowedOrigins))
		// Preflight requests need a matching route for the middleware chain
		// to run; the middleware answers them before this handler is reached.
		router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	}

	handlers.Analytics.RegisterRoutes(router)
	handlers.Board.RegisterRoutes(router)
	handlers.Messenger.RegisterRoutes(router)
	handlers.Reports.RegisterRoutes(router)
	handlers.Diagnostics.RegisterRoutes(router)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	return &Server{
		server: &http.Server{
			Addr:         net.JoinHostPort(config.Host, config.Port),
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		log: log,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.log.Info(context.Background(), "starting HTTP server", map[string]interface{}{
		"addr": s.server.Addr,
	})
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info(ctx, "shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
