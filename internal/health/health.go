package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Counter reports how many chat sessions are live
type Counter interface {
	Count() int
}

type status struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// NewRouter returns the liveness routes
func NewRouter(sessions Counter) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status{Status: "ok", Sessions: sessions.Count()})
	}).Methods(http.MethodGet)
	return r
}

// Server serves the liveness endpoint
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewServer creates a health server listening on addr
func NewServer(addr string, sessions Counter, logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(sessions),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves in the background until Shutdown
func (s *Server) Start() {
	go func() {
		s.logger.Info("Health endpoint listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Health server failed", zap.Error(err))
		}
	}()
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
