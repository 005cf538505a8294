package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	logx "github.com/market-analysis-agent/server/pkg/logger"
)

// Server wraps the HTTP server with routing and CORS.
type Server struct {
	srv *http.Server
}

func NewServer(addr string, handler *Handler) *Server {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           cors.AllowAll().Handler(r),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start blocks serving requests until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	logx.Info().Str("addr", s.srv.Addr).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
