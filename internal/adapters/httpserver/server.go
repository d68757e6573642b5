// Package httpserver expone el Router por HTTP en modo serve (fuera de Lambda).
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// MaxBody: Discord nunca manda interacciones tan grandes.
const MaxBody = 1 << 20

type Server struct {
	mux *http.ServeMux
	srv *http.Server
	log *zap.Logger
}

func New(addr string, interactions http.Handler, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{mux: http.NewServeMux(), log: log}
	s.routes(interactions)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	return s
}

func (s *Server) routes(interactions http.Handler) {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.Handle("/", s.limitBody(interactions))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > MaxBody {
			s.log.Warn("interaction body too large", zap.Int64("bytes", r.ContentLength))
			http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, MaxBody)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) Addr() string { return s.srv.Addr }

// Start bloquea hasta Shutdown; el cierre ordenado no es error.
func (s *Server) Start() error {
	s.log.Info("http listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
