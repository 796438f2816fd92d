// Package httpserver wraps net/http server lifecycle: mount handlers, run
// until the context is cancelled, shut down gracefully.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	defaultPort         = "8080"
	defaultWriteTimeout = 15 * time.Second
	defaultReadTimeout  = 5 * time.Second
)

type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	mux      *http.ServeMux
	server   *http.Server
	listener net.Listener
}

func NewServer(config Config) *Server {
	if config.ReadTimeout == 0 {
		config.ReadTimeout = defaultReadTimeout
	}

	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaultWriteTimeout
	}

	if config.Port == "" {
		config.Port = defaultPort
	}

	mux := http.NewServeMux()

	server := &http.Server{ //nolint:exhaustruct
		Addr:         ":" + config.Port,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return &Server{
		mux:      mux,
		server:   server,
		listener: nil,
	}
}

func (s *Server) Mount(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
}

// WithListener makes Run serve on an existing listener instead of the
// configured port. Used by tests.
func (s *Server) WithListener(l net.Listener) {
	s.listener = l
}

func (s *Server) Run(ctx context.Context) error {
	s.server.Handler = s.mux
	s.server.BaseContext = func(net.Listener) context.Context {
		return ctx
	}

	srvErr := make(chan error, 1)

	go func() {
		var err error
		if s.listener != nil {
			err = s.server.Serve(s.listener)
		} else {
			err = s.server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		} else {
			srvErr <- nil
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.WithoutCancel(ctx))
	case err := <-srvErr:
		return err
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	return nil
}

func (s *Server) Address() string {
	return s.server.Addr
}
