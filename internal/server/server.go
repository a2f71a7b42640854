package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/vibetagger/internal/analysis"
	"github.com/muurk/vibetagger/internal/discovery"
	"github.com/muurk/vibetagger/internal/logging"
	"github.com/muurk/vibetagger/internal/version"
)

// shutdownTimeout bounds graceful shutdown of open HTTP connections
const shutdownTimeout = 10 * time.Second

// Config holds the server configuration
type Config struct {
	Host string
	Port int // 0 picks a free port

	// Advertise announces the server over mDNS as InstanceName
	// (the hostname when empty).
	Advertise    bool
	InstanceName string

	// Model is reported in the mDNS TXT record.
	Model string
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server is the browser front-end: an HTTP server with one controller per
// browser session.
type Server struct {
	config   *Config
	analyzer analysis.Analyzer
	sessions *sessionStore
	handler  http.Handler

	// ctx bounds every analysis the server dispatches. It is cancelled on
	// shutdown.
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	listener net.Listener
	http     *http.Server
	wg       sync.WaitGroup // live WebSocket connections
}

// New creates a new Server instance. Every session shares analyzer.
func New(config *Config, analyzer analysis.Analyzer) (*Server, error) {
	if config == nil {
		return nil, errors.New("server config is required")
	}
	if analyzer == nil {
		return nil, errors.New("analyzer is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:   config,
		analyzer: analyzer,
		sessions: newSessionStore(analyzer),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.handler = s.withLogging(s.routes())
	return s, nil
}

// Handler returns the HTTP handler serving the UI and the API
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the bound address once the server is listening
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start starts the server and blocks until SIGINT/SIGTERM or a fatal error
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	s.mu.Lock()
	s.listener = listener
	s.http = srv
	s.mu.Unlock()

	logging.Info("Starting Vibe-Tagger server",
		zap.String("addr", listener.Addr().String()),
		zap.String("version", version.Version),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if s.config.Advertise {
		g.Go(func() error {
			return s.advertise(gctx, listener.Addr().(*net.TCPAddr).Port)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutdown signal received, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// advertise keeps the mDNS announcement up until ctx is done
func (s *Server) advertise(ctx context.Context, port int) error {
	name := s.config.InstanceName
	if name == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "vibetagger"
		}
		name = host
	}

	txt := map[string]string{
		"version": version.Version,
		"path":    "/",
	}
	if s.config.Model != "" {
		txt["model"] = s.config.Model
	}

	adv, err := discovery.Advertise(name, port, txt)
	if err != nil {
		return err
	}
	<-ctx.Done()
	adv.Shutdown()
	return nil
}

// Shutdown gracefully shuts down the server. In-flight analyses are
// cancelled and WebSocket connections are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.cancel()

	s.mu.Lock()
	srv := s.http
	s.mu.Unlock()

	var err error
	if srv != nil {
		// Hijacked WebSocket connections are not tracked by http.Server;
		// they notice s.ctx and close themselves.
		if err = srv.Shutdown(ctx); err != nil {
			logging.Warn("HTTP shutdown incomplete", zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()
	return err
}

// ActiveSessions returns the number of browser sessions
func (s *Server) ActiveSessions() int {
	return s.sessions.len()
}
