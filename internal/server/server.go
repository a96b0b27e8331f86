// Package server serves the log and disassembly fragments consumed by the
// viewer page. Both source files are read again on every request.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"rvlogview/internal/config"
	"rvlogview/internal/disasm"
	"rvlogview/internal/execlog"
	"rvlogview/internal/source"
)

//go:embed public
var publicFS embed.FS

// Option customizes a Server.
type Option func(*Server)

// WithSources replaces the file readers, mainly for tests.
func WithSources(disasmSrc, logSrc source.Reader) Option {
	return func(s *Server) {
		s.disasm = disasmSrc
		s.log = logSrc
	}
}

// WithFuncLabels labels each log entry with the function containing its
// start address.
func WithFuncLabels(enabled bool) Option {
	return func(s *Server) { s.funcLabels = enabled }
}

// Server is the HTTP endpoint layer.
type Server struct {
	cfg        config.Config
	disasm     source.Reader
	log        source.Reader
	funcLabels bool
	handler    http.Handler
}

// New builds a Server for cfg.
func New(cfg config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		disasm: source.NewFile(cfg.DisasmPath, cfg.Cache),
		log:    source.NewFile(cfg.LogPath, cfg.Cache),
	}
	for _, opt := range opts {
		opt(s)
	}

	static, err := s.staticHandler()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/logs", s.handleLogs)
	mux.HandleFunc("GET /api/disasm", s.handleDisasm)
	mux.Handle("GET /", static)

	s.handler = loggingHandler(securityHeaders(mux))
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:        s.handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: http.DefaultMaxHeaderBytes,
	}

	slog.Info("Serving viewer", "url", "http://"+ln.Addr().String(),
		"disasm", s.cfg.DisasmPath, "log", s.cfg.LogPath)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := execlog.Scan(source.ReadOrEmpty(s.log))

	var funcs *disasm.FuncIndex
	if s.funcLabels && len(entries) > 0 {
		funcs = disasm.IndexFuncs(disasm.Parse(source.ReadOrEmpty(s.disasm)))
	}

	slog.Debug("Scanned log", "entries", len(entries))
	writeFragment(w, RenderLogs(entries, funcs))
}

func (s *Server) handleDisasm(w http.ResponseWriter, r *http.Request) {
	lines := disasm.Parse(source.ReadOrEmpty(s.disasm))

	var hl *disasm.Range
	q := r.URL.Query()
	if rng, ok := disasm.ParseRange(singleParam(q["start"]), singleParam(q["end"])); ok {
		hl = &rng
	}

	slog.Debug("Rendering disassembly", "lines", len(lines), "query", r.URL.RawQuery)
	writeFragment(w, disasm.RenderHTML(lines, hl))
}

// singleParam returns the value of a query parameter given exactly once.
func singleParam(vals []string) string {
	if len(vals) != 1 {
		return ""
	}
	return vals[0]
}

func writeFragment(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (s *Server) staticHandler() (http.Handler, error) {
	if s.cfg.PublicDir != "" {
		return http.FileServer(http.Dir(s.cfg.PublicDir)), nil
	}
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		return nil, fmt.Errorf("embedded assets: %w", err)
	}
	return http.FileServerFS(sub), nil
}
