// Package server serves registry items, the generated theme stylesheet and a
// small preview page over HTTP.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/themeregistry/internal/registry"
	"github.com/jmylchreest/themeregistry/internal/selection"
	"github.com/jmylchreest/themeregistry/internal/theme"
	"github.com/jmylchreest/themeregistry/internal/themecss"
)

//go:embed *.tmpl
var templates embed.FS

// ErrNotFound is returned for names outside the servable set.
var ErrNotFound = errors.New("registry item not found")

// notFoundMessage is the error payload message for unknown items.
const notFoundMessage = "Registry item not found"

// Options configures a Server.
type Options struct {
	Addr         string
	ManifestPath string
	Resolver     registry.Resolver
	// ThemesDir is rendered into /themes.css. Empty disables the stylesheet.
	ThemesDir string
}

// Server serves a fixed set of registry documents computed at construction.
type Server struct {
	addr     string
	router   *http.ServeMux
	logger   hclog.Logger
	manifest []byte
	items    map[string][]byte
	css      []byte
	catalog  selection.Catalog
	preview  *template.Template
}

// New loads the manifest and every resolvable item. Items that cannot be
// resolved or read are logged and left out of the servable set.
func New(opts Options, logger hclog.Logger) (*Server, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("server")

	manifest, err := registry.LoadManifest(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	pretty, err := manifest.Pretty()
	if err != nil {
		return nil, err
	}

	items := make(map[string][]byte, len(manifest.Items))
	for _, item := range manifest.Items {
		src, err := opts.Resolver.Resolve(item)
		if err != nil {
			logger.Warn("item not servable", "name", item.Name, "error", err)
			continue
		}
		data, err := os.ReadFile(src) // #nosec G304 - resolved within configured source directories
		if err != nil {
			logger.Warn("item not servable", "name", item.Name, "error", err)
			continue
		}
		if !json.Valid(data) {
			logger.Warn("item not servable", "name", item.Name, "error", "invalid JSON")
			continue
		}
		items[item.Name] = data
	}

	var css []byte
	if opts.ThemesDir != "" {
		entries, err := theme.LoadDir(opts.ThemesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load themes: %w", err)
		}
		css, err = themecss.Generate(entries)
		if err != nil {
			return nil, err
		}
	}

	preview, err := template.ParseFS(templates, "preview.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview template: %w", err)
	}

	s := &Server{
		addr:     opts.Addr,
		router:   http.NewServeMux(),
		logger:   logger,
		manifest: pretty,
		items:    items,
		css:      css,
		catalog:  selection.CatalogFromManifest(manifest),
		preview:  preview,
	}
	s.setupRoutes()

	logger.Debug("server ready", "items", len(items))
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.HandleFunc("GET /api/r/{item}", s.handleItem)
	s.router.HandleFunc("GET /registry.json", s.handleManifest)
	s.router.HandleFunc("GET /themes.css", s.handleCSS)
	s.router.HandleFunc("GET /api/themes", s.handleThemes)
	s.router.HandleFunc("POST /api/theme", s.handleSetTheme)
	s.router.HandleFunc("GET /{$}", s.handlePreview)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.router)
}

// Lookup returns the document for name.
func (s *Server) Lookup(name string) ([]byte, error) {
	data, ok := s.items[name]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

// Entries returns every servable item name, sorted.
func (s *Server) Entries() []string {
	names := make([]string, 0, len(s.items))
	for name := range s.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export writes every servable document to <dir>/api/r/<name> so the
// endpoint can be hosted statically. It returns the written paths.
func (s *Server) Export(dir string) ([]string, error) {
	base := filepath.Join(dir, "api", "r")
	if err := os.MkdirAll(base, 0o755); err != nil { // #nosec G301
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var written []string
	for _, name := range s.Entries() {
		path := filepath.Join(base, name)
		if err := os.WriteFile(path, s.items[name], 0o644); err != nil { // #nosec G306
			return written, fmt.Errorf("failed to export %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("starting server", "addr", s.addr, "items", len(s.items))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
