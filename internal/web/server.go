// Package web serves the portfolio over HTTP for local preview: the listing
// with live search, project detail pages, a JSON API and, when enabled, the
// catalog maintenance endpoints.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/detail"
	"github.com/Zachkp/portfolio/internal/query"
	"github.com/Zachkp/portfolio/internal/render"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Options tune the preview server.
type Options struct {
	// MediaDir is served under /Media when set.
	MediaDir string
	// AdminEnabled mounts the /admin group for loopback clients.
	AdminEnabled bool
}

// Server is the preview server over one catalog store.
type Server struct {
	store    *catalog.Store
	engine   *query.Engine
	nav      *detail.Navigator
	renderer *render.Renderer
	logger   *zap.Logger
	router   *gin.Engine
}

// New builds the gin engine and registers every route.
func New(store *catalog.Store, site render.Site, opts Options, logger *zap.Logger) (*Server, error) {
	tmpl, err := render.Templates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:    store,
		engine:   query.NewEngine(store),
		nav:      detail.NewNavigator(store),
		renderer: render.NewRenderer(site, render.ServerLinks{}),
		logger:   logger,
	}

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(requestID(), recovery(logger), accessLog(logger))
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", http.FS(render.Static()))
	if opts.MediaDir != "" {
		r.Static("/Media", opts.MediaDir)
	}

	r.GET("/", s.listing)
	r.GET("/projects", s.listing)
	r.GET("/projects/:id", s.project)
	r.GET("/p/:page", s.detailPage)
	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.GET("/projects", s.apiProjects)
	api.GET("/projects/:id", s.apiProject)
	api.GET("/stats", s.apiStats)

	if opts.AdminEnabled {
		s.setupAdminRoutes(r)
	}
	r.NoRoute(func(c *gin.Context) {
		s.errorPage(c, http.StatusNotFound, "Page not found")
	})

	s.router = r
	return s, nil
}

// Handler returns the http handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down preview server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
