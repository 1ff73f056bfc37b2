package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/query"
	"github.com/Zachkp/portfolio/internal/render"
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const htmxRequestHeader = "HX-Request"

func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader(htmxRequestHeader), "true")
}

// listing serves the project listing. HTMX requests get only the listing
// fragment; everything else gets the full page.
func (s *Server) listing(c *gin.Context) {
	var req query.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		s.errorPage(c, http.StatusBadRequest, "Invalid query")
		return
	}
	req = req.Normalize()

	// One view for the cards, the filters and the counters.
	snap := s.store.Snapshot()
	status := http.StatusOK
	in := render.Listing{
		Categories: snap.Categories(),
		Stats:      snap.Stats(),
		Search:     req.Search,
		Category:   req.Category,
	}
	projects, err := s.engine.RunAt(snap, req)
	switch {
	case errors.Is(err, catalog.ErrInvalidCategory):
		status = http.StatusBadRequest
		in.Projects = []catalog.Project{}
		in.Category = catalog.AllCategories
		in.Message = fmt.Sprintf("Unknown category %q.", req.Category)
	case err != nil:
		s.internalError(c, err)
		return
	default:
		in.Projects = projects
	}

	c.Header("Vary", htmxRequestHeader)
	if isHTMX(c) {
		s.component(c, status, render.ListingFragment(in, s.renderer.Links()))
		return
	}
	page, err := s.renderer.Index(c.Request.Context(), in)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.HTML(status, render.IndexTemplate, page)
}

func (s *Server) project(c *gin.Context) {
	s.renderProject(c, c.Param("id"))
}

// detailPage resolves a detail page file name, as linked by older pages, to
// the canonical project route.
func (s *Server) detailPage(c *gin.Context) {
	p, err := s.store.ByDetailPage(c.Param("page"))
	if err != nil {
		s.errorPage(c, http.StatusNotFound, "Project not found")
		return
	}
	c.Redirect(http.StatusMovedPermanently, s.renderer.Links().Project(p))
}

func (s *Server) renderProject(c *gin.Context, id string) {
	page, err := s.nav.Page(id)
	if errors.Is(err, catalog.ErrNotFound) {
		s.errorPage(c, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	data, err := s.renderer.Project(c.Request.Context(), page)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.HTML(http.StatusOK, render.ProjectTemplate, data)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"projects": s.store.Len(),
	})
}

func (s *Server) apiProjects(c *gin.Context) {
	var req query.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	projects, err := s.engine.Run(req)
	if errors.Is(err, catalog.ErrInvalidCategory) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(projects),
		"projects": projects,
	})
}

func (s *Server) apiProject(c *gin.Context) {
	page, err := s.nav.Page(c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) apiStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Stats())
}

// component writes a templ component as the whole response.
func (s *Server) component(c *gin.Context, status int, comp templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := comp.Render(c.Request.Context(), c.Writer); err != nil {
		s.logger.Error("render fragment", zap.Error(err))
	}
}

func (s *Server) errorPage(c *gin.Context, status int, message string) {
	if isHTMX(c) {
		c.String(status, message)
		return
	}
	c.HTML(status, render.ErrorTemplate, s.renderer.Error(message))
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	)
	s.errorPage(c, http.StatusInternalServerError, "Something went wrong")
}
