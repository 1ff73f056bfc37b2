// Package site writes the portfolio as static files that work from any file
// server or straight from disk.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/detail"
	"github.com/Zachkp/portfolio/internal/query"
	"github.com/Zachkp/portfolio/internal/render"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	staticDir = "static"
	mediaDir  = "Media"

	pageWorkers = 4
)

// Result summarises a build.
type Result struct {
	Pages int
	Media bool
}

// Builder renders every page of the catalog into a directory.
type Builder struct {
	store    *catalog.Store
	engine   *query.Engine
	nav      *detail.Navigator
	renderer *render.Renderer
	media    string
	logger   *zap.Logger
}

// NewBuilder creates a builder over store. media is the directory copied to
// Media/ in the output; it may be empty or missing.
func NewBuilder(store *catalog.Store, site render.Site, media string, logger *zap.Logger) *Builder {
	return &Builder{
		store:    store,
		engine:   query.NewEngine(store),
		nav:      detail.NewNavigator(store),
		renderer: render.NewRenderer(site, render.StaticLinks{}),
		media:    media,
		logger:   logger,
	}
}

type page struct {
	file string
	tmpl string
	data any
}

// Build writes index.html, one listing per category, one detail page per
// project, the static assets and the media directory to outDir.
func (b *Builder) Build(ctx context.Context, outDir string) (Result, error) {
	tmpl, err := render.Templates()
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output: %w", err)
	}

	pages, err := b.pages(ctx)
	if err != nil {
		return Result{}, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pageWorkers)
	for _, p := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writePage(tmpl, filepath.Join(outDir, p.file), p)
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	if err := replaceDir(filepath.Join(outDir, staticDir), render.Static()); err != nil {
		return Result{}, fmt.Errorf("copy static assets: %w", err)
	}

	res := Result{Pages: len(pages)}
	if b.media != "" {
		info, err := os.Stat(b.media)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			b.logger.Warn("media directory missing, skipping", zap.String("dir", b.media))
		case err != nil:
			return Result{}, fmt.Errorf("media directory: %w", err)
		case !info.IsDir():
			return Result{}, fmt.Errorf("media directory: %s is not a directory", b.media)
		default:
			if err := replaceDir(filepath.Join(outDir, mediaDir), os.DirFS(b.media)); err != nil {
				return Result{}, fmt.Errorf("copy media: %w", err)
			}
			res.Media = true
		}
	}

	b.logger.Info("site built",
		zap.String("out", outDir),
		zap.Int("pages", res.Pages),
		zap.Bool("media", res.Media),
	)
	return res, nil
}

// pages prepares the data of every page.
func (b *Builder) pages(ctx context.Context) ([]page, error) {
	snap := b.store.Snapshot()
	categories := snap.Categories()
	stats := snap.Stats()

	var out []page
	listed := false
	for _, c := range categories {
		if c.ID == catalog.AllCategories {
			listed = true
		}
		p, err := b.listingPage(ctx, snap, c.ID, categories, stats)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if !listed {
		p, err := b.listingPage(ctx, snap, catalog.AllCategories, categories, stats)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	for _, proj := range snap.Projects() {
		dp, err := b.nav.PageAt(snap, proj.ID)
		if err != nil {
			return nil, err
		}
		data, err := b.renderer.Project(ctx, dp)
		if err != nil {
			return nil, err
		}
		out = append(out, page{file: render.DetailFile(proj), tmpl: render.ProjectTemplate, data: data})
	}

	seen := make(map[string]bool, len(out))
	for _, p := range out {
		if !filepath.IsLocal(p.file) || strings.ContainsAny(p.file, `/\`) {
			return nil, fmt.Errorf("page %q is outside the output directory", p.file)
		}
		if seen[p.file] {
			return nil, fmt.Errorf("two pages write %s", p.file)
		}
		seen[p.file] = true
	}
	return out, nil
}

func (b *Builder) listingPage(ctx context.Context, snap catalog.Snapshot, category string, categories []catalog.Category, stats catalog.Stats) (page, error) {
	projects, err := b.engine.RunAt(snap, query.Request{Category: category})
	if err != nil {
		return page{}, err
	}
	data, err := b.renderer.Index(ctx, render.Listing{
		Projects:   projects,
		Categories: categories,
		Stats:      stats,
		Category:   category,
	})
	if err != nil {
		return page{}, err
	}
	return page{file: render.ListingFile(category), tmpl: render.IndexTemplate, data: data}, nil
}

func writePage(tmpl *template.Template, path string, p page) error {
	var buf bytes.Buffer
	if err := render.Execute(&buf, tmpl, p.tmpl, p.data); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.file, err)
	}
	return nil
}

// replaceDir copies fsys to dir, removing what a previous build left there.
func replaceDir(dir string, fsys fs.FS) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.CopyFS(dir, fsys)
}
