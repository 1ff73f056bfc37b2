package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/detail"
	"github.com/a-h/templ"
)

// Template names understood by Templates.
const (
	IndexTemplate   = "index.html"
	ProjectTemplate = "project.html"
	ErrorTemplate   = "error.html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the embedded page layouts.
func Templates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Static returns the embedded stylesheet and scripts, rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Site carries the page chrome shared by every page.
type Site struct {
	Title string
	About string
}

// Renderer prepares page data for the html templates.
type Renderer struct {
	site  Site
	links Links
}

// NewRenderer returns a renderer for site that links with links.
func NewRenderer(site Site, links Links) *Renderer {
	return &Renderer{site: site, links: links}
}

// Links returns the link scheme of the renderer.
func (r *Renderer) Links() Links {
	return r.links
}

// Listing is the input of a listing page.
type Listing struct {
	Projects   []catalog.Project
	Categories []catalog.Category
	Stats      catalog.Stats
	Search     string
	Category   string
	Message    string
}

// IndexPage is the template data of index.html.
type IndexPage struct {
	Site       Site
	PageTitle  string
	Stylesheet string
	Live       bool
	Search     string
	Category   string
	ListingURL string
	ResetURL   string
	Listing    template.HTML
	Stats      template.HTML
}

// ProjectPage is the template data of project.html.
type ProjectPage struct {
	Site         Site
	PageTitle    string
	Stylesheet   string
	ListingURL   string
	Project      catalog.Project
	Category     catalog.Category
	Technologies string
	Gallery      template.HTML
	Specs        template.HTML
	Timeline     template.HTML
	Related      template.HTML
	Nav          template.HTML
}

// ErrorPage is the template data of error.html.
type ErrorPage struct {
	Site       Site
	PageTitle  string
	Stylesheet string
	ListingURL string
	Message    string
}

// Index builds the listing page data.
func (r *Renderer) Index(ctx context.Context, in Listing) (IndexPage, error) {
	category := in.Category
	if category == "" {
		category = catalog.AllCategories
	}
	page := IndexPage{
		Site:       r.site,
		PageTitle:  r.site.Title,
		Stylesheet: r.links.Asset("static/site.css"),
		Live:       r.links.Live(),
		Search:     in.Search,
		Category:   category,
		ListingURL: r.links.Listing("", catalog.AllCategories),
		ResetURL:   r.links.Listing("", catalog.AllCategories),
	}
	var err error
	if page.Listing, err = toHTML(ctx, ListingFragment(in, r.links)); err != nil {
		return IndexPage{}, err
	}
	if page.Stats, err = toHTML(ctx, Stats(in.Stats, in.Categories)); err != nil {
		return IndexPage{}, err
	}
	return page, nil
}

// Project builds the detail page data.
func (r *Renderer) Project(ctx context.Context, in detail.Page) (ProjectPage, error) {
	p := in.Project
	page := ProjectPage{
		Site:       r.site,
		PageTitle:  p.Title + " | " + r.site.Title,
		Stylesheet: r.links.Asset("static/site.css"),
		ListingURL: r.links.Listing("", catalog.AllCategories),
		Project:    p,
		Category:   in.Category,
	}
	if len(p.Technologies) > 0 {
		page.Technologies = strings.Join(p.Technologies, ", ")
	}
	sections := []struct {
		dst *template.HTML
		c   templ.Component
	}{
		{&page.Gallery, Gallery(p, r.links)},
		{&page.Specs, SpecsTable(p.Specs)},
		{&page.Timeline, Timeline(p.Timeline)},
		{&page.Related, Related(in.Related, r.links)},
		{&page.Nav, Nav(in.Adjacent, r.links)},
	}
	for _, s := range sections {
		html, err := toHTML(ctx, s.c)
		if err != nil {
			return ProjectPage{}, err
		}
		*s.dst = html
	}
	return page, nil
}

// Error builds the data of an error page.
func (r *Renderer) Error(message string) ErrorPage {
	return ErrorPage{
		Site:       r.site,
		PageTitle:  r.site.Title,
		Stylesheet: r.links.Asset("static/site.css"),
		ListingURL: r.links.Listing("", catalog.AllCategories),
		Message:    message,
	}
}

// Execute writes the named template with data to w.
func Execute(w io.Writer, tmpl *template.Template, name string, data any) error {
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func toHTML(ctx context.Context, c templ.Component) (template.HTML, error) {
	html, err := templ.ToGoHTML(ctx, c)
	if err != nil {
		return "", fmt.Errorf("render component: %w", err)
	}
	return html, nil
}
