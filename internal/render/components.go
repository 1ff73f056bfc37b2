// Package render turns catalog result sets into HTML. It owns presentation
// only: what to show is decided by the query and detail packages.
package render

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/detail"
	"github.com/a-h/templ"
)

const (
	cardTagLimit  = 3
	cardTechLimit = 2
)

// htmlWriter writes markup and keeps the first write error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// open writes a start tag. attrs are name/value pairs; values are escaped.
func (h *htmlWriter) open(tag string, attrs ...string) {
	h.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		h.raw(" " + attrs[i] + `="` + templ.EscapeString(attrs[i+1]) + `"`)
	}
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</" + tag + ">")
}

func (h *htmlWriter) element(tag, text string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(text)
	h.close(tag)
}

func safeURL(u string) string {
	return string(templ.URL(u))
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(h)
		return h.err
	})
}

func first(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// Card renders the listing card of one project: the first three tags, the
// first two technologies and the links that are set.
func Card(p catalog.Project, links Links) templ.Component {
	return component(func(h *htmlWriter) { card(h, p, links) })
}

func card(h *htmlWriter, p catalog.Project, links Links) {
	h.open("div", "class", "portfolio-item filter-"+p.Category, "data-project", p.ID)
	h.open("div", "class", "portfolio-wrap")
	h.open("img", "src", safeURL(links.Asset(p.Thumbnail)), "class", "img-fluid", "alt", p.Title, "loading", "lazy")

	h.open("div", "class", "portfolio-info")
	h.element("h4", p.Title)
	h.element("p", p.ShortDescription)
	h.open("div", "class", "portfolio-tags")
	for _, tag := range first(p.Tags, cardTagLimit) {
		h.element("span", tag, "class", "portfolio-tag")
	}
	h.close("div")
	if techs := first(p.Technologies, cardTechLimit); len(techs) > 0 {
		h.element("small", strings.Join(techs, ", "), "class", "portfolio-tech")
	}
	h.close("div")

	h.open("div", "class", "portfolio-links")
	if p.GithubLink != "" {
		h.element("a", "GitHub", "href", safeURL(p.GithubLink), "target", "_blank", "rel", "noopener", "title", "GitHub")
	}
	if p.LiveDemo != "" {
		h.element("a", "Live demo", "href", safeURL(p.LiveDemo), "target", "_blank", "rel", "noopener", "title", "Live Demo")
	}
	if preview := previewImage(p); preview != "" {
		h.element("a", "Preview", "href", safeURL(links.Asset(preview)), "class", "portfolio-lightbox", "data-gallery", "portfolioGallery", "title", p.Title)
	}
	h.element("a", "More details", "href", safeURL(links.Project(p)), "title", "More Details")
	h.close("div")

	h.close("div")
	h.close("div")
}

func previewImage(p catalog.Project) string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Thumbnail
}

// Cards renders a result set, or the "no results" block when it is empty.
func Cards(projects []catalog.Project, links Links) templ.Component {
	return component(func(h *htmlWriter) { cards(h, projects, links) })
}

func cards(h *htmlWriter, projects []catalog.Project, links Links) {
	h.open("div", "id", "projectsContainer", "class", "portfolio-container", "data-count", strconv.Itoa(len(projects)))
	if len(projects) == 0 {
		h.open("div", "id", "noResults", "class", "no-results")
		h.element("h4", "No projects found")
		h.element("p", "Try a different search term or category.")
		h.close("div")
	}
	for _, p := range projects {
		card(h, p, links)
	}
	h.close("div")
}

// Filters renders the category filter list with active marked.
func Filters(categories []catalog.Category, search, active string, links Links) templ.Component {
	return component(func(h *htmlWriter) { filters(h, categories, search, active, links) })
}

func filters(h *htmlWriter, categories []catalog.Category, search, active string, links Links) {
	h.open("ul", "id", "portfolio-filters", "class", "portfolio-filters")
	for _, c := range categories {
		if c.ID == active {
			h.open("li", "class", "filter-active", "data-filter", c.ID)
		} else {
			h.open("li", "data-filter", c.ID)
		}
		href := links.Listing(search, c.ID)
		attrs := []string{"href", safeURL(href)}
		if links.Live() {
			attrs = append(attrs,
				"hx-get", href,
				"hx-target", "#listing",
				"hx-select", "#listing",
				"hx-swap", "outerHTML",
				"hx-push-url", "true")
		}
		h.open("a", attrs...)
		h.open("i", "class", "bx "+c.Icon)
		h.close("i")
		h.raw(" ")
		h.text(c.Name)
		h.close("a")
		h.close("li")
	}
	h.close("ul")
}

// Stats renders the aggregate counters: total, one per category and
// completed projects.
func Stats(st catalog.Stats, categories []catalog.Category) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("div", "id", "stats", "class", "portfolio-stats")
		stat(h, "totalProjects", "Projects", st.Total)
		for _, c := range categories {
			if c.ID == catalog.AllCategories {
				continue
			}
			stat(h, c.ID+"Projects", c.Name, st.ByCategory[c.ID])
		}
		stat(h, "completedProjects", "Completed", st.Completed)
		h.close("div")
	})
}

func stat(h *htmlWriter, id, label string, n int) {
	h.open("div", "class", "stat")
	h.element("span", strconv.Itoa(n), "id", id, "class", "stat-value")
	h.element("span", label, "class", "stat-label")
	h.close("div")
}

// Nav renders the previous/next project links of a detail page.
func Nav(adj detail.Adjacent, links Links) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("nav", "class", "project-nav")
		navCard(h, "prev-project", "Previous Project", adj.Previous, links)
		navCard(h, "next-project", "Next Project", adj.Next, links)
		h.close("nav")
	})
}

func navCard(h *htmlWriter, id, label string, p *catalog.Project, links Links) {
	h.open("div", "id", id)
	if p != nil {
		h.open("a", "href", safeURL(links.Project(*p)), "class", "nav-project-card")
		h.element("div", label, "class", "nav-direction")
		h.element("h6", p.Title)
		h.close("a")
	}
	h.close("div")
}

// Related renders the related projects section.
func Related(projects []catalog.Project, links Links) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("div", "id", "related-projects", "class", "related-projects")
		for _, p := range projects {
			h.open("div", "class", "related-project-card")
			h.open("img", "src", safeURL(links.Asset(p.Thumbnail)), "alt", p.Title, "loading", "lazy")
			h.open("div", "class", "card-body")
			h.element("h5", p.Title)
			h.element("p", p.ShortDescription)
			h.element("a", "View Project", "href", safeURL(links.Project(p)), "class", "btn")
			h.close("div")
			h.close("div")
		}
		h.close("div")
	})
}

// Gallery renders the media gallery of a project.
func Gallery(p catalog.Project, links Links) templ.Component {
	return component(func(h *htmlWriter) {
		if len(p.Images) == 0 {
			return
		}
		h.open("section", "class", "project-gallery")
		for i, img := range p.Images {
			src := safeURL(links.Asset(img))
			h.open("figure", "class", "gallery-item")
			h.open("a", "href", src, "data-gallery", "projectGallery")
			h.open("img", "src", src, "alt", fmt.Sprintf("%s image %d", p.Title, i+1), "loading", "lazy")
			h.close("a")
			h.close("figure")
		}
		h.close("section")
	})
}

// SpecsTable renders the technical specifications of a project.
func SpecsTable(specs []catalog.Spec) templ.Component {
	return component(func(h *htmlWriter) {
		if len(specs) == 0 {
			return
		}
		h.open("div", "class", "project-section")
		h.element("h4", "Technical Specifications")
		h.open("table", "class", "table")
		h.open("tbody")
		for _, s := range specs {
			h.open("tr")
			h.open("td")
			h.element("strong", s.Name)
			h.close("td")
			h.element("td", s.Value)
			h.close("tr")
		}
		h.close("tbody")
		h.close("table")
		h.close("div")
	})
}

// Timeline renders the milestones of a project.
func Timeline(events []catalog.Milestone) templ.Component {
	return component(func(h *htmlWriter) {
		if len(events) == 0 {
			return
		}
		h.open("div", "class", "project-section")
		h.element("h4", "Project Timeline")
		h.open("div", "class", "timeline")
		for _, e := range events {
			h.open("div", "class", "timeline-item")
			h.element("div", e.Date, "class", "timeline-date")
			h.open("div", "class", "timeline-content")
			h.element("h6", e.Title)
			h.element("p", e.Description)
			h.close("div")
			h.close("div")
		}
		h.close("div")
		h.close("div")
	})
}

// Results renders the result block: an optional message and the cards.
func Results(projects []catalog.Project, message string, links Links) templ.Component {
	return component(func(h *htmlWriter) { results(h, projects, message, links) })
}

func results(h *htmlWriter, projects []catalog.Project, message string, links Links) {
	h.open("div", "id", "results")
	if message != "" {
		h.element("p", message, "class", "results-message", "role", "alert")
	}
	cards(h, projects, links)
	h.close("div")
}

// ListingFragment is the part of the listing page swapped in by HTMX after a
// filter or search event: the active category, the filters and the results.
func ListingFragment(in Listing, links Links) templ.Component {
	return component(func(h *htmlWriter) {
		category := in.Category
		if category == "" {
			category = catalog.AllCategories
		}
		h.open("div", "id", "listing")
		h.open("input", "type", "hidden", "name", "category", "value", category)
		filters(h, in.Categories, in.Search, category, links)
		results(h, in.Projects, in.Message, links)
		h.close("div")
	})
}
