package render

import (
	"net/url"
	"path"
	"strings"

	"github.com/Zachkp/portfolio/internal/catalog"
)

// Links decides where rendered markup points to. The preview server and the
// static build lay out pages differently.
type Links interface {
	// Project is the detail page of p.
	Project(p catalog.Project) string
	// Asset is the URL of a media or static file path.
	Asset(path string) string
	// Listing is the listing page filtered to category.
	Listing(search, category string) string
	// Live reports whether listings can be re-queried from the page.
	Live() bool
}

// ServerLinks point at the routes of the preview server.
type ServerLinks struct{}

func (ServerLinks) Project(p catalog.Project) string {
	return "/projects/" + url.PathEscape(p.ID)
}

func (ServerLinks) Asset(path string) string {
	if path == "" || isAbsolute(path) {
		return path
	}
	return "/" + strings.TrimPrefix(path, "/")
}

func (ServerLinks) Listing(search, category string) string {
	q := url.Values{}
	if search != "" {
		q.Set("q", search)
	}
	if category != "" && category != catalog.AllCategories {
		q.Set("category", category)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func (ServerLinks) Live() bool { return true }

// StaticLinks point at files written by the static build, all relative to
// the output root.
type StaticLinks struct{}

func (StaticLinks) Project(p catalog.Project) string {
	return DetailFile(p)
}

func (StaticLinks) Asset(path string) string {
	if isAbsolute(path) {
		return path
	}
	return strings.TrimPrefix(path, "/")
}

func (StaticLinks) Listing(_, category string) string {
	return ListingFile(category)
}

func (StaticLinks) Live() bool { return false }

// DetailFile is the file name of a project's static detail page. Every page
// lives at the root of the output.
func DetailFile(p catalog.Project) string {
	if page := path.Base(strings.TrimSpace(p.DetailPage)); page != "." && page != "/" {
		if !strings.HasSuffix(page, ".html") {
			page += ".html"
		}
		return page
	}
	return p.ID + ".html"
}

// ListingFile is the file name of the static listing for category.
func ListingFile(category string) string {
	if category == "" || category == catalog.AllCategories {
		return "index.html"
	}
	return "category-" + category + ".html"
}

func isAbsolute(path string) bool {
	u, err := url.Parse(path)
	return err == nil && u.IsAbs()
}
