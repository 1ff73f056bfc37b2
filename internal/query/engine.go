// Package query combines category filtering and text search over the catalog
// into one result set.
package query

import (
	"fmt"

	"github.com/Zachkp/portfolio/internal/catalog"
)

// Engine answers listing queries against a catalog store.
type Engine struct {
	store *catalog.Store
}

// NewEngine creates an engine over store.
func NewEngine(store *catalog.Store) *Engine {
	return &Engine{store: store}
}

// Query returns the projects matching searchTerm within categoryID, in
// catalog order. The search runs first and the category narrows its result.
// An empty searchTerm matches everything and catalog.AllCategories disables
// the category filter. A category outside the taxonomy yields
// catalog.ErrInvalidCategory rather than an empty result.
func (e *Engine) Query(searchTerm, categoryID string) ([]catalog.Project, error) {
	return queryAt(e.store.Snapshot(), searchTerm, categoryID)
}

func queryAt(snap catalog.Snapshot, searchTerm, categoryID string) ([]catalog.Project, error) {
	if !snap.IsCategory(categoryID) {
		return nil, fmt.Errorf("query: %q: %w", categoryID, catalog.ErrInvalidCategory)
	}

	var results []catalog.Project
	if searchTerm != "" {
		results = snap.Search(searchTerm)
	} else {
		results = snap.Projects()
	}

	if categoryID == catalog.AllCategories {
		if results == nil {
			results = []catalog.Project{}
		}
		return results, nil
	}

	narrowed := make([]catalog.Project, 0, len(results))
	for _, p := range results {
		if p.Category == categoryID {
			narrowed = append(narrowed, p)
		}
	}
	return narrowed, nil
}

// Request is a listing query as it arrives from a UI or CLI.
type Request struct {
	Search   string `form:"q" json:"q"`
	Category string `form:"category" json:"category"`
}

// Normalize fills the defaults of an incoming request.
func (r Request) Normalize() Request {
	if r.Category == "" {
		r.Category = catalog.AllCategories
	}
	return r
}

// Run is Query over a normalized request.
func (e *Engine) Run(r Request) ([]catalog.Project, error) {
	r = r.Normalize()
	return e.Query(r.Search, r.Category)
}

// RunAt is Run against snap, for callers that read other parts of the
// catalog from the same view.
func (e *Engine) RunAt(snap catalog.Snapshot, r Request) ([]catalog.Project, error) {
	r = r.Normalize()
	return queryAt(snap, r.Search, r.Category)
}
