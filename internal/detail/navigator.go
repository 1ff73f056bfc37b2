// Package detail computes the cross-project context of a project detail
// page: its neighbours in catalog order and a short list of related work.
package detail

import (
	"fmt"

	"github.com/Zachkp/portfolio/internal/catalog"
)

// DefaultRelatedLimit is the number of related projects shown on a detail page.
const DefaultRelatedLimit = 3

// Adjacent holds the previous and next projects in catalog order. Either may
// be nil at the ends of the catalog.
type Adjacent struct {
	Previous *catalog.Project `json:"previous,omitempty"`
	Next     *catalog.Project `json:"next,omitempty"`
}

// Page bundles everything a detail view needs, read from one snapshot.
type Page struct {
	Project  catalog.Project   `json:"project"`
	Category catalog.Category  `json:"category"`
	Adjacent Adjacent          `json:"adjacent"`
	Related  []catalog.Project `json:"related"`
}

// Navigator answers detail queries against a catalog store.
type Navigator struct {
	store *catalog.Store
}

// NewNavigator creates a navigator over store.
func NewNavigator(store *catalog.Store) *Navigator {
	return &Navigator{store: store}
}

// Adjacent returns the neighbours of id.
func (n *Navigator) Adjacent(id string) (Adjacent, error) {
	return adjacent(n.store.Snapshot(), id)
}

// Related returns up to limit projects related to id: first the other
// projects of its category, then projects of other categories, both in
// catalog order. A limit of zero or less means DefaultRelatedLimit.
func (n *Navigator) Related(id string, limit int) ([]catalog.Project, error) {
	return related(n.store.Snapshot(), id, limit)
}

// Page returns the project, its neighbours and related projects.
func (n *Navigator) Page(id string) (Page, error) {
	return n.PageAt(n.store.Snapshot(), id)
}

// PageAt is Page against snap.
func (n *Navigator) PageAt(snap catalog.Snapshot, id string) (Page, error) {
	idx, ok := snap.Index(id)
	if !ok {
		return Page{}, fmt.Errorf("detail %q: %w", id, catalog.ErrNotFound)
	}
	adj, err := adjacent(snap, id)
	if err != nil {
		return Page{}, err
	}
	rel, err := related(snap, id, DefaultRelatedLimit)
	if err != nil {
		return Page{}, err
	}
	p := snap.At(idx)
	cat, _ := snap.Category(p.Category)
	return Page{Project: p, Category: cat, Adjacent: adj, Related: rel}, nil
}

func adjacent(snap catalog.Snapshot, id string) (Adjacent, error) {
	idx, ok := snap.Index(id)
	if !ok {
		return Adjacent{}, fmt.Errorf("adjacent %q: %w", id, catalog.ErrNotFound)
	}
	var adj Adjacent
	if idx > 0 {
		prev := snap.At(idx - 1)
		adj.Previous = &prev
	}
	if idx+1 < snap.Len() {
		next := snap.At(idx + 1)
		adj.Next = &next
	}
	return adj, nil
}

func related(snap catalog.Snapshot, id string, limit int) ([]catalog.Project, error) {
	idx, ok := snap.Index(id)
	if !ok {
		return nil, fmt.Errorf("related %q: %w", id, catalog.ErrNotFound)
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	current := snap.At(idx)

	out := make([]catalog.Project, 0, limit)
	for i := 0; i < snap.Len() && len(out) < limit; i++ {
		if p := snap.At(i); p.ID != id && p.Category == current.Category {
			out = append(out, p)
		}
	}
	for i := 0; i < snap.Len() && len(out) < limit; i++ {
		if p := snap.At(i); p.ID != id && p.Category != current.Category {
			out = append(out, p)
		}
	}
	return out, nil
}
