// Package catalog holds the project records and category taxonomy of the
// portfolio and answers read-only queries over them.
package catalog

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Store is an ordered, validated project catalog. Reads are lock free and
// always see one consistent snapshot; writes build a new snapshot and swap it.
type Store struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[snapshot]
}

type snapshot struct {
	projects   []Project
	categories []Category
	byID       map[string]int
	byPage     map[string]int
	byCategory map[string]int
	folded     []foldedText
}

// foldedText is the lower-cased searchable text of one project.
type foldedText struct {
	fields []string // title, short and full description
	tags   []string
	techs  []string
}

// New validates data and returns a store over a private copy of it.
func New(data Data) (*Store, error) {
	snap, err := newSnapshot(data)
	if err != nil {
		return nil, err
	}
	s := &Store{}
	s.snap.Store(snap)
	return s, nil
}

func newSnapshot(data Data) (*snapshot, error) {
	snap := &snapshot{
		projects:   make([]Project, 0, len(data.Projects)),
		categories: append([]Category(nil), data.Categories...),
		byID:       make(map[string]int, len(data.Projects)),
		byPage:     make(map[string]int, len(data.Projects)),
		byCategory: make(map[string]int, len(data.Categories)),
		folded:     make([]foldedText, 0, len(data.Projects)),
	}

	for i, c := range snap.categories {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("category %d: empty id: %w", i, ErrMalformedRecord)
		}
		if !validID(c.ID) {
			return nil, fmt.Errorf("category %q: id is not a plain name: %w", c.ID, ErrMalformedRecord)
		}
		if _, ok := snap.byCategory[c.ID]; ok {
			return nil, fmt.Errorf("category %q: %w", c.ID, ErrDuplicateID)
		}
		snap.byCategory[c.ID] = i
	}

	for _, p := range data.Projects {
		if err := snap.append(p.clone()); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

func (s *snapshot) append(p Project) error {
	if err := s.validate(p); err != nil {
		return err
	}
	if _, ok := s.byID[p.ID]; ok {
		return fmt.Errorf("project %q: %w", p.ID, ErrDuplicateID)
	}
	idx := len(s.projects)
	s.projects = append(s.projects, p)
	s.folded = append(s.folded, foldProject(p))
	s.byID[p.ID] = idx
	if page := pageKey(p.DetailPage); page != "" {
		if _, ok := s.byPage[page]; !ok {
			s.byPage[page] = idx
		}
	}
	return nil
}

func (s *snapshot) validate(p Project) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("project with title %q: empty id: %w", p.Title, ErrMalformedRecord)
	}
	if !validID(p.ID) {
		return fmt.Errorf("project %q: id is not a plain name: %w", p.ID, ErrMalformedRecord)
	}
	if p.Category == AllCategories {
		return fmt.Errorf("project %q: category %q is reserved: %w", p.ID, p.Category, ErrMalformedRecord)
	}
	if _, ok := s.byCategory[p.Category]; !ok {
		return fmt.Errorf("project %q: unknown category %q: %w", p.ID, p.Category, ErrMalformedRecord)
	}
	return nil
}

// with returns a copy of s where the record at idx is replaced by p.
func (s *snapshot) with(idx int, p Project) *snapshot {
	next := &snapshot{
		projects:   append([]Project(nil), s.projects...),
		categories: s.categories,
		byID:       s.byID,
		byCategory: s.byCategory,
		folded:     append([]foldedText(nil), s.folded...),
	}
	next.projects[idx] = p
	next.folded[idx] = foldProject(p)

	next.byPage = make(map[string]int, len(s.byPage))
	for i, q := range next.projects {
		if page := pageKey(q.DetailPage); page != "" {
			if _, ok := next.byPage[page]; !ok {
				next.byPage[page] = i
			}
		}
	}
	return next
}

func (s *Store) load() *snapshot {
	return s.snap.Load()
}

// Len returns the number of projects.
func (s *Store) Len() int {
	return len(s.load().projects)
}

// Projects returns every project in catalog order.
func (s *Store) Projects() []Project {
	return append([]Project(nil), s.load().projects...)
}

// Categories returns the taxonomy in definition order.
func (s *Store) Categories() []Category {
	return append([]Category(nil), s.load().categories...)
}

// Category returns the category with the given id.
func (s *Store) Category(id string) (Category, bool) {
	snap := s.load()
	idx, ok := snap.byCategory[id]
	if !ok {
		return Category{}, false
	}
	return snap.categories[idx], true
}

// IsCategory reports whether id is a filterable category. The "all"
// sentinel is always valid.
func (s *Store) IsCategory(id string) bool {
	if id == AllCategories {
		return true
	}
	_, ok := s.load().byCategory[id]
	return ok
}

// ByID returns the project with the given id.
func (s *Store) ByID(id string) (Project, error) {
	snap := s.load()
	idx, ok := snap.byID[id]
	if !ok {
		return Project{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return snap.projects[idx], nil
}

// ByDetailPage resolves a detail page name such as "mapping.html" or "mapping"
// to its project.
func (s *Store) ByDetailPage(page string) (Project, error) {
	snap := s.load()
	idx, ok := snap.byPage[pageKey(page)]
	if !ok {
		return Project{}, fmt.Errorf("page %q: %w", page, ErrNotFound)
	}
	return snap.projects[idx], nil
}

// ByCategory returns the projects in a category, in catalog order. The "all"
// sentinel returns the whole catalog.
func (s *Store) ByCategory(categoryID string) ([]Project, error) {
	snap := s.load()
	if categoryID == AllCategories {
		return append([]Project(nil), snap.projects...), nil
	}
	if _, ok := snap.byCategory[categoryID]; !ok {
		return nil, fmt.Errorf("%q: %w", categoryID, ErrInvalidCategory)
	}
	return filter(snap.projects, func(p Project) bool { return p.Category == categoryID }), nil
}

// Featured returns the featured projects in catalog order.
func (s *Store) Featured() []Project {
	return filter(s.load().projects, func(p Project) bool { return p.Featured })
}

// ByTag returns projects with a tag containing substr, ignoring case.
func (s *Store) ByTag(substr string) []Project {
	snap := s.load()
	needle := fold(substr)
	out := make([]Project, 0)
	for i, p := range snap.projects {
		if containsAny(snap.folded[i].tags, needle) {
			out = append(out, p)
		}
	}
	return out
}

// Search returns projects whose title, descriptions, tags or technologies
// contain query, ignoring case. An empty query matches every project.
func (s *Store) Search(query string) []Project {
	return s.load().search(query)
}

func (s *snapshot) search(query string) []Project {
	needle := fold(query)
	out := make([]Project, 0)
	for i, p := range s.projects {
		if s.folded[i].matches(needle) {
			out = append(out, p)
		}
	}
	return out
}

// Stats returns the aggregate counts for the current catalog.
func (s *Store) Stats() Stats {
	return s.load().stats()
}

func (s *snapshot) stats() Stats {
	st := Stats{
		Total:      len(s.projects),
		ByCategory: make(map[string]int, len(s.categories)),
	}
	for _, c := range s.categories {
		if c.ID != AllCategories {
			st.ByCategory[c.ID] = 0
		}
	}
	for _, p := range s.projects {
		st.ByCategory[p.Category]++
		if p.Status == StatusCompleted {
			st.Completed++
		}
	}
	return st
}

// Update replaces fields of one project. The new record is validated and the
// catalog is swapped in one step, so readers see either the old or the new
// record and never a mix.
func (s *Store) Update(id string, patch Patch) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.load()
	idx, ok := snap.byID[id]
	if !ok {
		return Project{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	updated := patch.Apply(snap.projects[idx])
	if err := snap.validate(updated); err != nil {
		return Project{}, fmt.Errorf("update: %w", err)
	}
	s.snap.Store(snap.with(idx, updated))
	return updated, nil
}

// Replace swaps the whole catalog for data once it validates. On error the
// current catalog is kept.
func (s *Store) Replace(data Data) error {
	next, err := newSnapshot(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snap.Store(next)
	s.mu.Unlock()
	return nil
}

// Data returns a copy of the current catalog definition.
func (s *Store) Data() Data {
	snap := s.load()
	out := Data{
		Projects:   make([]Project, 0, len(snap.projects)),
		Categories: append([]Category(nil), snap.categories...),
	}
	for _, p := range snap.projects {
		out.Projects = append(out.Projects, p.clone())
	}
	return out
}

// Snapshot is a consistent read-only view of the catalog. Callers that need
// several answers from the same state should take one Snapshot and query it.
type Snapshot struct {
	snap *snapshot
}

// Snapshot returns the current view.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{snap: s.load()}
}

// Projects returns every project in catalog order.
func (v Snapshot) Projects() []Project {
	return append([]Project(nil), v.snap.projects...)
}

// Categories returns the taxonomy in definition order.
func (v Snapshot) Categories() []Category {
	return append([]Category(nil), v.snap.categories...)
}

// Stats is Store.Stats evaluated against this view.
func (v Snapshot) Stats() Stats {
	return v.snap.stats()
}

// Index returns the catalog position of id.
func (v Snapshot) Index(id string) (int, bool) {
	idx, ok := v.snap.byID[id]
	return idx, ok
}

// At returns the project at catalog position i.
func (v Snapshot) At(i int) Project {
	return v.snap.projects[i]
}

// Len returns the number of projects.
func (v Snapshot) Len() int {
	return len(v.snap.projects)
}

// IsCategory reports whether id is "all" or a known category.
func (v Snapshot) IsCategory(id string) bool {
	if id == AllCategories {
		return true
	}
	_, ok := v.snap.byCategory[id]
	return ok
}

// Category returns the category with the given id.
func (v Snapshot) Category(id string) (Category, bool) {
	idx, ok := v.snap.byCategory[id]
	if !ok {
		return Category{}, false
	}
	return v.snap.categories[idx], true
}

// Search is Store.Search evaluated against this view.
func (v Snapshot) Search(query string) []Project {
	return v.snap.search(query)
}

func filter(in []Project, keep func(Project) bool) []Project {
	out := make([]Project, 0)
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// validID reports whether id can be used as a single URL path segment and as
// a file name inside the output directory.
func validID(id string) bool {
	if strings.HasPrefix(id, ".") || strings.Contains(id, "..") {
		return false
	}
	return !strings.ContainsAny(id, "/\\?#%")
}

func pageKey(page string) string {
	page = strings.TrimSpace(page)
	if i := strings.LastIndex(page, "/"); i >= 0 {
		page = page[i+1:]
	}
	return strings.TrimSuffix(page, ".html")
}

func fold(s string) string {
	// Casers may be stateful; take a fresh one per call.
	return cases.Lower(language.Und).String(s)
}

func foldAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fold(s)
	}
	return out
}

func foldProject(p Project) foldedText {
	return foldedText{
		fields: []string{fold(p.Title), fold(p.ShortDescription), fold(p.FullDescription)},
		tags:   foldAll(p.Tags),
		techs:  foldAll(p.Technologies),
	}
}

func (f foldedText) matches(needle string) bool {
	return containsAny(f.fields, needle) ||
		containsAny(f.tags, needle) ||
		containsAny(f.techs, needle)
}

func containsAny(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}
