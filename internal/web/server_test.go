package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/catalog/catalogtest"
	"github.com/Zachkp/portfolio/internal/render"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newServer(t *testing.T, opts Options) (*Server, *catalog.Store) {
	t.Helper()
	store := catalogtest.NewStore(t)
	s, err := New(store, render.Site{Title: "Portfolio", About: "About me"}, opts, zap.NewNop())
	require.NoError(t, err)
	return s, store
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func get(s *Server, target string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return do(s, req)
}

func TestListing_FullPage(t *testing.T) {
	s, _ := newServer(t, Options{})

	w := get(s, "/", false)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `id="listing"`)
	assert.Contains(t, body, `hx-trigger="input changed delay:300ms, search"`)
	assert.Contains(t, body, "htmx.org")
	assert.Contains(t, body, "About me")
	assert.Equal(t, 5, strings.Count(body, `class="portfolio-item `))
	assert.Equal(t, "HX-Request", w.Header().Get("Vary"))
}

func TestListing_Fragment(t *testing.T) {
	s, _ := newServer(t, Options{})

	w := get(s, "/?q=robot&category=robotics", true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "<html")
	assert.True(t, strings.HasPrefix(body, `<div id="listing">`))
	assert.Contains(t, body, `<li class="filter-active" data-filter="robotics">`)
	assert.Equal(t, 3, strings.Count(body, `class="portfolio-item `))

	w = get(s, "/projects?q=zzz", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="noResults"`)
}

func TestListing_InvalidCategory(t *testing.T) {
	s, _ := newServer(t, Options{})

	w := get(s, "/?category=astronomy", false)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown category &#34;astronomy&#34;.")

	w = get(s, "/projects?category=astronomy", true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `id="noResults"`)
}

func TestProjectPage(t *testing.T) {
	s, _ := newServer(t, Options{})

	w := get(s, "/projects/robot-mapping", false)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<h1>Robot Mapping using Indoor Positioning Systems</h1>")
	assert.Contains(t, body, `href="/projects/michael-jansen"`)
	assert.Contains(t, body, `href="/projects/robocon-2017"`)

	w = get(s, "/projects/missing", false)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Project not found")
}

func TestDetailPageRedirect(t *testing.T) {
	s, _ := newServer(t, Options{})

	w := get(s, "/p/mapping.html", false)
	require.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/projects/robot-mapping", w.Header().Get("Location"))

	w = get(s, "/p/nothing.html", false)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI(t *testing.T) {
	s, _ := newServer(t, Options{})

	w := get(s, "/api/projects?category=robotics", false)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count    int               `json:"count"`
		Projects []catalog.Project `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 3, list.Count)
	assert.Equal(t, []string{"michael-jansen", "robot-mapping", "robocon-2017"}, catalogtest.IDs(list.Projects))

	w = get(s, "/api/projects?category=bogus", false)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = get(s, "/api/projects/robot-mapping", false)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Project  catalog.Project   `json:"project"`
		Related  []catalog.Project `json:"related"`
		Adjacent struct {
			Previous *catalog.Project `json:"previous"`
			Next     *catalog.Project `json:"next"`
		} `json:"adjacent"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, "robot-mapping", page.Project.ID)
	assert.Len(t, page.Related, 3)
	require.NotNil(t, page.Adjacent.Previous)
	assert.Equal(t, "michael-jansen", page.Adjacent.Previous.ID)

	w = get(s, "/api/projects/missing", false)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = get(s, "/api/stats", false)
	require.Equal(t, http.StatusOK, w.Code)
	var st catalog.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 5, st.Total)
	assert.Equal(t, 3, st.ByCategory["robotics"])

	w = get(s, "/healthz", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","projects":5}`, w.Body.String())
}

func TestStaticAssets(t *testing.T) {
	s, _ := newServer(t, Options{})

	w := get(s, "/static/site.css", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
}

func TestRequestID(t *testing.T) {
	s, _ := newServer(t, Options{})

	w := get(s, "/healthz", false)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = do(s, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestAccessLogSkipsAssets(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, err := New(catalogtest.NewStore(t), render.Site{Title: "Portfolio"}, Options{}, zap.New(core))
	require.NoError(t, err)

	get(s, "/static/site.css", false)
	get(s, "/healthz", false)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/healthz", entries[0].ContextMap()["path"])
	assert.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])
}

func TestRecovery(t *testing.T) {
	s, _ := newServer(t, Options{})
	s.router.GET("/boom", func(*gin.Context) { panic("boom") })

	w := get(s, "/boom", false)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
