package zendesk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refugee.info/greece-web/internal/content"
	"refugee.info/greece-web/internal/translations"
)

func newTestServer(t *testing.T, h func(base string) http.Handler) (*httptest.Server, *Client) {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h(srv.URL).ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(Options{
		BaseURL:    srv.URL,
		MappedURL:  "https://greece.refugee.info",
		AuthHeader: "Bearer secret",
		HTTPClient: srv.Client(),
	})
	return srv, c
}

func TestCategoriesFollowsNextPage(t *testing.T) {
	_, c := newTestServer(t, func(base string) http.Handler {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/help_center/fr/categories.json", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `{"categories":[{"id":3,"name":"Santé","locale":"fr"}],"next_page":null}`)
				return
			}
			fmt.Fprintf(w, `{"categories":[{"id":1,"name":"Asile"},{"id":2,"name":"Caché"}],"next_page":"%s/api/v2/help_center/fr/categories.json?page=2&per_page=100"}`, base)
		})
		return mux
	})

	cats, err := c.Categories(context.Background(), "fr")
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{cats[0].ID, cats[1].ID, cats[2].ID})
	assert.Equal(t, "Santé", cats[2].Name)
}

func TestCategoriesWithSectionsKeepsOrderAndFilters(t *testing.T) {
	var sectionCalls atomic.Int32
	_, c := newTestServer(t, func(string) http.Handler {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/help_center/en-us/categories.json", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"categories":[{"id":1,"name":"A"},{"id":2,"name":"Hidden"},{"id":3,"name":"C"}]}`)
		})
		mux.HandleFunc("/api/v2/help_center/en-us/categories/{id}/sections.json", func(w http.ResponseWriter, r *http.Request) {
			sectionCalls.Add(1)
			id := r.PathValue("id")
			fmt.Fprintf(w, `{"sections":[{"id":%s1,"category_id":%s,"name":"S%s"}]}`, id, id, id)
		})
		return mux
	})

	cats, err := c.CategoriesWithSections(context.Background(), "en-us", content.ExcludeIDs([]int{2}))
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, 1, cats[0].ID)
	assert.Equal(t, 3, cats[1].ID)
	require.Len(t, cats[1].Sections, 1)
	assert.Equal(t, 31, cats[1].Sections[0].ID)
	assert.Equal(t, 3, cats[1].Sections[0].CategoryID)
	assert.EqualValues(t, 2, sectionCalls.Load())
}

func TestSectionErrors(t *testing.T) {
	_, c := newTestServer(t, func(string) http.Handler {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/help_center/ar/sections/404.json", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		mux.HandleFunc("/api/v2/help_center/ar/sections/500.json", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		mux.HandleFunc("/api/v2/help_center/ar/sections/7.json", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"section":{"id":7,"category_id":1,"name":"اللجوء","description":"d"}}`)
		})
		return mux
	})
	ctx := context.Background()

	_, err := c.Section(ctx, "ar", 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Section(ctx, "ar", 500)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)

	s, err := c.Section(ctx, "ar", 7)
	require.NoError(t, err)
	assert.Equal(t, "اللجوء", s.Name)
	assert.Equal(t, 1, s.CategoryID)
}

func TestArticleRewritesLinksAndSendsAuth(t *testing.T) {
	_, c := newTestServer(t, func(base string) http.Handler {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/help_center/en-us/articles/42.json", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			fmt.Fprintf(w, `{"article":{"id":42,"title":"About","body":"<a href=\"%s/hc/articles/1\">x</a>","updated_at":"2024-03-01T10:00:00Z"}}`, base)
		})
		return mux
	})

	a, err := c.Article(context.Background(), "en-us", 42)
	require.NoError(t, err)
	assert.Equal(t, `<a href="https://greece.refugee.info/hc/articles/1">x</a>`, a.Body)
	assert.Equal(t, 2024, a.UpdatedAt.Year())
}

func TestArticlesForSectionSortAndDrafts(t *testing.T) {
	_, c := newTestServer(t, func(string) http.Handler {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/help_center/uk/sections/5/articles.json", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "updated_at", r.URL.Query().Get("sort_by"))
			fmt.Fprint(w, `{"articles":[{"id":1,"title":"One","section_id":5},{"id":2,"title":"Draft","draft":true}],"next_page":null}`)
		})
		return mux
	})

	arts, err := c.ArticlesForSection(context.Background(), "uk", 5, "updated_at")
	require.NoError(t, err)
	require.Len(t, arts, 1)
	assert.Equal(t, "One", arts[0].Title)
}

func TestDynamicContentPicksVariant(t *testing.T) {
	_, c := newTestServer(t, func(base string) http.Handler {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/dynamic_content/items.json", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `{"items":[{"placeholder":"{{dc.default_menu_about_title}}","variants":[{"content":"À propos","locale_id":16}]}]}`)
				return
			}
			fmt.Fprintf(w, `{"items":[
				{"name":"default_menu_home_title","variants":[{"content":"Home","locale_id":1,"default":true},{"content":"Accueil","locale_id":16}]},
				{"name":"default_banner_title","variants":[{"content":"Banner","locale_id":1,"default":true}]},
				{"name":"not_requested","variants":[{"content":"x","locale_id":16}]},
				{"name":"default_no_variant","variants":[{"content":"ar only","locale_id":66}]}
			],"next_page":"%s/api/v2/dynamic_content/items.json?page=2"}`, base)
		})
		return mux
	})

	dc, err := c.DynamicContent(context.Background(), 16, []string{
		"default_menu_home_title", "default_banner_title", "default_menu_about_title", "default_no_variant", "missing",
	})
	require.NoError(t, err)
	assert.Equal(t, translations.DynamicContent{
		"default_menu_home_title":  "Accueil",
		"default_banner_title":     "Banner",
		"default_menu_about_title": "À propos",
	}, dc)
}

type fakeDynamic map[string]translations.DynamicContent

func (f fakeDynamic) DynamicContent(lang string, placeholders []string) translations.DynamicContent {
	out := translations.DynamicContent{}
	for _, p := range placeholders {
		if v, ok := f[lang][p]; ok {
			out[p] = v
		}
	}
	return out
}

const sampleTree = `
categories:
  - id: 1
    name: Asylum
    sections:
      - id: 11
        name: Registration
        articles:
          - id: 111
            title: Older
            updated_at: "2023-01-01"
            body: "# Register\n\nGo to **the office**."
          - id: 112
            title: Newer
            updated_at: "2024-06-01"
            body: "text"
  - id: 2
    name: Health
    sections:
      - id: 21
        name: Hospitals
`

func TestLocalFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "en-us"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en-us", "helpcenter.yaml"), []byte(sampleTree), 0o644))

	c := NewClient(Options{
		ContentDir: dir,
		Dynamic:    fakeDynamic{"fr": {"default_menu_home_title": "Accueil"}},
	})
	require.False(t, c.Remote())
	ctx := context.Background()

	cats, err := c.Categories(ctx, "fr")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Empty(t, cats[0].Sections)
	assert.Equal(t, "fr", cats[0].Locale)

	nested, err := c.CategoriesWithSections(ctx, "fr", content.ExcludeIDs([]int{2}))
	require.NoError(t, err)
	require.Len(t, nested, 1)
	require.Len(t, nested[0].Sections, 1)

	arts, err := c.ArticlesForSection(ctx, "fr", 11, "updated_at")
	require.NoError(t, err)
	require.Len(t, arts, 2)
	assert.Equal(t, "Newer", arts[0].Title)

	a, err := c.Article(ctx, "fr", 111)
	require.NoError(t, err)
	assert.Contains(t, a.Body, "<h1>Register</h1>")
	assert.Contains(t, a.Body, "<strong>the office</strong>")

	byCat, err := c.ArticlesForCategory(ctx, "fr", 1)
	require.NoError(t, err)
	assert.Len(t, byCat, 2)

	_, err = c.Section(ctx, "fr", 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Article(ctx, "fr", 99)
	assert.ErrorIs(t, err, ErrNotFound)

	dc, err := c.DynamicContent(ctx, 16, []string{"default_menu_home_title"})
	require.NoError(t, err)
	assert.Equal(t, "Accueil", dc["default_menu_home_title"])
}

func TestLocalFallbackWithoutFiles(t *testing.T) {
	c := NewClient(Options{ContentDir: t.TempDir()})
	cats, err := c.Categories(context.Background(), "en-us")
	require.NoError(t, err)
	assert.Empty(t, cats)
	dc, err := c.DynamicContent(context.Background(), 1, []string{"x"})
	require.NoError(t, err)
	assert.Empty(t, dc)
}
