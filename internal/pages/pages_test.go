package pages

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refugee.info/greece-web/internal/config"
	"refugee.info/greece-web/internal/content"
	"refugee.info/greece-web/internal/directus"
	"refugee.info/greece-web/internal/translations"
	"refugee.info/greece-web/internal/zendesk"
)

const aboutUsID = 500

type fakeHelpCenter struct {
	mu    sync.Mutex
	calls map[string]int
	sorts []string
	dcIDs []int

	categories []content.Category
	sections   []content.Section
	articles   map[int][]content.Article
	about      *content.Article
	failWith   error
}

func newFakeHelpCenter() *fakeHelpCenter {
	updated := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	edited := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &fakeHelpCenter{
		calls: map[string]int{},
		categories: []content.Category{
			{ID: 1, Name: "Asylum"},
			{ID: 2, Name: "Hidden"},
			{ID: 3, Name: "Health"},
		},
		sections: []content.Section{
			{ID: 11, CategoryID: 1, Name: "Registration"},
			{ID: 12, CategoryID: 1, Name: "Interview"},
			{ID: 21, CategoryID: 2, Name: "Internal"},
			{ID: 31, CategoryID: 3, Name: "Clinics"},
		},
		articles: map[int][]content.Article{
			11: {{ID: 101, SectionID: 11, Title: "How to register", UpdatedAt: updated, EditedAt: edited}},
		},
		about: &content.Article{ID: aboutUsID, Title: "About us", Body: "<p>We help.</p>"},
	}
}

func (f *fakeHelpCenter) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeHelpCenter) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeHelpCenter) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeHelpCenter) DynamicContent(_ context.Context, id int, placeholders []string) (translations.DynamicContent, error) {
	f.record("DynamicContent")
	f.mu.Lock()
	f.dcIDs = append(f.dcIDs, id)
	f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	dc := translations.DynamicContent{}
	for _, p := range placeholders {
		dc[p] = p + "@" + strconv.Itoa(id)
	}
	return dc, nil
}

func (f *fakeHelpCenter) withSections(keep content.Filter) []content.Category {
	out := make([]content.Category, 0, len(f.categories))
	for _, c := range content.FilterCategories(f.categories, keep) {
		for _, s := range f.sections {
			if s.CategoryID == c.ID {
				c.Sections = append(c.Sections, s)
			}
		}
		out = append(out, c)
	}
	return out
}

func (f *fakeHelpCenter) Categories(context.Context, string) ([]content.Category, error) {
	f.record("Categories")
	return append([]content.Category(nil), f.categories...), nil
}

func (f *fakeHelpCenter) CategoriesWithSections(_ context.Context, _ string, keep content.Filter) ([]content.Category, error) {
	f.record("CategoriesWithSections")
	return f.withSections(keep), nil
}

func (f *fakeHelpCenter) Category(_ context.Context, _ string, id int) (content.Category, error) {
	f.record("Category")
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return content.Category{}, zendesk.ErrNotFound
}

func (f *fakeHelpCenter) Sections(context.Context, string) ([]content.Section, error) {
	f.record("Sections")
	return append([]content.Section(nil), f.sections...), nil
}

func (f *fakeHelpCenter) Section(_ context.Context, _ string, id int) (content.Section, error) {
	f.record("Section")
	for _, s := range f.sections {
		if s.ID == id {
			return s, nil
		}
	}
	return content.Section{}, zendesk.ErrNotFound
}

func (f *fakeHelpCenter) ArticlesForSection(_ context.Context, _ string, sectionID int, sortBy string) ([]content.Article, error) {
	f.record("ArticlesForSection")
	f.mu.Lock()
	f.sorts = append(f.sorts, sortBy)
	f.mu.Unlock()
	return f.articles[sectionID], nil
}

func (f *fakeHelpCenter) ArticlesForCategory(_ context.Context, _ string, categoryID int) ([]content.Article, error) {
	f.record("ArticlesForCategory")
	var out []content.Article
	for _, s := range f.sections {
		if s.CategoryID == categoryID {
			out = append(out, f.articles[s.ID]...)
		}
	}
	return out, nil
}

func (f *fakeHelpCenter) Article(_ context.Context, _ string, id int) (content.Article, error) {
	f.record("Article")
	if id == aboutUsID && f.about != nil {
		return *f.about, nil
	}
	return content.Article{}, zendesk.ErrNotFound
}

type fakeDirectory struct {
	mu        sync.Mutex
	langs     []string
	countries []int
	services  []directus.Service
	err       error
}

func (d *fakeDirectory) Services(_ context.Context, countryID int, lang string) ([]directus.Service, error) {
	d.mu.Lock()
	d.langs = append(d.langs, lang)
	d.countries = append(d.countries, countryID)
	d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	return append([]directus.Service(nil), d.services...), nil
}

func (d *fakeDirectory) ServiceCategories(context.Context) ([]directus.Term, error) {
	return []directus.Term{{ID: 1, Name: "Legal"}}, nil
}

func (d *fakeDirectory) Providers(_ context.Context, countryID int) ([]directus.Term, error) {
	d.mu.Lock()
	d.countries = append(d.countries, countryID)
	d.mu.Unlock()
	return []directus.Term{{ID: 7, Name: "NGO"}}, nil
}

func (d *fakeDirectory) PopulationsServed(context.Context) ([]directus.Term, error) {
	return []directus.Term{}, nil
}

func (d *fakeDirectory) Accessibility(context.Context) ([]directus.Term, error) {
	return []directus.Term{}, nil
}

func testSite(useSections bool) config.Site {
	return config.Site{
		Title:                "Refugee.Info Greece",
		UseSections:          useSections,
		AboutUsArticleID:     aboutUsID,
		CategoriesToHide:     []int{2},
		MenuCategoriesToHide: []int{3},
		CategoryIcons:        map[int]string{1: "gavel"},
		SectionIcons:         map[int]string{11: "how_to_reg"},
		SearchIndex:          "zendesk_greece_articles",
		MapDefaultCoords:     config.Coords{Lat: 37.98381, Lng: 23.727539},
	}
}

func newTestAssembler(hc HelpCenter, dir Directory, useSections bool) *Assembler {
	return NewAssembler(hc, dir, Options{Site: testSite(useSections), CountryID: 4, Version: "test"}, nil)
}

func categoryIDs(cats []content.Category) []int {
	ids := make([]int, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestSectionMissingSectionStopsAfterLookup(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, true)

	_, err := a.Section(context.Background(), "en-us", "999")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, hc.count("Section"))
	assert.Equal(t, 1, hc.total(), "no other upstream call after a missing section")
}

func TestSectionRejectsMissingLocaleAndBadIDs(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, true)

	_, err := a.Section(context.Background(), "", "11")
	assert.ErrorIs(t, err, ErrMissingLocale)

	for _, param := range []string{"", "abc", "-3", "0"} {
		_, err := a.Section(context.Background(), "en-us", param)
		assert.ErrorIs(t, err, ErrNotFound, "param %q", param)
	}
	assert.Zero(t, hc.total())
}

func TestSectionFlatModeRedirectsToCategory(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, false)

	_, err := a.Section(context.Background(), "fr", "12")
	var redirect *RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, "/fr/categories/1", redirect.Location)
	assert.False(t, redirect.Permanent)
	assert.Zero(t, hc.count("DynamicContent"))
}

func TestSectionNested(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, true)

	props, err := a.Section(context.Background(), "fr", "11")
	require.NoError(t, err)

	assert.Equal(t, "fr", props.Locale.Code)
	assert.Equal(t, []int{16}, hc.dcIDs)
	assert.Equal(t, 11, props.SectionID)
	assert.Equal(t, "Refugee.Info Greece", props.PageTitle)
	assert.Equal(t, []string{""}, hc.sorts)

	var ids []string
	for _, item := range props.SectionItems {
		ids = append(ids, item.Value)
	}
	assert.Equal(t, []string{"11", "12", "31"}, ids)
	assert.Equal(t, "how_to_reg", props.SectionItems[0].IconName)
	assert.Equal(t, content.DefaultIcon, props.SectionItems[1].IconName)
	assert.Equal(t, "/fr/sections/12", props.SectionItems[1].Link)

	require.Len(t, props.Section.Articles, 1)
	row := props.Section.Articles[0]
	assert.Equal(t, "How to register", row.Title)
	assert.Equal(t, "default_last_updated@16", row.LastEdit.Label)
	assert.Equal(t, hc.articles[11][0].EditedAt, row.LastEdit.Value)

	require.Len(t, props.FilterItems, 1)
	assert.Equal(t, SortByUpdated, props.FilterItems[0].Value)

	require.Len(t, props.Breadcrumbs, 3)
	assert.Equal(t, "/fr/categories/1", props.Breadcrumbs[1].Href)
	assert.True(t, props.Breadcrumbs[2].Active)

	// menu hides 3, display hides 2
	var menuKeys []string
	for _, item := range props.MenuOverlayItems {
		menuKeys = append(menuKeys, item.Key)
	}
	assert.Equal(t, []string{"home", "1", "2", "about"}, menuKeys)
	assert.Equal(t, "/fr/#about", props.MenuOverlayItems[3].Href)
}

func TestSectionArticlesPassesSortAndStampsUpdatedAt(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, true)

	sec, err := a.SectionArticles(context.Background(), "en-us", 11, SortByUpdated)
	require.NoError(t, err)
	assert.Equal(t, []string{SortByUpdated}, hc.sorts)
	require.Len(t, sec.Articles, 1)
	assert.Equal(t, hc.articles[11][0].UpdatedAt, sec.Articles[0].LastEdit.Value)

	_, err = a.SectionArticles(context.Background(), "en-us", 404, SortByUpdated)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHomeNested(t *testing.T) {
	hc := newFakeHelpCenter()
	dir := &fakeDirectory{services: []directus.Service{
		{ID: 1, Name: "Zebra crossing"},
		{ID: 2, Name: "Éclair clinic"},
		{ID: 3, Name: "apple legal aid"},
	}}
	a := newTestAssembler(hc, dir, true)

	props, err := a.Home(context.Background(), "fr")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, categoryIDs(props.Categories))
	assert.Empty(t, props.Categories[0].Icon, "category icons stay empty in nested mode")
	assert.Equal(t, "how_to_reg", props.Categories[0].Sections[0].Icon)
	assert.Equal(t, content.DefaultIcon, props.Categories[1].Sections[0].Icon)

	assert.Equal(t, "<p>We help.</p>", props.AboutUsHTML)
	assert.Equal(t, "default_share@16", props.ServiceMap.ShareButton.Label)
	assert.True(t, props.ServiceMap.ShowDirectus)
	assert.Equal(t, 37.98381, props.ServiceMap.DefaultCoords.Lat)

	var names []string
	for _, s := range props.ServiceMap.Services {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"apple legal aid", "Éclair clinic", "Zebra crossing"}, names)
	assert.Equal(t, []string{"fr-FR"}, dir.langs)
	for _, c := range dir.countries {
		assert.Equal(t, 4, c)
	}

	assert.Equal(t, "zendesk_greece_articles", props.SearchBarIndex)
	assert.Equal(t, "test", props.Version)
	require.Len(t, props.Locales, 6)
}

func TestHomeFlat(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, false)

	props, err := a.Home(context.Background(), "en-us")
	require.NoError(t, err)
	assert.Zero(t, hc.count("CategoriesWithSections"))
	assert.Equal(t, 2, hc.count("Categories"))

	assert.Equal(t, []int{1, 3}, categoryIDs(props.Categories))
	assert.Equal(t, "gavel", props.Categories[0].Icon)
	assert.Equal(t, content.DefaultIcon, props.Categories[1].Icon)

	require.Len(t, props.MenuOverlayItems, 3)
	info := props.MenuOverlayItems[1]
	assert.Equal(t, "information", info.Key)
	var children []string
	for _, ch := range info.Children {
		children = append(children, ch.Href)
	}
	assert.Equal(t, []string{"/en-us/categories/1", "/en-us/categories/2"}, children)

	assert.Empty(t, props.ServiceMap.Services)
	assert.True(t, props.ServiceMap.ShowDirectus)
}

func TestHomeUnknownLocaleFallsBackToDefault(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, true)

	props, err := a.Home(context.Background(), "xx")
	require.NoError(t, err)
	assert.Equal(t, "en-us", props.Locale.Code)
	assert.Equal(t, []int{1}, hc.dcIDs)
}

func TestHomeMissingAboutUsRendersEmpty(t *testing.T) {
	hc := newFakeHelpCenter()
	hc.about = nil
	a := newTestAssembler(hc, nil, true)

	props, err := a.Home(context.Background(), "en-us")
	require.NoError(t, err)
	assert.Empty(t, props.AboutUsHTML)
}

func TestHomePropagatesUpstreamErrors(t *testing.T) {
	boom := errors.New("boom")

	hc := newFakeHelpCenter()
	hc.failWith = boom
	_, err := newTestAssembler(hc, nil, true).Home(context.Background(), "en-us")
	assert.ErrorIs(t, err, boom)

	dir := &fakeDirectory{err: boom}
	_, err = newTestAssembler(newFakeHelpCenter(), dir, true).Home(context.Background(), "en-us")
	assert.ErrorIs(t, err, boom)
}

func TestNotFoundTitle(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, true)

	props, err := a.NotFound(context.Background(), "ar")
	require.NoError(t, err)
	assert.Equal(t, "default_error_page_does_not_exist@66 - Refugee.Info Greece", props.Title)
	assert.Equal(t, "rtl", props.Locale.Dir())
	assert.Equal(t, "Refugee.Info Greece", a.errorTitle(""))
}

func TestCategoryNested(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, true)

	props, err := a.Category(context.Background(), "en-us", "1")
	require.NoError(t, err)
	assert.Equal(t, "Asylum - Refugee.Info Greece", props.PageTitle)
	assert.Equal(t, "gavel", props.Category.Icon)
	require.Len(t, props.Sections, 2)
	assert.Equal(t, "how_to_reg", props.Sections[0].Icon)
	assert.Equal(t, content.DefaultIcon, props.Sections[1].Icon)
	assert.Empty(t, props.Articles)
	assert.Zero(t, hc.count("ArticlesForCategory"))

	var items []string
	for _, it := range props.CategoryItems {
		items = append(items, it.Link)
	}
	assert.Equal(t, []string{"/en-us/categories/1", "/en-us/categories/3"}, items)
}

func TestCategoryFlat(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, false)

	props, err := a.Category(context.Background(), "en-us", "1")
	require.NoError(t, err)
	assert.Empty(t, props.Sections)
	require.Len(t, props.Articles, 1)
	assert.Equal(t, 101, props.Articles[0].ID)
	assert.Zero(t, hc.count("Sections"))
}

func TestCategoryHiddenFromListsIsStillReachable(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, true)

	props, err := a.Category(context.Background(), "en-us", "2")
	require.NoError(t, err)
	assert.Equal(t, "Hidden", props.Category.Name)
}

func TestCategoryMissing(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, true)

	_, err := a.Category(context.Background(), "en-us", "77")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, hc.total())

	_, err = a.Category(context.Background(), "", "1")
	assert.ErrorIs(t, err, ErrMissingLocale)
}

func TestLocaleSelect(t *testing.T) {
	a := newTestAssembler(newFakeHelpCenter(), nil, true)

	props := a.LocaleSelect("/fr/sections/11?x=1")
	assert.Equal(t, "/sections/11?x=1", props.Target)
	assert.Equal(t, LocaleSelectMessage, props.Message)
	require.Len(t, props.Langs, 6)
	assert.Equal(t, "en-us", props.Langs[0].Code)
	assert.Equal(t, "/en-us/sections/11?hl=en-us&x=1", props.Langs[0].Href)
	assert.Equal(t, "rtl", props.Langs[1].Dir)
}

func TestSavedLocaleTarget(t *testing.T) {
	a := newTestAssembler(newFakeHelpCenter(), nil, true)

	href, ok := a.SavedLocaleTarget("FR", "/ar/sections/11")
	require.True(t, ok)
	assert.Equal(t, "/fr/sections/11?hl=fr", href)

	href, ok = a.SavedLocaleTarget("uk", "")
	require.True(t, ok)
	assert.Equal(t, "/uk/?hl=uk", href)

	_, ok = a.SavedLocaleTarget("zz", "/")
	assert.False(t, ok)
}

func TestCleanTarget(t *testing.T) {
	tests := map[string]string{
		"":                      "/",
		"/":                     "/",
		"/en-us/":               "/",
		"/ar":                   "/",
		"/categories/3":         "/categories/3",
		"https://evil.example/": "/",
		"//evil.example/x":      "/",
		"relative/path":         "/",
		"/uk//evil.example":     "/evil.example",
	}
	for in, want := range tests {
		assert.Equal(t, want, cleanTarget(in), "target %q", in)
	}
}

func TestSectionPaths(t *testing.T) {
	hc := newFakeHelpCenter()
	hc.sections = hc.sections[:2]
	a := newTestAssembler(hc, nil, true)

	paths, err := a.SectionPaths(context.Background())
	require.NoError(t, err)
	require.Len(t, paths, 12)
	assert.Equal(t, []string{"/en-us/sections/11", "/en-us/sections/12", "/ar/sections/11"}, paths[:3])
	assert.Equal(t, "/ur/sections/12", paths[11])
	assert.Equal(t, 6, hc.count("Sections"))

	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	assert.NotEqual(t, sorted, paths, "locale order is kept, not lexical order")
}

func TestSectionPathsFlatModeIsEmpty(t *testing.T) {
	hc := newFakeHelpCenter()
	a := newTestAssembler(hc, nil, false)

	paths, err := a.SectionPaths(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, paths)
	assert.Empty(t, paths)
	assert.Zero(t, hc.total())
}
