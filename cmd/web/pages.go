package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	handlersPkg "refugee.info/greece-web/internal/handlers"
	"refugee.info/greece-web/internal/locale"
	mw "refugee.info/greece-web/internal/middleware"
	"refugee.info/greece-web/internal/nav"
	"refugee.info/greece-web/internal/observability"
	"refugee.info/greece-web/internal/pages"
)

// requestLocale returns the path locale set by PathLocale, else the locale
// prefix of the URL, else the visitor's preference.
func requestLocale(r *http.Request) locale.Locale {
	if l, ok := mw.LocaleFromContext(r.Context()); ok {
		return l
	}
	first, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if locale.Supported(first) {
		return locale.Lookup(first)
	}
	return mw.PreferredLocale(r)
}

// rootRedirect sends / to the home page of the preferred locale.
func (a *app) rootRedirect(w http.ResponseWriter, r *http.Request) {
	l := mw.PreferredLocale(r)
	http.Redirect(w, r, nav.HomePath(l.Code), http.StatusFound)
}

// home renders the home page.
func (a *app) home(w http.ResponseWriter, r *http.Request) {
	l := requestLocale(r)
	props, err := a.assembler.Home(r.Context(), l.Code)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	site := a.assembler.Site()
	vm := handlersPkg.NewPageData(r, props.Common, handlersPkg.Chrome{
		SearchBar:    props.Strings.SearchBar,
		CookieBanner: props.Strings.CookieBanner,
		Footer:       props.Strings.Footer,
	}, site.Title, props)
	vm.SEO = handlersPkg.BuildSEO(r, site, l, site.Title, props.HeaderBanner.WelcomeTitle)
	vm.SEO.JSONLD = handlersPkg.HomeJSONLD(r, site, l)
	a.views.renderPage(w, r, http.StatusOK, "home", vm)
}

// section renders a section page, or redirects to its category in flat mode.
func (a *app) section(w http.ResponseWriter, r *http.Request) {
	l := requestLocale(r)
	props, err := a.assembler.Section(r.Context(), l.Code, chi.URLParam(r, "section"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	site := a.assembler.Site()
	title := props.Section.Name + " - " + props.PageTitle
	vm := handlersPkg.NewPageData(r, props.Common, handlersPkg.Chrome{
		SearchBar:    props.Strings.SearchBar,
		CookieBanner: props.Strings.CookieBanner,
		Footer:       props.Strings.Footer,
	}, title, props)
	vm.Breadcrumbs = props.Breadcrumbs
	vm.SEO = handlersPkg.BuildSEO(r, site, l, title, props.Section.Description)
	vm.SEO.JSONLD = handlersPkg.ListingJSONLD(r, props.Section.Name, props.Section.Description, props.Breadcrumbs, articleAnchors(props.Section.Articles))
	a.views.renderPage(w, r, http.StatusOK, "section", vm)
}

// sectionArticles renders the article list fragment swapped in by the sort filter.
func (a *app) sectionArticles(w http.ResponseWriter, r *http.Request) {
	l := requestLocale(r)
	id, err := strconv.Atoi(chi.URLParam(r, "section"))
	if err != nil || id <= 0 {
		a.notFound(w, r)
		return
	}
	sortBy := r.URL.Query().Get("sort_by")
	if sortBy != pages.SortByUpdated {
		sortBy = ""
	}
	sec, err := a.assembler.SectionArticles(r.Context(), l.Code, id, sortBy)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.views.renderTemplate(w, r, http.StatusOK, "section", "frag_section_articles", sec)
}

// category renders a category page.
func (a *app) category(w http.ResponseWriter, r *http.Request) {
	l := requestLocale(r)
	props, err := a.assembler.Category(r.Context(), l.Code, chi.URLParam(r, "category"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	site := a.assembler.Site()
	vm := handlersPkg.NewPageData(r, props.Common, handlersPkg.Chrome{
		SearchBar:    props.Strings.SearchBar,
		CookieBanner: props.Strings.CookieBanner,
		Footer:       props.Strings.Footer,
	}, props.PageTitle, props)
	vm.Breadcrumbs = []nav.Crumb{
		{Href: nav.HomePath(l.Code), Label: homeLabel(props.Common)},
		{Href: nav.CategoryPath(l.Code, props.Category.ID), Label: props.Category.Name, Active: true},
	}
	vm.SEO = handlersPkg.BuildSEO(r, site, l, props.PageTitle, props.Category.Description)
	vm.SEO.JSONLD = handlersPkg.ListingJSONLD(r, props.Category.Name, props.Category.Description, vm.Breadcrumbs, articleAnchors(props.Articles))
	a.views.renderPage(w, r, http.StatusOK, "category", vm)
}

// localeSelect renders the language picker. Visitors with a saved locale go
// straight to the target in that locale. It is never cached since it depends
// on the hl cookie.
func (a *app) localeSelect(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	w.Header().Set("Cache-Control", "no-store")
	if c, err := r.Cookie(mw.LocaleCookie); err == nil {
		if href, ok := a.assembler.SavedLocaleTarget(c.Value, target); ok {
			http.Redirect(w, r, href, http.StatusFound)
			return
		}
	}
	props := a.assembler.LocaleSelect(target)
	l := mw.PreferredLocale(r)
	site := a.assembler.Site()
	vm := handlersPkg.PageData{
		Title:     props.SiteTitle,
		Lang:      l.Code,
		Dir:       l.Dir(),
		Analytics: handlersPkg.NewAnalytics(a.cfg.Analytics),
		Path:      r.URL.Path,
		Locales:   locale.All(),
		SiteTitle: props.SiteTitle,
		Version:   a.cfg.Web.Version,
		Page:      props,
	}
	vm.SEO = handlersPkg.NoIndex(handlersPkg.BuildSEO(r, site, l, props.SiteTitle, ""))
	a.views.renderPage(w, r, http.StatusOK, "locale_select", vm)
}

// notFound renders the localized 404 page. htmx requests get a bare 404.
func (a *app) notFound(w http.ResponseWriter, r *http.Request) {
	if mw.IsHTMX(r.Context()) {
		mw.FragmentError(w, http.StatusNotFound)
		return
	}
	l := requestLocale(r)
	props, err := a.assembler.NotFound(r.Context(), l.Code)
	if err != nil {
		observability.FromContext(r.Context()).Error("not found page failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	site := a.assembler.Site()
	vm := handlersPkg.NewPageData(r, props.Common, handlersPkg.Chrome{
		SearchBar:    props.Strings.SearchBar,
		CookieBanner: props.Strings.CookieBanner,
		Footer:       props.Strings.Footer,
	}, props.Title, props)
	vm.SEO = handlersPkg.NoIndex(handlersPkg.BuildSEO(r, site, l, props.Title, ""))
	a.views.renderPage(w, r, http.StatusNotFound, "not_found", vm)
}

// fail maps assembler errors to responses: redirects, the 404 page, or a
// logged 500.
func (a *app) fail(w http.ResponseWriter, r *http.Request, err error) {
	var redirect *pages.RedirectError
	switch {
	case errors.As(err, &redirect):
		code := http.StatusTemporaryRedirect
		if redirect.Permanent {
			code = http.StatusPermanentRedirect
		}
		if mw.IsHTMX(r.Context()) {
			w.Header().Set("HX-Redirect", redirect.Location)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Redirect(w, r, redirect.Location, code)
	case errors.Is(err, pages.ErrNotFound):
		a.notFound(w, r)
	default:
		observability.FromContext(r.Context()).Error("page assembly failed", zap.Error(err))
		a.serverError(w, r)
	}
}

// serverError renders the error page without touching any upstream.
func (a *app) serverError(w http.ResponseWriter, r *http.Request) {
	if mw.IsHTMX(r.Context()) {
		mw.FragmentError(w, http.StatusInternalServerError)
		return
	}
	l := requestLocale(r)
	site := a.assembler.Site()
	vm := handlersPkg.PageData{
		Title:     site.Title,
		Lang:      l.Code,
		Dir:       l.Dir(),
		Path:      r.URL.Path,
		Locales:   locale.All(),
		SiteTitle: site.Title,
		Version:   a.cfg.Web.Version,
	}
	vm.SEO = handlersPkg.NoIndex(handlersPkg.BuildSEO(r, site, l, site.Title, ""))
	a.views.renderPage(w, r, http.StatusInternalServerError, "error", vm)
}

func homeLabel(c pages.Common) string {
	for _, item := range c.MenuOverlayItems {
		if item.Key == "home" {
			return item.Label
		}
	}
	return c.SiteTitle
}

func articleAnchors(items []pages.ArticleItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, "article-"+strconv.Itoa(it.ID))
	}
	return out
}
