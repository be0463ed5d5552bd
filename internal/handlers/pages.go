package handlers

import (
	"net/http"
	"strings"

	"refugee.info/greece-web/internal/locale"
	"refugee.info/greece-web/internal/nav"
	"refugee.info/greece-web/internal/pages"
	"refugee.info/greece-web/internal/seo"
	"refugee.info/greece-web/internal/translations"
)

// PageData is the view model handed to the shared layout. Page carries the
// props of the page being rendered.
type PageData struct {
	Title     string
	Lang      string
	Dir       string
	SEO       seo.Meta
	Analytics Analytics

	Path        string
	Nav         []nav.MenuOverlayItem
	Footer      []nav.MenuOverlayItem
	Breadcrumbs []nav.Crumb
	Locales     []locale.Locale

	SiteTitle    string
	SearchIndex  string
	SearchBar    translations.SearchBarStrings
	CookieBanner translations.CookieBannerStrings
	Disclaimer   string
	Version      string

	Page any
}

// Chrome are the localized strings of the header, cookie banner and footer.
type Chrome struct {
	SearchBar    translations.SearchBarStrings
	CookieBanner translations.CookieBannerStrings
	Footer       translations.FooterStrings
}

// NewPageData fills the layout fields shared by every page from the
// assembled props.
func NewPageData(r *http.Request, common pages.Common, chrome Chrome, title string, page any) PageData {
	path := r.URL.Path
	return PageData{
		Title:        title,
		Lang:         common.Locale.Code,
		Dir:          common.Locale.Dir(),
		Analytics:    Analytics{GoogleAnalyticsIDs: common.GoogleAnalyticsIDs},
		Path:         path,
		Nav:          nav.MarkActive(common.MenuOverlayItems, path),
		Footer:       common.FooterLinks,
		Locales:      common.Locales,
		SiteTitle:    common.SiteTitle,
		SearchIndex:  common.SearchBarIndex,
		SearchBar:    chrome.SearchBar,
		CookieBanner: chrome.CookieBanner,
		Disclaimer:   chrome.Footer.DisclaimerSummary,
		Version:      common.Version,
		Page:         page,
	}
}

// AbsoluteURL resolves path against the host the request was served on.
func AbsoluteURL(r *http.Request, path string) string {
	scheme := "https"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	} else if r.TLS == nil {
		scheme = "http"
	}
	host := r.Host
	if host == "" {
		host = "localhost"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return scheme + "://" + host + path
}
