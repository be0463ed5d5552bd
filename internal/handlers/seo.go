package handlers

import (
	"net/http"
	"strings"

	"refugee.info/greece-web/internal/config"
	"refugee.info/greece-web/internal/locale"
	"refugee.info/greece-web/internal/nav"
	"refugee.info/greece-web/internal/seo"
)

const descriptionLength = 160

// BuildSEO fills the meta tags of a localized page. description may be an
// HTML fragment; it is reduced to plain text. Alternates link the same path
// in every other locale.
func BuildSEO(r *http.Request, site config.Site, l locale.Locale, title, description string) seo.Meta {
	desc := seo.Description(description, descriptionLength)
	if desc == "" {
		desc = site.Description
	}
	canonical := AbsoluteURL(r, r.URL.Path)
	meta := seo.Meta{
		Title:        title,
		Description:  desc,
		Canonical:    canonical,
		Verification: site.GoogleSiteVerification,
		OG: seo.OpenGraph{
			Title:       title,
			Description: desc,
			Image:       site.OGImage,
			Type:        "website",
			URL:         canonical,
			SiteName:    site.Title,
			Locale:      l.Tag.String(),
		},
		Alternates: alternates(r, l),
	}
	return meta
}

// NoIndex marks a page as excluded from search engines.
func NoIndex(meta seo.Meta) seo.Meta {
	meta.Robots = "noindex, nofollow"
	meta.Alternates = nil
	return meta
}

func alternates(r *http.Request, current locale.Locale) []seo.Alternate {
	prefix := "/" + current.Code
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if rest == r.URL.Path {
		return nil
	}
	all := locale.All()
	out := make([]seo.Alternate, 0, len(all)+1)
	for _, l := range all {
		out = append(out, seo.Alternate{
			Href:     AbsoluteURL(r, "/"+l.Code+rest),
			Hreflang: l.Tag.String(),
		})
	}
	out = append(out, seo.Alternate{
		Href:     AbsoluteURL(r, "/"+locale.DefaultCode+rest),
		Hreflang: "x-default",
	})
	return out
}

// HomeJSONLD describes the organisation and the site.
func HomeJSONLD(r *http.Request, site config.Site, l locale.Locale) []string {
	home := AbsoluteURL(r, nav.HomePath(l.Code))
	return []string{
		seo.JSON(seo.NewOrganization(site.Title, home, "")),
		seo.JSON(seo.NewWebSite(site.Title, home, l.Tag.String())),
	}
}

// ListingJSONLD describes a section or category page with its breadcrumbs.
// anchors are in-page fragment ids of the listed articles.
func ListingJSONLD(r *http.Request, name, description string, crumbs []nav.Crumb, anchors []string) []string {
	page := AbsoluteURL(r, r.URL.Path)
	parts := make([]string, 0, len(anchors))
	for _, a := range anchors {
		parts = append(parts, page+"#"+a)
	}
	out := []string{seo.JSON(seo.NewCollectionPage(name, seo.PlainText(description), page, parts))}
	if len(crumbs) > 0 {
		items := make([]seo.BreadcrumbItem, 0, len(crumbs))
		for _, c := range crumbs {
			items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: AbsoluteURL(r, c.Href)})
		}
		out = append(out, seo.JSON(seo.NewBreadcrumbList(items)))
	}
	return out
}
