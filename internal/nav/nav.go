// Package nav derives the menu overlay, footer links and breadcrumbs from
// the (already filtered) menu category list.
package nav

import (
	"strconv"
	"strings"

	"refugee.info/greece-web/internal/content"
	"refugee.info/greece-web/internal/translations"
)

// MenuOverlayItem is one node of the header/side menu.
type MenuOverlayItem struct {
	Key      string
	Label    string
	Href     string
	Icon     string
	Children []MenuOverlayItem
	Active   bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// HomePath returns the home page path of a locale.
func HomePath(localeCode string) string {
	return "/" + localeCode + "/"
}

// SectionPath returns the page path of a section.
func SectionPath(localeCode string, id int) string {
	return "/" + localeCode + "/sections/" + strconv.Itoa(id)
}

// CategoryPath returns the page path of a category.
func CategoryPath(localeCode string, id int) string {
	return "/" + localeCode + "/categories/" + strconv.Itoa(id)
}

// AboutPath points at the about-us block of the home page.
func AboutPath(localeCode string) string {
	return HomePath(localeCode) + "#about"
}

// MenuItems builds the menu overlay: home, then either one entry per category
// listing its sections (useSections) or a single "information" entry listing
// the categories, then about.
func MenuItems(labels translations.MenuOverlayStrings, categories []content.Category, localeCode string, useSections bool) []MenuOverlayItem {
	items := []MenuOverlayItem{{Key: "home", Label: labels.Home, Href: HomePath(localeCode)}}
	if useSections {
		for _, c := range categories {
			item := MenuOverlayItem{
				Key:   strconv.Itoa(c.ID),
				Label: c.Name,
				Icon:  c.Icon,
			}
			for _, s := range c.Sections {
				item.Children = append(item.Children, MenuOverlayItem{
					Key:   strconv.Itoa(s.ID),
					Label: s.Name,
					Href:  SectionPath(localeCode, s.ID),
					Icon:  s.Icon,
				})
			}
			items = append(items, item)
		}
	} else {
		info := MenuOverlayItem{Key: "information", Label: labels.Information}
		for _, c := range categories {
			info.Children = append(info.Children, MenuOverlayItem{
				Key:   strconv.Itoa(c.ID),
				Label: c.Name,
				Href:  CategoryPath(localeCode, c.ID),
				Icon:  c.Icon,
			})
		}
		items = append(items, info)
	}
	items = append(items, MenuOverlayItem{Key: "about", Label: labels.About, Href: AboutPath(localeCode)})
	return items
}

// FooterItems lists the footer links: home, one link per menu category, about.
func FooterItems(labels translations.MenuOverlayStrings, categories []content.Category, localeCode string) []MenuOverlayItem {
	items := []MenuOverlayItem{{Key: "home", Label: labels.Home, Href: HomePath(localeCode)}}
	for _, c := range categories {
		items = append(items, MenuOverlayItem{
			Key:   strconv.Itoa(c.ID),
			Label: c.Name,
			Href:  CategoryPath(localeCode, c.ID),
		})
	}
	items = append(items, MenuOverlayItem{Key: "about", Label: labels.About, Href: AboutPath(localeCode)})
	return items
}

// MarkActive returns a copy of items with Active set on entries whose href
// matches currentPath. A parent is active when any child is.
func MarkActive(items []MenuOverlayItem, currentPath string) []MenuOverlayItem {
	if currentPath == "" {
		currentPath = "/"
	}
	out := make([]MenuOverlayItem, len(items))
	for i, it := range items {
		it.Children = MarkActive(it.Children, currentPath)
		it.Active = isActive(it.Href, currentPath)
		for _, ch := range it.Children {
			if ch.Active {
				it.Active = true
				break
			}
		}
		out[i] = it
	}
	return out
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "" || strings.Contains(itemPath, "#") {
		return false
	}
	if strings.HasSuffix(itemPath, "/") {
		// locale home only matches itself
		return currentPath == itemPath
	}
	// match exact or prefix boundary: "/en-us/sections/1" or "/en-us/sections/1/..."
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds Home > Category > Section for a section page. cat may be
// nil when the section's category is hidden or unknown.
func Breadcrumbs(localeCode, homeLabel string, cat *content.Category, sec content.Section) []Crumb {
	crumbs := []Crumb{{Href: HomePath(localeCode), Label: homeLabel}}
	if cat != nil {
		crumbs = append(crumbs, Crumb{Href: CategoryPath(localeCode, cat.ID), Label: cat.Name})
	}
	crumbs = append(crumbs, Crumb{Href: SectionPath(localeCode, sec.ID), Label: sec.Name, Active: true})
	return crumbs
}
