package seo

import (
	"encoding/json"
)

const schemaContext = "https://schema.org"

// Thing carries the fields shared by every schema.org node emitted by the site.
type Thing struct {
	Context     string `json:"@context,omitempty"`
	Type        string `json:"@type"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Organization is the publisher of the help center.
type Organization struct {
	Thing
	Logo string `json:"logo,omitempty"`
}

// WebSite is the localized site.
type WebSite struct {
	Thing
	InLanguage string `json:"inLanguage,omitempty"`
}

// ListItem is one step of a breadcrumb trail. Position starts at 1.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// BreadcrumbList is the trail leading to a page.
type BreadcrumbList struct {
	Thing
	Items []ListItem `json:"itemListElement"`
}

// CollectionPage is a section or category page listing articles.
type CollectionPage struct {
	Thing
	HasPart []Thing `json:"hasPart,omitempty"`
}

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func NewOrganization(name, url, logoURL string) Organization {
	return Organization{
		Thing: Thing{Context: schemaContext, Type: "Organization", Name: name, URL: url},
		Logo:  logoURL,
	}
}

func NewWebSite(name, url, lang string) WebSite {
	return WebSite{
		Thing:      Thing{Context: schemaContext, Type: "WebSite", Name: name, URL: url},
		InLanguage: lang,
	}
}

// BreadcrumbItem maps a crumb label to its absolute URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// NewBreadcrumbList numbers items in order.
func NewBreadcrumbList(items []BreadcrumbItem) BreadcrumbList {
	list := BreadcrumbList{
		Thing: Thing{Context: schemaContext, Type: "BreadcrumbList"},
		Items: make([]ListItem, 0, len(items)),
	}
	for i, it := range items {
		list.Items = append(list.Items, ListItem{Type: "ListItem", Position: i + 1, Name: it.Name, Item: it.Item})
	}
	return list
}

// NewCollectionPage lists articleURLs as Article parts of the page.
func NewCollectionPage(name, description, url string, articleURLs []string) CollectionPage {
	page := CollectionPage{
		Thing: Thing{Context: schemaContext, Type: "CollectionPage", Name: name, Description: description, URL: url},
	}
	for _, u := range articleURLs {
		page.HasPart = append(page.HasPart, Thing{Type: "Article", URL: u})
	}
	return page
}
