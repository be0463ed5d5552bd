package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"refugee.info/greece-web/internal/content"
	"refugee.info/greece-web/internal/locale"
	"refugee.info/greece-web/internal/nav"
	"refugee.info/greece-web/internal/translations"
	"refugee.info/greece-web/internal/zendesk"
)

// CategoryProps is everything the category page renders. Sections is filled
// in nested mode, Articles in flat mode.
type CategoryProps struct {
	Common
	PageTitle     string
	Category      content.Category
	CategoryItems []MenuItem
	Sections      []content.Section
	Articles      []ArticleItem
	Strings       translations.CategoryStrings
}

// Category assembles the category page. The category is looked up first.
func (a *Assembler) Category(ctx context.Context, localeCode, categoryParam string) (CategoryProps, error) {
	if localeCode == "" {
		return CategoryProps{}, fmt.Errorf("category %q: %w", categoryParam, ErrMissingLocale)
	}
	id, ok := parseID(categoryParam)
	if !ok {
		return CategoryProps{}, fmt.Errorf("%w: category %q", ErrNotFound, categoryParam)
	}
	l := locale.Lookup(localeCode)
	site := a.opts.Site

	cat, err := a.hc.Category(ctx, l.Code, id)
	if errors.Is(err, zendesk.ErrNotFound) {
		return CategoryProps{}, notFound("category", id)
	}
	if err != nil {
		return CategoryProps{}, fmt.Errorf("category %d: %w", id, err)
	}
	cat.Icon = content.IconFor(site.CategoryIcons, cat.ID, content.DefaultIcon)

	dc, err := a.dynamicContent(ctx, l, translations.PageCategory)
	if err != nil {
		return CategoryProps{}, fmt.Errorf("category %d: %w", id, err)
	}

	categories, menuCategories, err := a.categoryLists(ctx, l)
	if err != nil {
		return CategoryProps{}, fmt.Errorf("category %d: %w", id, err)
	}

	props := CategoryProps{
		Common:        a.common(l, translations.PopulateMenuOverlayStrings(dc), menuCategories),
		PageTitle:     cat.Name + " - " + site.Title,
		Category:      cat,
		CategoryItems: categoryItems(l, categories),
		Strings:       translations.PopulateCategoryStrings(dc),
	}

	if site.UseSections {
		all, err := a.hc.Sections(ctx, l.Code)
		if err != nil {
			return CategoryProps{}, fmt.Errorf("category %d: sections: %w", id, err)
		}
		for _, s := range all {
			if s.CategoryID != id {
				continue
			}
			s.Icon = content.IconFor(site.SectionIcons, s.ID, content.DefaultIcon)
			props.Sections = append(props.Sections, s)
		}
		return props, nil
	}

	arts, err := a.hc.ArticlesForCategory(ctx, l.Code, id)
	if err != nil {
		return CategoryProps{}, fmt.Errorf("category %d: articles: %w", id, err)
	}
	props.Articles = articleItems(arts, translations.LastUpdatedLabel(dc), l, editedAt)
	return props, nil
}

// categoryItems lists every visible category for the topic picker.
func categoryItems(l locale.Locale, categories []content.Category) []MenuItem {
	out := make([]MenuItem, 0, len(categories))
	for _, c := range categories {
		out = append(out, MenuItem{
			Name:     c.Name,
			Value:    strconv.Itoa(c.ID),
			IconName: c.Icon,
			Link:     nav.CategoryPath(l.Code, c.ID),
		})
	}
	return out
}
