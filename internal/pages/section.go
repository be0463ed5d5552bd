package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"refugee.info/greece-web/internal/content"
	"refugee.info/greece-web/internal/locale"
	"refugee.info/greece-web/internal/nav"
	"refugee.info/greece-web/internal/translations"
	"refugee.info/greece-web/internal/zendesk"
)

// SortByUpdated is the only sort offered by the section filter.
const SortByUpdated = "updated_at"

// ArticleItem is one row of a section's article list.
type ArticleItem struct {
	ID       int
	Title    string
	LastEdit LastEdit
}

// Section is the section block with its article list.
type Section struct {
	ID          int
	Name        string
	Description string
	Articles    []ArticleItem
}

// SectionProps is everything the section page renders.
type SectionProps struct {
	Common
	PageTitle         string
	SectionID         int
	SectionItems      []MenuItem
	Section           Section
	Strings           translations.SectionStrings
	SelectFilterLabel string
	FilterItems       []MenuItem
	Breadcrumbs       []nav.Crumb
}

// Section assembles the section page. The section is looked up before
// anything else; a missing section stops the assembly with ErrNotFound.
// In flat mode the section page redirects to its category page.
func (a *Assembler) Section(ctx context.Context, localeCode, sectionParam string) (SectionProps, error) {
	if localeCode == "" {
		return SectionProps{}, fmt.Errorf("section %q: %w", sectionParam, ErrMissingLocale)
	}
	id, ok := parseID(sectionParam)
	if !ok {
		return SectionProps{}, fmt.Errorf("%w: section %q", ErrNotFound, sectionParam)
	}
	l := locale.Lookup(localeCode)

	zs, err := a.hc.Section(ctx, l.Code, id)
	if errors.Is(err, zendesk.ErrNotFound) {
		return SectionProps{}, notFound("section", id)
	}
	if err != nil {
		return SectionProps{}, fmt.Errorf("section %d: %w", id, err)
	}

	site := a.opts.Site
	if !site.UseSections {
		return SectionProps{}, &RedirectError{Location: nav.CategoryPath(l.Code, zs.CategoryID)}
	}

	dc, err := a.dynamicContent(ctx, l, translations.PageSection)
	if err != nil {
		return SectionProps{}, fmt.Errorf("section %d: %w", id, err)
	}

	arts, err := a.hc.ArticlesForSection(ctx, l.Code, id, "")
	if err != nil {
		return SectionProps{}, fmt.Errorf("section %d: articles: %w", id, err)
	}

	categories, menuCategories, err := a.categoryLists(ctx, l)
	if err != nil {
		return SectionProps{}, fmt.Errorf("section %d: %w", id, err)
	}

	filter := translations.PopulateFilterSelectStrings(dc)
	menuLabels := translations.PopulateMenuOverlayStrings(dc)

	var parent *content.Category
	for i := range categories {
		if categories[i].ID == zs.CategoryID {
			parent = &categories[i]
			break
		}
	}

	a.logger.Debug("section assembled",
		zap.String("locale", l.Code),
		zap.Int("section_id", id),
		zap.Int("articles", len(arts)))

	return SectionProps{
		Common:       a.common(l, menuLabels, menuCategories),
		PageTitle:    site.Title,
		SectionID:    id,
		SectionItems: sectionItems(l, categories),
		Section: Section{
			ID:          zs.ID,
			Name:        zs.Name,
			Description: zs.Description,
			Articles:    articleItems(arts, translations.LastUpdatedLabel(dc), l, editedAt),
		},
		Strings:           translations.PopulateSectionStrings(dc),
		SelectFilterLabel: filter.FilterLabel,
		FilterItems:       []MenuItem{{Name: filter.MostRecent, Value: SortByUpdated}},
		Breadcrumbs:       nav.Breadcrumbs(l.Code, menuLabels.Home, parent, zs),
	}, nil
}

// SectionArticles reloads a section's article list with a different sort
// order. It backs the filter select of the section page.
func (a *Assembler) SectionArticles(ctx context.Context, localeCode string, sectionID int, sortBy string) (Section, error) {
	if localeCode == "" {
		return Section{}, fmt.Errorf("section %d articles: %w", sectionID, ErrMissingLocale)
	}
	l := locale.Lookup(localeCode)

	zs, err := a.hc.Section(ctx, l.Code, sectionID)
	if errors.Is(err, zendesk.ErrNotFound) {
		return Section{}, notFound("section", sectionID)
	}
	if err != nil {
		return Section{}, fmt.Errorf("section %d: %w", sectionID, err)
	}

	dc, err := a.dynamicContent(ctx, l, translations.PageSection)
	if err != nil {
		return Section{}, fmt.Errorf("section %d articles: %w", sectionID, err)
	}

	arts, err := a.hc.ArticlesForSection(ctx, l.Code, sectionID, sortBy)
	if err != nil {
		return Section{}, fmt.Errorf("section %d articles: %w", sectionID, err)
	}

	return Section{
		ID:          zs.ID,
		Name:        zs.Name,
		Description: zs.Description,
		Articles:    articleItems(arts, translations.LastUpdatedLabel(dc), l, updatedAt),
	}, nil
}

func editedAt(a content.Article) time.Time  { return a.EditedAt }
func updatedAt(a content.Article) time.Time { return a.UpdatedAt }

// articleItems maps articles to list rows. The initial render stamps rows
// with edited_at, the filter refresh with updated_at.
func articleItems(arts []content.Article, label string, l locale.Locale, stamp func(content.Article) time.Time) []ArticleItem {
	out := make([]ArticleItem, 0, len(arts))
	for _, art := range arts {
		out = append(out, ArticleItem{
			ID:    art.ID,
			Title: art.Title,
			LastEdit: LastEdit{
				Label:  label,
				Value:  stamp(art),
				Locale: l,
			},
		})
	}
	return out
}

// sectionItems lists every visible section for the section picker.
func sectionItems(l locale.Locale, categories []content.Category) []MenuItem {
	sections := content.FlattenSections(categories)
	out := make([]MenuItem, 0, len(sections))
	for _, s := range sections {
		out = append(out, MenuItem{
			Name:     s.Name,
			Value:    strconv.Itoa(s.ID),
			IconName: s.Icon,
			Link:     nav.SectionPath(l.Code, s.ID),
		})
	}
	return out
}
