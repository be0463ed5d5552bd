package pages

import (
	"context"
	"fmt"

	"refugee.info/greece-web/internal/content"
	"refugee.info/greece-web/internal/locale"
	"refugee.info/greece-web/internal/translations"
)

// NotFoundProps is everything the 404 page renders.
type NotFoundProps struct {
	Common
	Title      string
	Strings    translations.Custom404Strings
	Categories []content.Category
	// AboutUsHTML is fetched like on the home page; the 404 page may ignore it.
	AboutUsHTML string
}

// NotFound assembles the 404 page of localeCode.
func (a *Assembler) NotFound(ctx context.Context, localeCode string) (NotFoundProps, error) {
	l := locale.Lookup(localeCode)

	dc, err := a.dynamicContent(ctx, l, translations.PageError)
	if err != nil {
		return NotFoundProps{}, fmt.Errorf("not found page: %w", err)
	}
	strs := translations.PopulateCustom404Strings(dc)

	categories, menuCategories, err := a.categoryLists(ctx, l)
	if err != nil {
		return NotFoundProps{}, fmt.Errorf("not found page: %w", err)
	}

	aboutUs, err := a.aboutUs(ctx, l)
	if err != nil {
		return NotFoundProps{}, fmt.Errorf("not found page: %w", err)
	}

	return NotFoundProps{
		Common:      a.common(l, translations.PopulateMenuOverlayStrings(dc), menuCategories),
		Title:       a.errorTitle(strs.Error.Subtitle),
		Strings:     strs,
		Categories:  categories,
		AboutUsHTML: aboutUs,
	}, nil
}

func (a *Assembler) errorTitle(subtitle string) string {
	if subtitle == "" {
		return a.opts.Site.Title
	}
	return subtitle + " - " + a.opts.Site.Title
}
