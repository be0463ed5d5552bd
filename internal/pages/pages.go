// Package pages assembles the props of every page from the help center and
// the service directory.
package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"refugee.info/greece-web/internal/config"
	"refugee.info/greece-web/internal/content"
	"refugee.info/greece-web/internal/directus"
	"refugee.info/greece-web/internal/locale"
	"refugee.info/greece-web/internal/nav"
	"refugee.info/greece-web/internal/translations"
	"refugee.info/greece-web/internal/zendesk"
)

var (
	// ErrNotFound marks a page whose entity does not exist.
	ErrNotFound = errors.New("pages: not found")
	// ErrMissingLocale is returned when a route is rendered without a locale.
	ErrMissingLocale = errors.New("pages: missing locale")
)

// RedirectError asks the caller to redirect instead of rendering.
type RedirectError struct {
	Location  string
	Permanent bool
}

func (e *RedirectError) Error() string {
	return "pages: redirect to " + e.Location
}

// HelpCenter is the help center API used by the assemblers. Missing
// entities are reported with an error matching zendesk.ErrNotFound.
type HelpCenter interface {
	DynamicContent(ctx context.Context, zendeskLocaleID int, placeholders []string) (translations.DynamicContent, error)
	Categories(ctx context.Context, localeCode string) ([]content.Category, error)
	CategoriesWithSections(ctx context.Context, localeCode string, keep content.Filter) ([]content.Category, error)
	Category(ctx context.Context, localeCode string, id int) (content.Category, error)
	Sections(ctx context.Context, localeCode string) ([]content.Section, error)
	Section(ctx context.Context, localeCode string, id int) (content.Section, error)
	ArticlesForSection(ctx context.Context, localeCode string, sectionID int, sortBy string) ([]content.Article, error)
	ArticlesForCategory(ctx context.Context, localeCode string, categoryID int) ([]content.Article, error)
	Article(ctx context.Context, localeCode string, id int) (content.Article, error)
}

// Directory is the service directory used by the home page.
type Directory interface {
	Services(ctx context.Context, countryID int, lang string) ([]directus.Service, error)
	ServiceCategories(ctx context.Context) ([]directus.Term, error)
	Providers(ctx context.Context, countryID int) ([]directus.Term, error)
	PopulationsServed(ctx context.Context) ([]directus.Term, error)
	Accessibility(ctx context.Context) ([]directus.Term, error)
}

// Options carries the deployment settings the assemblers need.
type Options struct {
	Site               config.Site
	CountryID          int
	GoogleAnalyticsIDs []string
	Version            string
}

// Assembler builds page props. It holds no per-request state.
type Assembler struct {
	hc     HelpCenter
	dir    Directory
	opts   Options
	logger *zap.Logger
}

// NewAssembler wires an Assembler.
func NewAssembler(hc HelpCenter, dir Directory, opts Options, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{hc: hc, dir: dir, opts: opts, logger: logger}
}

// Site returns the static site settings.
func (a *Assembler) Site() config.Site { return a.opts.Site }

// Common holds the props every full page shares.
type Common struct {
	Locale             locale.Locale
	Locales            []locale.Locale
	SiteTitle          string
	SearchBarIndex     string
	MenuOverlayItems   []nav.MenuOverlayItem
	FooterLinks        []nav.MenuOverlayItem
	GoogleAnalyticsIDs []string
	Version            string
}

// MenuItem is an entry of a select menu: the section picker or the sort filter.
type MenuItem struct {
	Name     string
	Value    string
	IconName string
	Link     string
}

// LastEdit labels an article's modification time.
type LastEdit struct {
	Label  string
	Value  time.Time
	Locale locale.Locale
}

func (a *Assembler) common(l locale.Locale, labels translations.MenuOverlayStrings, menuCategories []content.Category) Common {
	return Common{
		Locale:             l,
		Locales:            locale.All(),
		SiteTitle:          a.opts.Site.Title,
		SearchBarIndex:     a.opts.Site.SearchIndex,
		MenuOverlayItems:   nav.MenuItems(labels, menuCategories, l.Code, a.opts.Site.UseSections),
		FooterLinks:        nav.FooterItems(labels, menuCategories, l.Code),
		GoogleAnalyticsIDs: a.opts.GoogleAnalyticsIDs,
		Version:            a.opts.Version,
	}
}

func (a *Assembler) dynamicContent(ctx context.Context, l locale.Locale, page translations.PageType) (translations.DynamicContent, error) {
	dc, err := a.hc.DynamicContent(ctx, l.ZendeskID, translations.PlaceholdersFor(page))
	if err != nil {
		return nil, fmt.Errorf("dynamic content: %w", err)
	}
	return dc, nil
}

// categoryLists fetches the displayed categories and, separately, the menu
// categories. The two lists are filtered by independent hidden-id lists.
func (a *Assembler) categoryLists(ctx context.Context, l locale.Locale) (display, menu []content.Category, err error) {
	site := a.opts.Site
	if site.UseSections {
		display, err = a.hc.CategoriesWithSections(ctx, l.Code, content.ExcludeIDs(site.CategoriesToHide))
		if err != nil {
			return nil, nil, fmt.Errorf("categories with sections: %w", err)
		}
		content.AssignSectionIcons(display, site.SectionIcons, content.DefaultIcon)
		menu, err = a.hc.CategoriesWithSections(ctx, l.Code, content.ExcludeIDs(site.MenuCategoriesToHide))
		if err != nil {
			return nil, nil, fmt.Errorf("menu categories with sections: %w", err)
		}
		return display, menu, nil
	}

	display, err = a.hc.Categories(ctx, l.Code)
	if err != nil {
		return nil, nil, fmt.Errorf("categories: %w", err)
	}
	display = content.FilterCategories(display, content.ExcludeIDs(site.CategoriesToHide))
	content.AssignCategoryIcons(display, site.CategoryIcons, content.DefaultIcon)
	menu, err = a.hc.Categories(ctx, l.Code)
	if err != nil {
		return nil, nil, fmt.Errorf("menu categories: %w", err)
	}
	menu = content.FilterCategories(menu, content.ExcludeIDs(site.MenuCategoriesToHide))
	return display, menu, nil
}

// aboutUs returns the about-us article body, or "" when the article is missing.
func (a *Assembler) aboutUs(ctx context.Context, l locale.Locale) (string, error) {
	art, err := a.hc.Article(ctx, l.Code, a.opts.Site.AboutUsArticleID)
	if errors.Is(err, zendesk.ErrNotFound) {
		a.logger.Warn("about-us article missing",
			zap.String("locale", l.Code),
			zap.Int("article_id", a.opts.Site.AboutUsArticleID))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("about-us article: %w", err)
	}
	return art.Body, nil
}

// parseID reads a positive numeric route parameter.
func parseID(param string) (int, bool) {
	param = strings.TrimSpace(param)
	if param == "" {
		return 0, false
	}
	id, err := strconv.Atoi(param)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func notFound(what string, id int) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
}
