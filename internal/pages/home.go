package pages

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"refugee.info/greece-web/internal/config"
	"refugee.info/greece-web/internal/content"
	"refugee.info/greece-web/internal/directus"
	"refugee.info/greece-web/internal/locale"
	"refugee.info/greece-web/internal/translations"
)

// ServiceMapProps feeds the service map and list.
type ServiceMapProps struct {
	Services      []directus.Service
	DefaultCoords config.Coords
	ShareButton   translations.ShareButtonStrings
	ServiceTypes  []directus.Term
	Providers     []directus.Term
	Populations   []directus.Term
	Accessibility []directus.Term
	ShowDirectus  bool
}

// HomeProps is everything the home page renders.
type HomeProps struct {
	Common
	Strings      translations.HomePageStrings
	HeaderBanner translations.HeaderBannerStrings
	SocialMedia  translations.SocialMediaLinks
	ServiceMap   ServiceMapProps
	// AboutUsHTML is the raw body of the about-us article.
	AboutUsHTML string
	Categories  []content.Category
}

// Home assembles the home page of localeCode. An unknown or empty code
// falls back to the default locale.
func (a *Assembler) Home(ctx context.Context, localeCode string) (HomeProps, error) {
	l := locale.Lookup(localeCode)

	dc, err := a.dynamicContent(ctx, l, translations.PageHome)
	if err != nil {
		return HomeProps{}, fmt.Errorf("home: %w", err)
	}

	categories, menuCategories, err := a.categoryLists(ctx, l)
	if err != nil {
		return HomeProps{}, fmt.Errorf("home: %w", err)
	}

	aboutUs, err := a.aboutUs(ctx, l)
	if err != nil {
		return HomeProps{}, fmt.Errorf("home: %w", err)
	}

	serviceMap, err := a.serviceMap(ctx, l)
	if err != nil {
		return HomeProps{}, fmt.Errorf("home: %w", err)
	}
	serviceMap.ShareButton = translations.ShareButton(dc)

	return HomeProps{
		Common:       a.common(l, translations.PopulateMenuOverlayStrings(dc), menuCategories),
		Strings:      translations.PopulateHomePageStrings(dc),
		HeaderBanner: translations.PopulateHeaderBannerStrings(dc),
		SocialMedia:  translations.PopulateSocialMediaLinks(dc),
		ServiceMap:   serviceMap,
		AboutUsHTML:  aboutUs,
		Categories:   categories,
	}, nil
}

// serviceMap fetches the directory lists concurrently and sorts services by
// name with the collation rules of the locale.
func (a *Assembler) serviceMap(ctx context.Context, l locale.Locale) (ServiceMapProps, error) {
	props := ServiceMapProps{
		DefaultCoords: a.opts.Site.MapDefaultCoords,
		ShowDirectus:  true,
	}
	if a.dir == nil {
		return props, nil
	}
	countryID := a.opts.CountryID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		services, err := a.dir.Services(gctx, countryID, l.Directus)
		if err != nil {
			return fmt.Errorf("services: %w", err)
		}
		directus.SortServices(services, l.Tag)
		props.Services = services
		return nil
	})
	g.Go(func() error {
		types, err := a.dir.ServiceCategories(gctx)
		if err != nil {
			return fmt.Errorf("service categories: %w", err)
		}
		props.ServiceTypes = types
		return nil
	})
	g.Go(func() error {
		providers, err := a.dir.Providers(gctx, countryID)
		if err != nil {
			return fmt.Errorf("providers: %w", err)
		}
		props.Providers = providers
		return nil
	})
	g.Go(func() error {
		populations, err := a.dir.PopulationsServed(gctx)
		if err != nil {
			return fmt.Errorf("populations served: %w", err)
		}
		props.Populations = populations
		return nil
	})
	g.Go(func() error {
		access, err := a.dir.Accessibility(gctx)
		if err != nil {
			return fmt.Errorf("accessibility: %w", err)
		}
		props.Accessibility = access
		return nil
	})
	if err := g.Wait(); err != nil {
		return ServiceMapProps{}, err
	}
	return props, nil
}
