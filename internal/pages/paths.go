package pages

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"refugee.info/greece-web/internal/locale"
	"refugee.info/greece-web/internal/nav"
)

// SectionPaths lists /{locale}/sections/{id} for every section in every
// locale. Sections of all locales are fetched concurrently. In flat mode
// there are no section pages and the list is empty.
func (a *Assembler) SectionPaths(ctx context.Context) ([]string, error) {
	if !a.opts.Site.UseSections {
		return []string{}, nil
	}
	all := locale.All()
	perLocale := make([][]string, len(all))

	g, gctx := errgroup.WithContext(ctx)
	for i, l := range all {
		g.Go(func() error {
			sections, err := a.hc.Sections(gctx, l.Code)
			if err != nil {
				return fmt.Errorf("section paths %s: %w", l.Code, err)
			}
			paths := make([]string, 0, len(sections))
			for _, s := range sections {
				paths = append(paths, nav.SectionPath(l.Code, s.ID))
			}
			perLocale[i] = paths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []string
	for _, p := range perLocale {
		out = append(out, p...)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
