package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"refugee.info/greece-web/internal/content"
)

type rawCategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Locale      string `json:"locale"`
	Position    int    `json:"position"`
}

type rawSection struct {
	ID          int    `json:"id"`
	CategoryID  int    `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Locale      string `json:"locale"`
	Position    int    `json:"position"`
}

type rawArticle struct {
	ID        int       `json:"id"`
	SectionID int       `json:"section_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Locale    string    `json:"locale"`
	Draft     bool      `json:"draft"`
	UpdatedAt time.Time `json:"updated_at"`
	EditedAt  time.Time `json:"edited_at"`
}

func (r rawCategory) toContent() content.Category {
	return content.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Locale:      r.Locale,
		Position:    r.Position,
	}
}

func (r rawSection) toContent() content.Section {
	return content.Section{
		ID:          r.ID,
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		Locale:      r.Locale,
		Position:    r.Position,
	}
}

func (r rawArticle) toContent() content.Article {
	return content.Article{
		ID:        r.ID,
		SectionID: r.SectionID,
		Title:     r.Title,
		Body:      r.Body,
		Locale:    r.Locale,
		UpdatedAt: r.UpdatedAt,
		EditedAt:  r.EditedAt,
	}
}

func listQuery() url.Values {
	return url.Values{"per_page": {strconv.Itoa(perPage)}}
}

// Categories lists every category of the help center in localeCode.
func (c *Client) Categories(ctx context.Context, localeCode string) ([]content.Category, error) {
	if !c.Remote() {
		return c.local.categories(localeCode)
	}
	endpoint, err := c.helpCenterURL(localeCode, "categories.json")
	if err != nil {
		return nil, err
	}
	var out []content.Category
	err = c.listPages(ctx, "list categories", endpoint, listQuery(), false, func(raw json.RawMessage) (string, error) {
		var page struct {
			Categories []rawCategory `json:"categories"`
			NextPage   *string       `json:"next_page"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", err
		}
		for _, rc := range page.Categories {
			out = append(out, rc.toContent())
		}
		return deref(page.NextPage), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Category fetches a single category.
func (c *Client) Category(ctx context.Context, localeCode string, id int) (content.Category, error) {
	if !c.Remote() {
		return c.local.category(localeCode, id)
	}
	endpoint, err := c.helpCenterURL(localeCode, "categories", strconv.Itoa(id)+".json")
	if err != nil {
		return content.Category{}, err
	}
	var payload struct {
		Category rawCategory `json:"category"`
	}
	if err := c.getJSON(ctx, "get category", endpoint, nil, false, &payload); err != nil {
		return content.Category{}, err
	}
	return payload.Category.toContent(), nil
}

// CategoriesWithSections lists the categories keep accepts, each with its
// sections. Section lists are fetched concurrently; category order is kept.
func (c *Client) CategoriesWithSections(ctx context.Context, localeCode string, keep content.Filter) ([]content.Category, error) {
	categories, err := c.Categories(ctx, localeCode)
	if err != nil {
		return nil, err
	}
	categories = content.FilterCategories(categories, keep)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range categories {
		g.Go(func() error {
			sections, err := c.sectionsForCategory(gctx, localeCode, categories[i].ID)
			if err != nil {
				return fmt.Errorf("sections for category %d: %w", categories[i].ID, err)
			}
			categories[i].Sections = sections
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) sectionsForCategory(ctx context.Context, localeCode string, categoryID int) ([]content.Section, error) {
	if !c.Remote() {
		return c.local.sectionsForCategory(localeCode, categoryID)
	}
	endpoint, err := c.helpCenterURL(localeCode, "categories", strconv.Itoa(categoryID), "sections.json")
	if err != nil {
		return nil, err
	}
	return c.listSections(ctx, endpoint)
}

// Sections lists every section of the help center in localeCode.
func (c *Client) Sections(ctx context.Context, localeCode string) ([]content.Section, error) {
	if !c.Remote() {
		return c.local.sections(localeCode)
	}
	endpoint, err := c.helpCenterURL(localeCode, "sections.json")
	if err != nil {
		return nil, err
	}
	return c.listSections(ctx, endpoint)
}

func (c *Client) listSections(ctx context.Context, endpoint string) ([]content.Section, error) {
	var out []content.Section
	err := c.listPages(ctx, "list sections", endpoint, listQuery(), false, func(raw json.RawMessage) (string, error) {
		var page struct {
			Sections []rawSection `json:"sections"`
			NextPage *string      `json:"next_page"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", err
		}
		for _, rs := range page.Sections {
			out = append(out, rs.toContent())
		}
		return deref(page.NextPage), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Section fetches a single section. A missing section yields ErrNotFound.
func (c *Client) Section(ctx context.Context, localeCode string, id int) (content.Section, error) {
	if !c.Remote() {
		return c.local.section(localeCode, id)
	}
	endpoint, err := c.helpCenterURL(localeCode, "sections", strconv.Itoa(id)+".json")
	if err != nil {
		return content.Section{}, err
	}
	var payload struct {
		Section rawSection `json:"section"`
	}
	if err := c.getJSON(ctx, "get section", endpoint, nil, false, &payload); err != nil {
		return content.Section{}, err
	}
	return payload.Section.toContent(), nil
}

// ArticlesForSection lists the published articles of a section. sortBy is
// passed through as the sort_by parameter when set.
func (c *Client) ArticlesForSection(ctx context.Context, localeCode string, sectionID int, sortBy string) ([]content.Article, error) {
	if !c.Remote() {
		return c.local.articlesForSection(localeCode, sectionID, sortBy)
	}
	endpoint, err := c.helpCenterURL(localeCode, "sections", strconv.Itoa(sectionID), "articles.json")
	if err != nil {
		return nil, err
	}
	q := listQuery()
	if sortBy = strings.TrimSpace(sortBy); sortBy != "" {
		q.Set("sort_by", sortBy)
	}
	return c.listArticles(ctx, endpoint, q)
}

// ArticlesForCategory lists the published articles below a category.
func (c *Client) ArticlesForCategory(ctx context.Context, localeCode string, categoryID int) ([]content.Article, error) {
	if !c.Remote() {
		return c.local.articlesForCategory(localeCode, categoryID)
	}
	endpoint, err := c.helpCenterURL(localeCode, "categories", strconv.Itoa(categoryID), "articles.json")
	if err != nil {
		return nil, err
	}
	return c.listArticles(ctx, endpoint, listQuery())
}

func (c *Client) listArticles(ctx context.Context, endpoint string, q url.Values) ([]content.Article, error) {
	var out []content.Article
	err := c.listPages(ctx, "list articles", endpoint, q, false, func(raw json.RawMessage) (string, error) {
		var page struct {
			Articles []rawArticle `json:"articles"`
			NextPage *string      `json:"next_page"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", err
		}
		for _, ra := range page.Articles {
			if ra.Draft {
				continue
			}
			out = append(out, c.mapArticle(ra))
		}
		return deref(page.NextPage), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Article fetches a single article with links to the help center host
// rewritten to the mapped URL.
func (c *Client) Article(ctx context.Context, localeCode string, id int) (content.Article, error) {
	if !c.Remote() {
		return c.local.article(localeCode, id)
	}
	endpoint, err := c.helpCenterURL(localeCode, "articles", strconv.Itoa(id)+".json")
	if err != nil {
		return content.Article{}, err
	}
	var payload struct {
		Article rawArticle `json:"article"`
	}
	if err := c.getJSON(ctx, "get article", endpoint, nil, true, &payload); err != nil {
		return content.Article{}, err
	}
	return c.mapArticle(payload.Article), nil
}

func (c *Client) mapArticle(ra rawArticle) content.Article {
	a := ra.toContent()
	if c.mappedURL != "" && c.baseURL != "" {
		a.Body = strings.ReplaceAll(a.Body, c.baseURL, c.mappedURL)
	}
	return a
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
