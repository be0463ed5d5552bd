package zendesk

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"

	"refugee.info/greece-web/internal/content"
	"refugee.info/greece-web/internal/locale"
)

const (
	defaultContentDir = "content"
	treeFile          = "helpcenter.yaml"
)

type treeFileCategory struct {
	ID          int               `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Sections    []treeFileSection `yaml:"sections"`
}

type treeFileSection struct {
	ID          int               `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Articles    []treeFileArticle `yaml:"articles"`
}

type treeFileArticle struct {
	ID        int    `yaml:"id"`
	Title     string `yaml:"title"`
	UpdatedAt string `yaml:"updated_at"`
	Body      string `yaml:"body"`
}

// tree is one locale's parsed help center.
type tree struct {
	categories []content.Category
	sections   []content.Section
	articles   []content.Article
}

// localTree lazily loads <dir>/<locale>/helpcenter.yaml, falling back to the
// default locale's file when a locale has none.
type localTree struct {
	dir string
	md  goldmark.Markdown

	mu    sync.Mutex
	trees map[string]*tree
}

func newLocalTree(dir string) *localTree {
	if strings.TrimSpace(dir) == "" {
		dir = defaultContentDir
	}
	return &localTree{
		dir: dir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		trees: map[string]*tree{},
	}
}

func (lt *localTree) load(localeCode string) (*tree, error) {
	code := strings.ToLower(strings.TrimSpace(localeCode))
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if t, ok := lt.trees[code]; ok {
		return t, nil
	}

	candidates := []string{code}
	if code != locale.DefaultCode {
		candidates = append(candidates, locale.DefaultCode)
	}
	for _, candidate := range candidates {
		t, err := lt.parse(filepath.Join(lt.dir, candidate, treeFile), code)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lt.trees[code] = t
		return t, nil
	}
	t := &tree{}
	lt.trees[code] = t
	return t, nil
}

func (lt *localTree) parse(path, localeCode string) (*tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Categories []treeFileCategory `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("zendesk: parse %s: %w", path, err)
	}

	t := &tree{}
	for ci, fc := range doc.Categories {
		cat := content.Category{
			ID:          fc.ID,
			Name:        fc.Name,
			Description: fc.Description,
			Locale:      localeCode,
			Position:    ci,
		}
		for si, fsec := range fc.Sections {
			sec := content.Section{
				ID:          fsec.ID,
				CategoryID:  fc.ID,
				Name:        fsec.Name,
				Description: fsec.Description,
				Locale:      localeCode,
				Position:    si,
			}
			for _, fa := range fsec.Articles {
				var buf bytes.Buffer
				if err := lt.md.Convert([]byte(fa.Body), &buf); err != nil {
					return nil, fmt.Errorf("zendesk: render article %d: %w", fa.ID, err)
				}
				updated := parseDate(fa.UpdatedAt)
				t.articles = append(t.articles, content.Article{
					ID:        fa.ID,
					SectionID: fsec.ID,
					Title:     fa.Title,
					Body:      buf.String(),
					Locale:    localeCode,
					UpdatedAt: updated,
					EditedAt:  updated,
				})
			}
			cat.Sections = append(cat.Sections, sec)
			t.sections = append(t.sections, sec)
		}
		t.categories = append(t.categories, cat)
	}
	return t, nil
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// categories returns the top-level categories without their sections.
func (lt *localTree) categories(localeCode string) ([]content.Category, error) {
	t, err := lt.load(localeCode)
	if err != nil {
		return nil, err
	}
	out := make([]content.Category, len(t.categories))
	for i, c := range t.categories {
		c.Sections = nil
		out[i] = c
	}
	return out, nil
}

func (lt *localTree) category(localeCode string, id int) (content.Category, error) {
	cats, err := lt.categories(localeCode)
	if err != nil {
		return content.Category{}, err
	}
	for _, c := range cats {
		if c.ID == id {
			return c, nil
		}
	}
	return content.Category{}, ErrNotFound
}

func (lt *localTree) sections(localeCode string) ([]content.Section, error) {
	t, err := lt.load(localeCode)
	if err != nil {
		return nil, err
	}
	return append([]content.Section(nil), t.sections...), nil
}

func (lt *localTree) sectionsForCategory(localeCode string, categoryID int) ([]content.Section, error) {
	all, err := lt.sections(localeCode)
	if err != nil {
		return nil, err
	}
	var out []content.Section
	for _, s := range all {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (lt *localTree) section(localeCode string, id int) (content.Section, error) {
	all, err := lt.sections(localeCode)
	if err != nil {
		return content.Section{}, err
	}
	for _, s := range all {
		if s.ID == id {
			return s, nil
		}
	}
	return content.Section{}, ErrNotFound
}

func (lt *localTree) articlesForSection(localeCode string, sectionID int, sortBy string) ([]content.Article, error) {
	if _, err := lt.section(localeCode, sectionID); err != nil {
		return nil, err
	}
	t, err := lt.load(localeCode)
	if err != nil {
		return nil, err
	}
	var out []content.Article
	for _, a := range t.articles {
		if a.SectionID == sectionID {
			out = append(out, a)
		}
	}
	switch sortBy {
	case "updated_at", "edited_at":
		sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	case "title":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	}
	return out, nil
}

func (lt *localTree) articlesForCategory(localeCode string, categoryID int) ([]content.Article, error) {
	sections, err := lt.sectionsForCategory(localeCode, categoryID)
	if err != nil {
		return nil, err
	}
	var out []content.Article
	for _, s := range sections {
		arts, err := lt.articlesForSection(localeCode, s.ID, "")
		if err != nil {
			return nil, err
		}
		out = append(out, arts...)
	}
	return out, nil
}

func (lt *localTree) article(localeCode string, id int) (content.Article, error) {
	t, err := lt.load(localeCode)
	if err != nil {
		return content.Article{}, err
	}
	for _, a := range t.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return content.Article{}, ErrNotFound
}
