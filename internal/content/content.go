// Package content models the help center taxonomy shared by the CMS client,
// the page assemblers and the navigation builders.
package content

import "time"

// Category is a top-level node. Sections is only populated in nested mode.
type Category struct {
	ID          int
	Name        string
	Description string
	Locale      string
	Position    int
	Icon        string
	Sections    []Section
}

// Section groups articles below a category.
type Section struct {
	ID          int
	CategoryID  int
	Name        string
	Description string
	Locale      string
	Position    int
	Icon        string
	Articles    []Article
}

// Article is a help center page. Body is HTML.
type Article struct {
	ID        int
	SectionID int
	Title     string
	Body      string
	Locale    string
	UpdatedAt time.Time
	EditedAt  time.Time
}

// DefaultIcon is used for any node without an entry in an icon table.
const DefaultIcon = "help_outline"

// Filter keeps only the categories for which keep returns true.
type Filter func(Category) bool

// ExcludeIDs builds a Filter dropping every category whose id is listed.
func ExcludeIDs(hidden []int) Filter {
	set := make(map[int]struct{}, len(hidden))
	for _, id := range hidden {
		set[id] = struct{}{}
	}
	return func(c Category) bool {
		_, drop := set[c.ID]
		return !drop
	}
}

// FilterCategories returns a new slice with the categories keep accepts, in order.
func FilterCategories(categories []Category, keep Filter) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if keep == nil || keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// IconFor returns the icon name for id, or def when the table has no entry.
func IconFor(icons map[int]string, id int, def string) string {
	if name, ok := icons[id]; ok && name != "" {
		return name
	}
	return def
}

// AssignCategoryIcons sets each category's icon from icons.
func AssignCategoryIcons(categories []Category, icons map[int]string, def string) {
	for i := range categories {
		categories[i].Icon = IconFor(icons, categories[i].ID, def)
	}
}

// AssignSectionIcons sets the icon of every section below categories.
// Category icons are left untouched.
func AssignSectionIcons(categories []Category, icons map[int]string, def string) {
	for i := range categories {
		for j := range categories[i].Sections {
			s := &categories[i].Sections[j]
			s.Icon = IconFor(icons, s.ID, def)
		}
	}
}

// FlattenSections lists the sections of categories in tree order.
func FlattenSections(categories []Category) []Section {
	var out []Section
	for _, c := range categories {
		out = append(out, c.Sections...)
	}
	return out
}
