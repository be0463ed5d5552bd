// Package i18n serves dynamic content from local JSON files when no help
// center is configured.
package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"refugee.info/greece-web/internal/translations"
)

// Bundle holds one placeholder table per locale code. Blank values count as
// untranslated so the default locale fills them in.
type Bundle struct {
	tables   map[string]translations.DynamicContent
	fallback string
}

// Load reads <dir>/<code>.json for each code. A missing file is skipped,
// except for the fallback code.
func Load(dir, fallback string, codes []string) (*Bundle, error) {
	b := &Bundle{tables: map[string]translations.DynamicContent{}, fallback: fallback}
	seen := map[string]bool{fallback: true}
	codes = append([]string{fallback}, codes...)
	for i, code := range codes {
		if i > 0 && seen[code] {
			continue
		}
		seen[code] = true
		table, err := readTable(filepath.Join(dir, code+".json"))
		switch {
		case errors.Is(err, fs.ErrNotExist) && code != fallback:
			continue
		case err != nil:
			return nil, fmt.Errorf("load locale %s: %w", code, err)
		}
		b.tables[code] = table
	}
	return b, nil
}

func readTable(path string) (translations.DynamicContent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var table translations.DynamicContent
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	for k, v := range table {
		if v == "" {
			delete(table, k)
		}
	}
	return table, nil
}

// Languages lists the locale codes that have a table, sorted.
func (b *Bundle) Languages() []string {
	out := make([]string, 0, len(b.tables))
	for code := range b.tables {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the locale code used for untranslated keys.
func (b *Bundle) Fallback() string { return b.fallback }

// Lookup returns the value of key in lang, else in the fallback locale.
func (b *Bundle) Lookup(lang, key string) (string, bool) {
	if v, ok := b.tables[lang][key]; ok {
		return v, true
	}
	v, ok := b.tables[b.fallback][key]
	return v, ok
}

// DynamicContent resolves the requested placeholders for lang. Keys with no
// value in either lang or the fallback are left out of the result.
func (b *Bundle) DynamicContent(lang string, placeholders []string) translations.DynamicContent {
	dc := make(translations.DynamicContent, len(placeholders))
	for _, key := range placeholders {
		if v, ok := b.Lookup(lang, key); ok {
			dc[key] = v
		}
	}
	return dc
}
