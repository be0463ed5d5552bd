package zendesk

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"refugee.info/greece-web/internal/locale"
	"refugee.info/greece-web/internal/translations"
)

type rawDynamicItem struct {
	Name        string              `json:"name"`
	Placeholder string              `json:"placeholder"`
	Variants    []rawDynamicVariant `json:"variants"`
}

type rawDynamicVariant struct {
	Content  string `json:"content"`
	LocaleID int    `json:"locale_id"`
	Default  bool   `json:"default"`
	Active   *bool  `json:"active"`
}

// DynamicContent resolves placeholders for the help center locale id. Each
// item contributes its variant for zendeskLocaleID, else its default variant.
// Items not listed in placeholders are ignored; placeholders with no item are
// absent from the result.
func (c *Client) DynamicContent(ctx context.Context, zendeskLocaleID int, placeholders []string) (translations.DynamicContent, error) {
	if !c.Remote() {
		return c.localDynamicContent(zendeskLocaleID, placeholders), nil
	}

	wanted := make(map[string]struct{}, len(placeholders))
	for _, p := range placeholders {
		wanted[p] = struct{}{}
	}

	endpoint, err := url.JoinPath(c.baseURL, "api", "v2", "dynamic_content", "items.json")
	if err != nil {
		return nil, err
	}
	dc := make(translations.DynamicContent, len(wanted))
	err = c.listPages(ctx, "dynamic content", endpoint, listQuery(), true, func(raw json.RawMessage) (string, error) {
		var page struct {
			Items    []rawDynamicItem `json:"items"`
			NextPage *string          `json:"next_page"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", err
		}
		for _, item := range page.Items {
			name := itemName(item)
			if _, ok := wanted[name]; !ok {
				continue
			}
			if v, ok := pickVariant(item.Variants, zendeskLocaleID); ok {
				dc[name] = v
			}
		}
		return deref(page.NextPage), nil
	})
	if err != nil {
		return nil, err
	}
	return dc, nil
}

// itemName prefers the item name and falls back to the {{dc.name}} placeholder.
func itemName(item rawDynamicItem) string {
	if item.Name != "" {
		return item.Name
	}
	p := strings.TrimSpace(item.Placeholder)
	p = strings.TrimPrefix(p, "{{")
	p = strings.TrimSuffix(p, "}}")
	return strings.TrimPrefix(p, "dc.")
}

func pickVariant(variants []rawDynamicVariant, localeID int) (string, bool) {
	var def *rawDynamicVariant
	for i := range variants {
		v := &variants[i]
		if v.Active != nil && !*v.Active {
			continue
		}
		if v.LocaleID == localeID {
			return v.Content, true
		}
		if v.Default && def == nil {
			def = v
		}
	}
	if def != nil {
		return def.Content, true
	}
	return "", false
}

func (c *Client) localDynamicContent(zendeskLocaleID int, placeholders []string) translations.DynamicContent {
	if c.dynamic == nil {
		return translations.DynamicContent{}
	}
	l, ok := locale.FromZendeskID(zendeskLocaleID)
	if !ok {
		l = locale.Default()
	}
	return c.dynamic.DynamicContent(l.Code, placeholders)
}
