package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale describes a site language and how each backend identifies it.
type Locale struct {
	Code      string // URL prefix and Help Center locale, e.g. "en-us"
	Name      string // native display name
	ZendeskID int    // dynamic content locale id
	Directus  string // service directory language code
	Tag       language.Tag
	RTL       bool
}

// DefaultCode is served when no locale (or an unknown one) is requested.
const DefaultCode = "en-us"

var table = []Locale{
	{Code: "en-us", Name: "English", ZendeskID: 1, Directus: "en-US", Tag: language.AmericanEnglish},
	{Code: "ar", Name: "العربية", ZendeskID: 66, Directus: "ar-SA", Tag: language.Arabic, RTL: true},
	{Code: "fa", Name: "فارسی/ دری", ZendeskID: 1016, Directus: "fa-IR", Tag: language.Persian, RTL: true},
	{Code: "fr", Name: "Français", ZendeskID: 16, Directus: "fr-FR", Tag: language.French},
	{Code: "uk", Name: "Українська", ZendeskID: 1173, Directus: "uk-UA", Tag: language.Ukrainian},
	{Code: "ur", Name: "اردو", ZendeskID: 1271, Directus: "ur-PK", Tag: language.Urdu, RTL: true},
}

var (
	byCode  = map[string]Locale{}
	matcher language.Matcher
)

func init() {
	tags := make([]language.Tag, 0, len(table))
	for _, l := range table {
		byCode[l.Code] = l
		tags = append(tags, l.Tag)
	}
	matcher = language.NewMatcher(tags)
}

// All returns the locale table in display order.
func All() []Locale {
	out := make([]Locale, len(table))
	copy(out, table)
	return out
}

// Default returns the base locale.
func Default() Locale { return byCode[DefaultCode] }

// Supported reports whether code names a locale in the table.
func Supported(code string) bool {
	_, ok := byCode[normalize(code)]
	return ok
}

// Lookup returns the locale for code, failing over to the default locale.
func Lookup(code string) Locale {
	if l, ok := byCode[normalize(code)]; ok {
		return l
	}
	return Default()
}

// Match picks the best locale for an Accept-Language header value.
func Match(acceptLanguage string) Locale {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return Default()
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(table) {
		return Default()
	}
	return table[idx]
}

// FromZendeskID returns the locale whose help center locale id is id.
func FromZendeskID(id int) (Locale, bool) {
	for _, l := range table {
		if l.ZendeskID == id {
			return l, true
		}
	}
	return Locale{}, false
}

// Codes lists every locale code in table order.
func Codes() []string {
	out := make([]string, 0, len(table))
	for _, l := range table {
		out = append(out, l.Code)
	}
	return out
}

// Dir returns the HTML text direction for the locale.
func (l Locale) Dir() string {
	if l.RTL {
		return "rtl"
	}
	return "ltr"
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
