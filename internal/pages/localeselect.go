package pages

import (
	"net/url"
	"strings"

	"refugee.info/greece-web/internal/locale"
)

// LocaleSelectMessage is shown above the language list. It is not localized
// since the visitor has not picked a language yet.
const LocaleSelectMessage = "Please choose your preferred language"

// LocaleLink is one language choice.
type LocaleLink struct {
	Code string
	Name string
	Dir  string
	Href string
}

// LocaleSelectProps is everything the locale-select page renders.
type LocaleSelectProps struct {
	SiteTitle string
	Message   string
	Target    string
	Langs     []LocaleLink
}

// LocaleSelect builds the language list. Each link opens target in that
// locale and carries ?hl= so the choice is remembered.
func (a *Assembler) LocaleSelect(target string) LocaleSelectProps {
	target = cleanTarget(target)
	all := locale.All()
	langs := make([]LocaleLink, 0, len(all))
	for _, l := range all {
		langs = append(langs, LocaleLink{
			Code: l.Code,
			Name: l.Name,
			Dir:  l.Dir(),
			Href: localizedHref(l.Code, target),
		})
	}
	return LocaleSelectProps{
		SiteTitle: a.opts.Site.Title,
		Message:   LocaleSelectMessage,
		Target:    target,
		Langs:     langs,
	}
}

// SavedLocaleTarget returns where a returning visitor whose saved locale is
// code should go instead of the language list. It is false for unknown codes.
func (a *Assembler) SavedLocaleTarget(code, target string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !locale.Supported(code) {
		return "", false
	}
	return localizedHref(code, cleanTarget(target)), true
}

// cleanTarget keeps only same-site paths and strips any locale prefix.
func cleanTarget(target string) string {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	rest := strings.TrimPrefix(u.Path, "/")
	first, tail, _ := strings.Cut(rest, "/")
	if locale.Supported(first) {
		rest = tail
	}
	rest = strings.TrimLeft(rest, "/")
	out := &url.URL{Path: "/" + rest, RawQuery: u.RawQuery}
	return out.String()
}

func localizedHref(code, target string) string {
	u, err := url.Parse(target)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	u.Path = "/" + code + u.Path
	q := u.Query()
	q.Set("hl", code)
	u.RawQuery = q.Encode()
	return u.String()
}
