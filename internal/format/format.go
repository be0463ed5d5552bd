package format

import (
	"strings"
	"time"
)

// numeric layouts by locale; English spells the month
var dateLayouts = map[string]string{
	"en-us": "Jan 2, 2006",
	"fr":    "02/01/2006",
	"uk":    "02.01.2006",
	"ar":    "2006/01/02",
	"fa":    "2006/01/02",
	"ur":    "02/01/2006",
}

// FmtDate formats t in a locale-friendly short form. Unknown locales use the English layout.
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	layout, ok := dateLayouts[strings.ToLower(lang)]
	if !ok {
		layout = dateLayouts["en-us"]
	}
	return t.Format(layout)
}

// ISODate is the machine-readable form used in <time datetime>.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
