package handlers

import "refugee.info/greece-web/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
// Tags load only after the cookie banner is accepted.
type Analytics struct {
	GoogleAnalyticsIDs []string
}

// Enabled reports whether any measurement id is configured.
func (a Analytics) Enabled() bool { return len(a.GoogleAnalyticsIDs) > 0 }

// Primary returns the id used for the gtag.js loader URL.
func (a Analytics) Primary() string {
	if len(a.GoogleAnalyticsIDs) == 0 {
		return ""
	}
	return a.GoogleAnalyticsIDs[0]
}

// NewAnalytics builds Analytics from configuration.
func NewAnalytics(cfg config.AnalyticsConfig) Analytics {
	ids := make([]string, 0, len(cfg.GoogleAnalyticsIDs))
	ids = append(ids, cfg.GoogleAnalyticsIDs...)
	return Analytics{GoogleAnalyticsIDs: ids}
}
