package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Cache.Revalidate != 300*time.Second {
		t.Errorf("unexpected revalidate: %s", cfg.Cache.Revalidate)
	}
	if cfg.Zendesk.URL != "" || cfg.Directus.URL != "" {
		t.Errorf("expected unconfigured backends, got %q %q", cfg.Zendesk.URL, cfg.Directus.URL)
	}
	if cfg.Zendesk.AuthHeader() != "" {
		t.Errorf("expected empty auth header")
	}
	if !reflect.DeepEqual(cfg.Site.CategoriesToHide, DefaultSite().CategoriesToHide) {
		t.Errorf("expected default hidden categories, got %v", cfg.Site.CategoriesToHide)
	}
	if cfg.Site.Title != "Refugee.Info Greece" {
		t.Errorf("unexpected site title %q", cfg.Site.Title)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unexpected log level %q", cfg.LogLevel)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"SIGNPOST_PORT":                    "9090",
		"SIGNPOST_READ_TIMEOUT":            "20s",
		"SIGNPOST_REVALIDATE":              "60",
		"SIGNPOST_ZENDESK_URL":             "https://example.zendesk.com/",
		"SIGNPOST_ZENDESK_MAPPED_URL":      "https://greece.refugee.info",
		"SIGNPOST_ZENDESK_OAUTH_TOKEN":     "tok",
		"SIGNPOST_DIRECTUS_URL":            "https://directus.example.com",
		"SIGNPOST_DIRECTUS_TOKEN":          "dtok",
		"SIGNPOST_DIRECTUS_COUNTRY_ID":     "7",
		"SIGNPOST_USE_SECTIONS":            "false",
		"SIGNPOST_CATEGORIES_TO_HIDE":      "1, 2,x",
		"SIGNPOST_MENU_CATEGORIES_TO_HIDE": "",
		"SIGNPOST_GA_IDS":                  "G-1,G-2",
		"SIGNPOST_DEV":                     "true",
		"SIGNPOST_PUBLIC_URL":              "https://greece.refugee.info/",
	}

	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port override, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("unexpected read timeout %s", cfg.Server.ReadTimeout)
	}
	if cfg.Cache.Revalidate != time.Minute {
		t.Errorf("expected bare seconds to parse, got %s", cfg.Cache.Revalidate)
	}
	if cfg.Zendesk.URL != "https://example.zendesk.com" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Zendesk.URL)
	}
	if cfg.Zendesk.AuthHeader() != "Bearer tok" {
		t.Errorf("unexpected auth header %q", cfg.Zendesk.AuthHeader())
	}
	if cfg.Directus.CountryID != 7 {
		t.Errorf("unexpected country id %d", cfg.Directus.CountryID)
	}
	if cfg.Site.UseSections {
		t.Errorf("expected flat structure")
	}
	if !reflect.DeepEqual(cfg.Site.CategoriesToHide, []int{1, 2}) {
		t.Errorf("unexpected hidden categories %v", cfg.Site.CategoriesToHide)
	}
	if len(cfg.Site.MenuCategoriesToHide) != 0 {
		t.Errorf("expected explicit empty menu list, got %v", cfg.Site.MenuCategoriesToHide)
	}
	if !reflect.DeepEqual(cfg.Analytics.GoogleAnalyticsIDs, []string{"G-1", "G-2"}) {
		t.Errorf("unexpected GA ids %v", cfg.Analytics.GoogleAnalyticsIDs)
	}
	if !cfg.Web.Dev {
		t.Errorf("expected dev mode")
	}
	if cfg.Web.PublicURL != "https://greece.refugee.info" {
		t.Errorf("unexpected public url %q", cfg.Web.PublicURL)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"SIGNPOST_DIRECTUS_URL": "https://directus.example.com",
	}
	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !reflect.DeepEqual(vErr.Fields(), []string{"SIGNPOST_DIRECTUS_TOKEN"}) {
		t.Errorf("unexpected fields %v", vErr.Fields())
	}

	_, err = Load(context.Background(), WithEnvMap(map[string]string{"SIGNPOST_DIRECTUS_COUNTRY_ID": "greece"}), WithoutSystemEnv(), WithEnvFile(""))
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error for country id, got %v", err)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nexport SIGNPOST_PORT=7070\nSIGNPOST_LOG_LEVEL=\"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{"SIGNPOST_LOG_LEVEL": "warn"}), WithoutSystemEnv(), WithEnvFile(path))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("expected port from env file, got %s", cfg.Server.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected env map to win over env file, got %s", cfg.LogLevel)
	}
}
