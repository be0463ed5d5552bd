package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultRevalidate   = 300 * time.Second
	defaultContentDir   = "content"
	defaultLocalesDir   = "locales"
	defaultTemplatesDir = "templates"
	defaultPublicDir    = "public"
	defaultCountryID    = 1
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Zendesk   ZendeskConfig
	Directus  DirectusConfig
	Cache     CacheConfig
	Web       WebConfig
	Analytics AnalyticsConfig
	Site      Site
	LogLevel  string
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ZendeskConfig points at the help center. An empty URL selects the local content fallback.
type ZendeskConfig struct {
	URL        string
	MappedURL  string
	OAuthToken string
	ContentDir string
	LocalesDir string
}

// AuthHeader returns the Authorization value for dynamic content requests.
func (z ZendeskConfig) AuthHeader() string {
	if z.OAuthToken == "" {
		return ""
	}
	return "Bearer " + z.OAuthToken
}

// DirectusConfig points at the service directory.
type DirectusConfig struct {
	URL       string
	Token     string
	CountryID int
}

// CacheConfig controls how long rendered pages are reused. An empty Addr keeps pages in memory.
type CacheConfig struct {
	Addr       string
	Revalidate time.Duration
	Warm       bool
}

// WebConfig holds template/asset locations and build metadata. PublicURL is
// the origin the site is served from; cache warm-up addresses its requests to it.
type WebConfig struct {
	TemplatesDir string
	PublicDir    string
	PublicURL    string
	Dev          bool
	Version      string
}

// AnalyticsConfig lists the Google Analytics ids loaded once the cookie banner is accepted.
type AnalyticsConfig struct {
	GoogleAnalyticsIDs []string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the dotenv file consulted after the process environment.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap supplies values that take precedence over every other source.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load reads configuration from the environment (and optional .env file).
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	port := stringWithDefault(lookup, "SIGNPOST_PORT", "")
	if port == "" {
		// Cloud Run injects PORT.
		port = stringWithDefault(lookup, "PORT", defaultPort)
	}

	site := DefaultSite()
	site.UseSections = boolWithDefault(lookup, "SIGNPOST_USE_SECTIONS", site.UseSections)
	if ids, ok := intsFromCSV(lookup, "SIGNPOST_CATEGORIES_TO_HIDE"); ok {
		site.CategoriesToHide = ids
	}
	if ids, ok := intsFromCSV(lookup, "SIGNPOST_MENU_CATEGORIES_TO_HIDE"); ok {
		site.MenuCategoriesToHide = ids
	}

	var invalid []string
	countryID, countryOK := intWithDefault(lookup, "SIGNPOST_DIRECTUS_COUNTRY_ID", defaultCountryID)
	if !countryOK {
		invalid = append(invalid, "SIGNPOST_DIRECTUS_COUNTRY_ID")
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         port,
			ReadTimeout:  durationWithDefault(lookup, "SIGNPOST_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "SIGNPOST_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "SIGNPOST_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Zendesk: ZendeskConfig{
			URL:        strings.TrimRight(stringWithDefault(lookup, "SIGNPOST_ZENDESK_URL", ""), "/"),
			MappedURL:  strings.TrimRight(stringWithDefault(lookup, "SIGNPOST_ZENDESK_MAPPED_URL", ""), "/"),
			OAuthToken: stringWithDefault(lookup, "SIGNPOST_ZENDESK_OAUTH_TOKEN", ""),
			ContentDir: stringWithDefault(lookup, "SIGNPOST_CONTENT_DIR", defaultContentDir),
			LocalesDir: stringWithDefault(lookup, "SIGNPOST_LOCALES_DIR", defaultLocalesDir),
		},
		Directus: DirectusConfig{
			URL:       strings.TrimRight(stringWithDefault(lookup, "SIGNPOST_DIRECTUS_URL", ""), "/"),
			Token:     stringWithDefault(lookup, "SIGNPOST_DIRECTUS_TOKEN", ""),
			CountryID: countryID,
		},
		Cache: CacheConfig{
			Addr:       stringWithDefault(lookup, "SIGNPOST_CACHE_ADDR", ""),
			Revalidate: durationWithDefault(lookup, "SIGNPOST_REVALIDATE", defaultRevalidate),
			Warm:       boolWithDefault(lookup, "SIGNPOST_CACHE_WARM", false),
		},
		Web: WebConfig{
			TemplatesDir: stringWithDefault(lookup, "SIGNPOST_TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:    stringWithDefault(lookup, "SIGNPOST_PUBLIC_DIR", defaultPublicDir),
			PublicURL:    strings.TrimRight(stringWithDefault(lookup, "SIGNPOST_PUBLIC_URL", ""), "/"),
			Dev:          boolWithDefault(lookup, "SIGNPOST_DEV", false),
			Version:      stringWithDefault(lookup, "SIGNPOST_VERSION", "dev"),
		},
		Analytics: AnalyticsConfig{
			GoogleAnalyticsIDs: csvWithDefault(lookup, "SIGNPOST_GA_IDS"),
		},
		Site:     site,
		LogLevel: stringWithDefault(lookup, "SIGNPOST_LOG_LEVEL", "info"),
	}

	if len(invalid) > 0 {
		return Config{}, &ValidationError{fields: invalid}
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var fields []string
	if strings.TrimSpace(cfg.Server.Port) == "" {
		fields = append(fields, "SIGNPOST_PORT")
	}
	if cfg.Cache.Revalidate < 0 {
		fields = append(fields, "SIGNPOST_REVALIDATE")
	}
	if cfg.Directus.URL != "" && cfg.Directus.Token == "" {
		fields = append(fields, "SIGNPOST_DIRECTUS_TOKEN")
	}
	if cfg.Zendesk.MappedURL != "" && cfg.Zendesk.URL == "" {
		fields = append(fields, "SIGNPOST_ZENDESK_URL")
	}
	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open env file %s: %w", path, err)
	}
	defer f.Close()

	values := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		values[strings.TrimSpace(key)] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// bare integers are seconds
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) (int, bool) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback, false
	}
	return n, true
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return b
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	value, ok := lookup(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func intsFromCSV(lookup func(string) (string, bool), key string) ([]int, bool) {
	if _, ok := lookup(key); !ok {
		return nil, false
	}
	parts := csvWithDefault(lookup, key)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, true
}
