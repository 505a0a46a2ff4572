package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

// ErrAPIBaseURLRequired indicates the backend base URL is missing.
var ErrAPIBaseURLRequired = errors.New("editor config: api base url is required")

// ErrAPITimeoutInvalid rejects non-positive request timeouts.
var ErrAPITimeoutInvalid = errors.New("editor config: api timeout must be positive")

// ErrAutosaveIntervalInvalid rejects non-positive autosave intervals.
var ErrAutosaveIntervalInvalid = errors.New("editor config: autosave interval must be positive")

// ErrItemsPerPageInvalid rejects non-positive page sizes.
var ErrItemsPerPageInvalid = errors.New("editor config: items per page must be positive")

var ErrDraftsPathRequired = errors.New("editor config: drafts store path is required when drafts are enabled")
var ErrLoggingProviderRequired = errors.New("editor config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("editor config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("editor config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("editor config: logging format is invalid")

// Config aggregates the editor runtime options. Fields intentionally use
// simple types so host applications can extend them later.
type Config struct {
	API      APIConfig
	Editor   EditorConfig
	Drafts   DraftsConfig
	Features Features
	Logging  LoggingConfig
}

// APIConfig captures the connection settings for the backend HTTP API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// EditorConfig captures behavioural knobs of the layout editor runtime.
type EditorConfig struct {
	AutosaveInterval      time.Duration
	ItemsPerPage          int
	EnableFallbackSamples bool
	SuccessDismissAfter   time.Duration
}

// DraftsConfig controls the advisory local draft cache.
type DraftsConfig struct {
	Enabled bool
	// Path is the SQLite database location. ":memory:" is accepted for tests.
	Path     string
	CacheTTL time.Duration
}

// Features toggles optional editor functionality.
type Features struct {
	Drafts   bool
	RichText bool
	Logger   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the documented defaults: a 30s request timeout, 10s
// autosave cadence, 10 items per page, and fallback samples enabled.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout: 30 * time.Second,
		},
		Editor: EditorConfig{
			AutosaveInterval:      10 * time.Second,
			ItemsPerPage:          10,
			EnableFallbackSamples: true,
			SuccessDismissAfter:   4 * time.Second,
		},
		Drafts: DraftsConfig{
			Path:     "file::memory:?cache=shared",
			CacheTTL: 5 * time.Minute,
		},
		Features: Features{
			RichText: true,
		},
	}
}

// Validate reports the first configuration inconsistency found.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return ErrAPIBaseURLRequired
	}
	if c.API.Timeout <= 0 {
		return ErrAPITimeoutInvalid
	}
	if c.Editor.AutosaveInterval <= 0 {
		return ErrAutosaveIntervalInvalid
	}
	if c.Editor.ItemsPerPage <= 0 {
		return ErrItemsPerPageInvalid
	}
	if c.Features.Drafts && strings.TrimSpace(c.Drafts.Path) == "" {
		return ErrDraftsPathRequired
	}
	if c.Features.Logger {
		provider := strings.ToLower(strings.TrimSpace(c.Logging.Provider))
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "gologger" && provider != "noop" {
			return ErrLoggingProviderUnknown
		}
		if !validLoggingLevel(c.Logging.Level) {
			return ErrLoggingLevelInvalid
		}
		if !validLoggingFormat(c.Logging.Format) {
			return ErrLoggingFormatInvalid
		}
	}
	return nil
}

func validLoggingLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func validLoggingFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json", "console", "pretty":
		return true
	default:
		return false
	}
}
