// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/leaddesk-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete leaddesk configuration.
type Config struct {
	Version string `toml:"version" json:"version" yaml:"version"`

	// Service is the remote lead service.
	Service ServiceConfig `toml:"service" json:"service" yaml:"service"`

	// UI controls the lead board.
	UI UIConfig `toml:"ui" json:"ui" yaml:"ui"`

	// Storage is the local snapshot and history database.
	Storage StorageConfig `toml:"storage" json:"storage" yaml:"storage"`

	Log LogConfig `toml:"log" json:"log" yaml:"log"`
}

// ServiceConfig contains remote service configuration.
type ServiceConfig struct {
	// BaseURL is prefixed to every request path.
	BaseURL string `toml:"base_url" json:"base_url" yaml:"base_url"`
	// RequestTimeoutSecs bounds each request; 0 means no timeout.
	RequestTimeoutSecs int `toml:"request_timeout_secs" json:"request_timeout_secs" yaml:"request_timeout_secs"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string `toml:"user_agent" json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// PageSize is the number of leads per page.
	PageSize int `toml:"page_size" json:"page_size" yaml:"page_size"`
	// DateFormat is a Go time layout for the Created At column.
	DateFormat string `toml:"date_format" json:"date_format" yaml:"date_format"`
	// ShowStats displays the lead count and page position.
	ShowStats bool `toml:"show_stats" json:"show_stats" yaml:"show_stats"`
	// Theme is "dark", "light" or "auto".
	Theme string `toml:"theme" json:"theme" yaml:"theme"`
}

// StorageConfig contains local database configuration.
type StorageConfig struct {
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`
	// Path is the sqlite file (empty = ~/.leaddesk/leaddesk.db).
	Path string `toml:"path" json:"path" yaml:"path"`
}

// LogConfig contains diagnostic log configuration.
type LogConfig struct {
	// Path is where the TUI writes its log (empty = ~/.leaddesk/leaddesk.log).
	Path string `toml:"path" json:"path" yaml:"path"`
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Service.RequestTimeoutSecs) * time.Second
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

const (
	// DefaultBaseURL is where the lead service runs in development.
	DefaultBaseURL = "http://localhost:3001"

	// DefaultDateFormat renders times as day/month/year hour:minute.
	DefaultDateFormat = "02/01/2006 15:04"

	DefaultPageSize = 5
	MaxPageSize     = 100

	dirName     = ".leaddesk"
	dbFileName  = "leaddesk.db"
	logFileName = "leaddesk.log"
)

// Default returns a Config with default values. Paths are left empty and
// resolved against the config directory by SetDefaults.
func Default() *Config {
	return &Config{
		Version: "1",

		Service: ServiceConfig{
			BaseURL:            DefaultBaseURL,
			RequestTimeoutSecs: 0,
		},

		UI: UIConfig{
			PageSize:   DefaultPageSize,
			DateFormat: DefaultDateFormat,
			ShowStats:  true,
			Theme:      "auto",
		},

		Storage: StorageConfig{
			Enabled: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the leaddesk configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// =============================================================================
// LOADER
// =============================================================================

// Loader reads and writes configuration files on a filesystem.
type Loader struct {
	fs  afero.Fs
	dir string
}

// NewLoader returns a loader for dir on fs. An empty dir means ConfigDir.
func NewLoader(fs afero.Fs, dir string) (*Loader, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Loader{fs: fs, dir: dir}, nil
}

// Dir returns the configuration directory.
func (l *Loader) Dir() string {
	return l.dir
}

// PathTOML returns the path to the TOML config file.
func (l *Loader) PathTOML() string {
	return filepath.Join(l.dir, "config.toml")
}

// PathJSON returns the path to the JSON config file.
func (l *Loader) PathJSON() string {
	return filepath.Join(l.dir, "config.json")
}

// PathYAML returns the path to the YAML config file.
func (l *Loader) PathYAML() string {
	return filepath.Join(l.dir, "config.yaml")
}

// Candidates lists the config files in the order they are tried.
func (l *Loader) Candidates() []string {
	return []string{l.PathTOML(), l.PathJSON(), l.PathYAML()}
}

// Active returns the first candidate that exists, or "" if none does.
func (l *Loader) Active() string {
	for _, p := range l.Candidates() {
		if ok, _ := afero.Exists(l.fs, p); ok {
			return p
		}
	}
	return ""
}

// ensureSecurePermissions tightens a config file to owner read/write.
func (l *Loader) ensureSecurePermissions(path string) error {
	info, err := l.fs.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := l.fs.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the first config file found (TOML, then JSON, then YAML) and
// falls back to defaults. Environment overrides are applied last.
func (l *Loader) Load() (*Config, error) {
	var loadErr error

	for _, path := range l.Candidates() {
		if ok, _ := afero.Exists(l.fs, path); !ok {
			continue
		}
		cfg, err := l.LoadFromPath(path)
		if err == nil {
			return cfg, nil
		}
		var verrs ValidateErrors
		if errors.As(err, &verrs) {
			return nil, err
		}
		loadErr = err
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults(l.dir)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Defaults are still usable when a file failed to parse.
	return cfg, loadErr
}

// LoadFromPath loads a specific file. The format follows the extension;
// anything other than .json, .yaml or .yml is read as TOML.
func (l *Loader) LoadFromPath(path string) (*Config, error) {
	if err := l.ensureSecurePermissions(path); err != nil {
		log.Printf("CONFIG_PERMISSIONS | path=%s error=%v", path, err)
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := decode(cfg, data, formatOf(path)); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults(l.dir)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

func decode(cfg *Config, data []byte, format string) error {
	switch format {
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to decode TOML: %w", err)
		}
	}
	return nil
}

// SetDefaults fills empty values, resolving file paths under dir.
func (c *Config) SetDefaults(dir string) {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Service.BaseURL == "" {
		c.Service.BaseURL = defaults.Service.BaseURL
	}
	c.Service.BaseURL = strings.TrimRight(c.Service.BaseURL, "/")
	if c.UI.PageSize == 0 {
		c.UI.PageSize = defaults.UI.PageSize
	}
	if c.UI.DateFormat == "" {
		c.UI.DateFormat = defaults.UI.DateFormat
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(dir, dbFileName)
	}
	if c.Log.Path == "" {
		c.Log.Path = filepath.Join(dir, logFileName)
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the loader's TOML file.
func (l *Loader) Save(cfg *Config) error {
	return l.SaveTOML(cfg, l.PathTOML())
}

// SaveTOML writes cfg as TOML with 0600 permissions.
func (l *Loader) SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# leaddesk configuration file")
	fmt.Fprintln(&buf, "# Generated by leaddesk - edit with care")
	fmt.Fprintln(&buf, "")

	data, err := Encode(cfg, "toml")
	if err != nil {
		return err
	}
	buf.Write(data)

	if err := util.AtomicWriteFile(l.fs, path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON with 0600 permissions.
func (l *Loader) SaveJSON(cfg *Config, path string) error {
	data, err := Encode(cfg, "json")
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(l.fs, path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Encode renders cfg as "toml", "json" or "yaml".
func Encode(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		return data, nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %q, must be one of: toml, json, yaml", format)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Service
	// ==========================================================================

	u, err := url.Parse(c.Service.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{
			Field:   "service.base_url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		})
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, ValidationError{
			Field:   "service.base_url",
			Message: fmt.Sprintf("scheme must be http or https, got '%s'", u.Scheme),
		})
	case u.Host == "":
		errs = append(errs, ValidationError{
			Field:   "service.base_url",
			Message: "URL must include a host",
		})
	}

	if c.Service.RequestTimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "service.request_timeout_secs",
			Message: fmt.Sprintf("must be 0 or greater, got %d", c.Service.RequestTimeoutSecs),
		})
	}

	// ==========================================================================
	// UI
	// ==========================================================================

	if c.UI.PageSize < 1 || c.UI.PageSize > MaxPageSize {
		errs = append(errs, ValidationError{
			Field:   "ui.page_size",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxPageSize, c.UI.PageSize),
		})
	}

	if strings.TrimSpace(c.UI.DateFormat) == "" {
		errs = append(errs, ValidationError{
			Field:   "ui.date_format",
			Message: "must not be empty",
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	// ==========================================================================
	// Storage
	// ==========================================================================

	if c.Storage.Enabled && strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, ValidationError{
			Field:   "storage.path",
			Message: "required when storage is enabled",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - LEADDESK_BASE_URL: overrides service.base_url
//   - LEADDESK_TIMEOUT: overrides service.request_timeout_secs ("30" or "30s")
//   - LEADDESK_PAGE_SIZE: overrides ui.page_size
//   - LEADDESK_STORAGE_PATH: overrides storage.path
//   - LEADDESK_NO_STORAGE: disables storage when truthy
//   - LEADDESK_LOG_PATH: overrides log.path
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("LEADDESK_BASE_URL"); v != "" {
		c.Service.BaseURL = v
	}

	if v := os.Getenv("LEADDESK_TIMEOUT"); v != "" {
		if secs, ok := parseSeconds(v); ok {
			c.Service.RequestTimeoutSecs = secs
		} else {
			log.Printf("CONFIG_ENV_IGNORED | var=LEADDESK_TIMEOUT value=%q", v)
		}
	}

	if v := os.Getenv("LEADDESK_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UI.PageSize = n
		} else {
			log.Printf("CONFIG_ENV_IGNORED | var=LEADDESK_PAGE_SIZE value=%q", v)
		}
	}

	if v := os.Getenv("LEADDESK_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}

	if v := os.Getenv("LEADDESK_NO_STORAGE"); v != "" && truthy(v) {
		c.Storage.Enabled = false
	}

	if v := os.Getenv("LEADDESK_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
}

func parseSeconds(v string) (int, bool) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	if d, err := time.ParseDuration(v); err == nil {
		return int(d / time.Second), true
	}
	return 0, false
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// =============================================================================
// GET HELPER (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "ui.page_size").
func (c *Config) Get(key string) (interface{}, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field.Interface(), nil
		}
		if field.Kind() != reflect.Struct {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts snake_case or kebab-case to a Go field name.
// Matching is case-insensitive, so "base_url" finds BaseURL.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// Keys returns every configuration key in dot notation.
func Keys() []string {
	return []string{
		"version",
		"service.base_url",
		"service.request_timeout_secs",
		"service.user_agent",
		"ui.page_size",
		"ui.date_format",
		"ui.show_stats",
		"ui.theme",
		"storage.enabled",
		"storage.path",
		"log.path",
	}
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the configuration as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Load reads the configuration from the default directory on disk.
func Load() (*Config, error) {
	l, err := NewLoader(nil, "")
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		cfg.SetDefaults(".")
		return cfg, err
	}
	return l.Load()
}

// Global returns the global configuration, loading it on first access.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
			cfg.SetDefaults(".")
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
