package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Nomadcxx/jellyrename/internal/logging"
	"github.com/Nomadcxx/jellyrename/internal/paths"
	"github.com/spf13/viper"
)

// TokenEnvVar is the environment / .env key holding the TMDB read access token.
const TokenEnvVar = "TMDB_BEARER"

var (
	ErrMissingToken   = errors.New("TMDB bearer token not configured")
	ErrMissingRoot    = errors.New("no movie directory configured")
	ErrNoExtensions   = errors.New("no video extensions configured")
	ErrInvalidTimeout = errors.New("timeout must be positive")
)

// ValidationError reports which setting made a configuration unusable.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration (%s): %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type Config struct {
	TMDB    TMDBConfig     `mapstructure:"tmdb"`
	Library LibraryConfig  `mapstructure:"library"`
	Options OptionsConfig  `mapstructure:"options"`
	Watch   WatchConfig    `mapstructure:"watch"`
	Logging logging.Config `mapstructure:"logging"`
}

// TMDBConfig contains metadata search settings
type TMDBConfig struct {
	Bearer         string `mapstructure:"bearer"`
	BaseURL        string `mapstructure:"base_url"`
	Language       string `mapstructure:"language"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout returns the HTTP timeout for search requests.
func (t TMDBConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// LibraryConfig describes what gets scanned
type LibraryConfig struct {
	Root       string   `mapstructure:"root"`
	Extensions []string `mapstructure:"extensions"`
}

// OptionsConfig contains general options
type OptionsConfig struct {
	DryRun bool `mapstructure:"dry_run"`
	TUI    bool `mapstructure:"tui"`
}

// WatchConfig tunes watch mode
type WatchConfig struct {
	SettleSeconds int `mapstructure:"settle_seconds"`
}

// Settle returns how long a file must be quiet before it is processed.
func (w WatchConfig) Settle() time.Duration {
	return time.Duration(w.SettleSeconds) * time.Second
}

// Sources names the files Load reads. Empty fields use the defaults.
type Sources struct {
	ConfigFile string // default: ~/.config/jellyrename/config.toml
	DotEnvFile string // default: .env in the working directory
}

// DefaultExtensions is the video allow-list used when none is configured.
func DefaultExtensions() []string {
	return []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv"}
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			Bearer:         "",
			BaseURL:        "https://api.themoviedb.org/3",
			Language:       "en-US",
			TimeoutSeconds: 15,
		},
		Library: LibraryConfig{
			Root:       "",
			Extensions: DefaultExtensions(),
		},
		Options: OptionsConfig{
			DryRun: false,
			TUI:    false,
		},
		Watch: WatchConfig{
			SettleSeconds: 5,
		},
		Logging: logging.DefaultConfig(),
	}
}

// LoadFrom loads configuration with precedence, lowest first: defaults,
// config file, .env file, environment. Missing files are not an error.
func LoadFrom(src Sources) (*Config, error) {
	v := viper.New()

	configPath := src.ConfigFile
	if configPath == "" {
		p, err := paths.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get config path: %w", err)
		}
		configPath = p
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	if err := v.BindEnv(append([]string{"tmdb.bearer"}, tokenEnvVars...)...); err != nil {
		return nil, fmt.Errorf("binding token env: %w", err)
	}
	if err := v.BindEnv("library.root", "JELLYRENAME_ROOT"); err != nil {
		return nil, fmt.Errorf("binding root env: %w", err)
	}

	// .env sits between the config file and the real environment, the same
	// way dotenv loaders refuse to override variables that are already set.
	if !tokenInEnv() {
		token, err := readDotEnvToken(src.DotEnvFile)
		if err != nil {
			return nil, err
		}
		if token != "" {
			v.Set("tmdb.bearer", token)
		}
	}

	// mapstructure decodes lists into the existing slice element by element,
	// so the default list goes through viper rather than the struct.
	v.SetDefault("library.extensions", DefaultExtensions())
	cfg := DefaultConfig()
	cfg.Library.Extensions = nil
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	cfg.TMDB.Bearer = strings.TrimSpace(cfg.TMDB.Bearer)
	cfg.Library.Extensions = NormalizeExtensions(cfg.Library.Extensions)

	return cfg, nil
}

// tokenEnvVars lists the environment variables that carry the token.
var tokenEnvVars = []string{TokenEnvVar, "JELLYRENAME_TMDB_BEARER"}

func tokenInEnv() bool {
	for _, name := range tokenEnvVars {
		if _, set := os.LookupEnv(name); set {
			return true
		}
	}
	return false
}

func readDotEnvToken(path string) (string, error) {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}

	dv := viper.New()
	dv.SetConfigFile(path)
	dv.SetConfigType("env")
	if err := dv.ReadInConfig(); err != nil {
		return "", fmt.Errorf("unable to read %s: %w", path, err)
	}
	return strings.TrimSpace(dv.GetString(TokenEnvVar)), nil
}

// NormalizeExtensions lowercases extensions and ensures a leading dot.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	seen := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}

// ValidateToken checks only the credential. It runs before anything else so a
// missing token stops the process before any file is touched.
func (c *Config) ValidateToken() error {
	if c.TMDB.Bearer == "" {
		return &ValidationError{Field: "tmdb.bearer", Err: ErrMissingToken}
	}
	return nil
}

// Validate checks everything a rename run needs.
func (c *Config) Validate() error {
	if err := c.ValidateToken(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Library.Root) == "" {
		return &ValidationError{Field: "library.root", Err: ErrMissingRoot}
	}
	if len(c.Library.Extensions) == 0 {
		return &ValidationError{Field: "library.extensions", Err: ErrNoExtensions}
	}
	if c.TMDB.TimeoutSeconds <= 0 {
		return &ValidationError{Field: "tmdb.timeout_seconds", Err: ErrInvalidTimeout}
	}
	return nil
}

// Remediation returns user-facing instructions for a validation failure.
func Remediation(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return fmt.Sprintf("ERROR: %s not found in .env file or environment.\n"+
			"Add this to your .env file:\n%s=YOUR_TOKEN_HERE\n", TokenEnvVar, TokenEnvVar)
	case errors.Is(err, ErrMissingRoot):
		return "ERROR: no movie directory given.\n" +
			"Pass it as an argument (jellyrename /path/to/movies) or set [library] root in the config file.\n"
	default:
		return fmt.Sprintf("ERROR: %v\n", err)
	}
}

// SaveTo writes the configuration as TOML to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}
	// The file may carry the token.
	return os.WriteFile(path, []byte(c.ToTOML()), 0600)
}

// ConfigPath returns the default config file location.
func ConfigPath() (string, error) {
	return paths.ConfigPath()
}

func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# jellyrename configuration
# Generated by: jellyrename config init

# ============================================================================
# TMDB
# Read access token from https://www.themoviedb.org/settings/api
# May also be supplied as TMDB_BEARER in the environment or a .env file.
# ============================================================================
[tmdb]
bearer = %q
base_url = %q
language = %q
timeout_seconds = %d

# ============================================================================
# LIBRARY
# Directory scanned recursively for video files to rename in place
# ============================================================================
[library]
root = %q
extensions = %s

# ============================================================================
# GENERAL OPTIONS
# ============================================================================
[options]
# Preview mode - confirm choices but never rename
dry_run = %v

# Full-screen candidate picker instead of numbered prompts
tui = %v

# ============================================================================
# WATCH MODE
# ============================================================================
[watch]
# Seconds a new file must stay unchanged before it is processed
settle_seconds = %d

# ============================================================================
# LOGGING
# ============================================================================
[logging]
level = %q
file = %q
max_size_mb = %d
max_backups = %d
`,
		c.TMDB.Bearer,
		c.TMDB.BaseURL,
		c.TMDB.Language,
		c.TMDB.TimeoutSeconds,
		c.Library.Root,
		formatStringSlice(c.Library.Extensions),
		c.Options.DryRun,
		c.Options.TUI,
		c.Watch.SettleSeconds,
		c.Logging.Level,
		c.Logging.File,
		c.Logging.MaxSizeMB,
		c.Logging.MaxBackups,
	)
}

func formatStringSlice(s []string) string {
	if len(s) == 0 {
		return "[]"
	}
	quoted := make([]string, len(s))
	for i, v := range s {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
