package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input, output and state locations.
type Paths struct {
	InputFile  string `toml:"input_file"`
	OutputFile string `toml:"output_file"`
	StateDir   string `toml:"state_dir"`
	LogDir     string `toml:"log_dir"`
}

// TMDB contains configuration for The Movie Database API. An empty APIKey
// disables remote matching.
type TMDB struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Language       string `toml:"language"`
	RequestTimeout int    `toml:"request_timeout"`
	RequestDelayMS int    `toml:"request_delay_ms"`
}

// Instance describes one Radarr or Sonarr server.
type Instance struct {
	Name           string `toml:"name"`
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Jellyfin describes one Jellyfin server used as an additional library source.
type Jellyfin struct {
	Name           string `toml:"name"`
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	UserID         string `toml:"user_id"`
	PageSize       int    `toml:"page_size"`
	RequestTimeout int    `toml:"request_timeout"`
}

// SearchCache contains configuration for the TMDB response cache.
type SearchCache struct {
	Enabled  bool   `toml:"enabled"` // Default: false
	Path     string `toml:"path"`    // Default: <state_dir>/search_cache.db
	TTLHours int    `toml:"ttl_hours"`
}

// Logging contains configuration for log output and the rotating log file.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	File       bool   `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Config encapsulates all configuration values for postermatch.
//
// Configuration sections by subsystem:
//   - Paths: input/output documents, state and log directories
//   - TMDB: remote title search
//   - Radarr: movie and collection libraries (repeatable)
//   - Sonarr: series libraries (repeatable)
//   - Jellyfin: additional paginated libraries (repeatable)
//   - SearchCache: optional SQLite cache of TMDB responses
//   - Logging: log format, level, and rotation
type Config struct {
	Paths       Paths       `toml:"paths"`
	TMDB        TMDB        `toml:"tmdb"`
	Radarr      []Instance  `toml:"radarr"`
	Sonarr      []Instance  `toml:"sonarr"`
	Jellyfin    []Jellyfin  `toml:"jellyfin"`
	SearchCache SearchCache `toml:"search_cache"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigFile)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory and, when file logging is
// enabled, the log directory.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir}
	if c.Logging.File {
		dirs = append(dirs, c.Paths.LogDir)
	}
	if c.SearchCache.Enabled {
		dirs = append(dirs, filepath.Dir(c.SearchCache.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RemoteEnabled reports whether a TMDB credential is configured.
func (c *Config) RemoteEnabled() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != ""
}

// TMDBTimeout returns the per-request TMDB timeout.
func (c *Config) TMDBTimeout() time.Duration {
	return seconds(c.TMDB.RequestTimeout, defaultRequestTimeout)
}

// TMDBRequestDelay returns the minimum spacing between TMDB requests.
func (c *Config) TMDBRequestDelay() time.Duration {
	if c.TMDB.RequestDelayMS <= 0 {
		return 0
	}
	return time.Duration(c.TMDB.RequestDelayMS) * time.Millisecond
}

// LockPath returns the advisory lock guarding the output document.
func (c *Config) LockPath() string {
	return c.Paths.OutputFile + ".lock"
}

// LogFilePath returns the rotating log file location.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "postermatch.log")
}

// SearchCacheTTL returns how long cached TMDB responses stay valid. Zero
// means entries never expire.
func (c *Config) SearchCacheTTL() time.Duration {
	if c.SearchCache.TTLHours <= 0 {
		return 0
	}
	return time.Duration(c.SearchCache.TTLHours) * time.Hour
}

// Timeout returns the per-request timeout for the instance.
func (i Instance) Timeout() time.Duration {
	return seconds(i.RequestTimeout, defaultRequestTimeout)
}

// Timeout returns the per-request timeout for the Jellyfin server.
func (j Jellyfin) Timeout() time.Duration {
	return seconds(j.RequestTimeout, defaultRequestTimeout)
}

// Redacted returns a copy with credentials masked, for display.
func (c *Config) Redacted() Config {
	out := *c
	out.TMDB.APIKey = mask(out.TMDB.APIKey)
	out.Radarr = redactInstances(c.Radarr)
	out.Sonarr = redactInstances(c.Sonarr)
	out.Jellyfin = make([]Jellyfin, len(c.Jellyfin))
	for i, j := range c.Jellyfin {
		j.APIKey = mask(j.APIKey)
		out.Jellyfin[i] = j
	}
	return out
}

func redactInstances(in []Instance) []Instance {
	out := make([]Instance, len(in))
	for i, inst := range in {
		inst.APIKey = mask(inst.APIKey)
		out[i] = inst
	}
	return out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

func seconds(value int, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return time.Duration(value) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// Marshal renders the configuration as TOML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// CreateSample writes the sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
