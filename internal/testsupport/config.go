package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/dweagle/extras/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Remote matching is disabled and no library servers are configured unless
// options add them. TMDB pacing is turned off so tests run at full speed.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputFile = filepath.Join(base, "unmatched_dict.json")
	cfgVal.Paths.OutputFile = filepath.Join(base, "out", "unmatched_output.json")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "state", "logs")
	cfgVal.SearchCache.Path = filepath.Join(base, "state", "search_cache.db")
	cfgVal.TMDB.RequestDelayMS = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithTMDB points the TMDB client at baseURL with the given key.
func WithTMDB(baseURL, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.BaseURL = baseURL
		b.cfg.TMDB.APIKey = key
	}
}

// WithRadarr appends a Radarr instance.
func WithRadarr(name, url, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Radarr = append(b.cfg.Radarr, config.Instance{Name: name, URL: url, APIKey: key, RequestTimeout: 5})
	}
}

// WithSonarr appends a Sonarr instance.
func WithSonarr(name, url, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sonarr = append(b.cfg.Sonarr, config.Instance{Name: name, URL: url, APIKey: key, RequestTimeout: 5})
	}
}

// WithJellyfin appends a Jellyfin server.
func WithJellyfin(name, url, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Jellyfin = append(b.cfg.Jellyfin, config.Jellyfin{Name: name, URL: url, APIKey: key, PageSize: 50, RequestTimeout: 5})
	}
}

// WithSearchCache enables the TMDB response cache inside the temp state dir.
func WithSearchCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SearchCache.Enabled = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputFile)
}
