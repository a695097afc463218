package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultConfigPath      = "~/.config/postermatch/config.toml"
	projectConfigFile      = "postermatch.toml"
	defaultInputFile       = "unmatched_dict.json"
	defaultOutputFile      = "unmatched_output.json"
	defaultLogDirName      = "logs"
	defaultTMDBLanguage    = "en-US"
	defaultTMDBBaseURL     = "https://api.themoviedb.org/3"
	defaultRequestTimeout  = 10 * time.Second
	defaultRequestSeconds  = 10
	defaultRequestDelayMS  = 250
	defaultJellyfinPage    = 200
	defaultCacheFileName   = "search_cache.db"
	defaultCacheTTLHours   = 168
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultLogMaxSizeMB    = 10
	defaultLogMaxBackups   = 3
	defaultLogMaxAgeDays   = 28
	maxConfiguredInstances = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputFile:  defaultInputFile,
			OutputFile: defaultOutputFile,
			StateDir:   defaultStateDir(),
		},
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			Language:       defaultTMDBLanguage,
			RequestTimeout: defaultRequestSeconds,
			RequestDelayMS: defaultRequestDelayMS,
		},
		SearchCache: SearchCache{
			TTLHours: defaultCacheTTLHours,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "postermatch")
	}
	return "~/.local/state/postermatch"
}
