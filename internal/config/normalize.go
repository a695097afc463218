package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.Radarr = normalizeInstances(c.Radarr, "radarr", "RADARR")
	c.Sonarr = normalizeInstances(c.Sonarr, "sonarr", "SONARR")
	c.normalizeJellyfin()
	if err := c.normalizeSearchCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputFile) == "" {
		c.Paths.InputFile = defaultInputFile
	}
	if c.Paths.InputFile, err = expandPath(c.Paths.InputFile); err != nil {
		return fmt.Errorf("paths.input_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputFile) == "" {
		c.Paths.OutputFile = defaultOutputFile
	}
	if c.Paths.OutputFile, err = expandPath(c.Paths.OutputFile); err != nil {
		return fmt.Errorf("paths.output_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.StateDir, defaultLogDirName)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.RequestTimeout <= 0 {
		c.TMDB.RequestTimeout = defaultRequestSeconds
	}
}

// normalizeInstances trims every entry, names unnamed ones after their
// position, and falls back to <PREFIX>_URL / <PREFIX>_API_KEY when the file
// configures none.
func normalizeInstances(instances []Instance, kind, envPrefix string) []Instance {
	if len(instances) == 0 {
		url, _ := os.LookupEnv(envPrefix + "_URL")
		key, _ := os.LookupEnv(envPrefix + "_API_KEY")
		if strings.TrimSpace(url) != "" || strings.TrimSpace(key) != "" {
			instances = []Instance{{URL: url, APIKey: key}}
		}
	}
	out := make([]Instance, 0, len(instances))
	for idx, inst := range instances {
		inst.URL = strings.TrimRight(strings.TrimSpace(inst.URL), "/")
		inst.APIKey = strings.TrimSpace(inst.APIKey)
		inst.Name = strings.TrimSpace(inst.Name)
		if inst.URL == "" && inst.APIKey == "" {
			continue
		}
		if inst.Name == "" {
			inst.Name = fmt.Sprintf("%s%d", kind, idx+1)
		}
		if inst.RequestTimeout <= 0 {
			inst.RequestTimeout = defaultRequestSeconds
		}
		out = append(out, inst)
	}
	return out
}

func (c *Config) normalizeJellyfin() {
	if len(c.Jellyfin) == 0 {
		url, _ := os.LookupEnv("JELLYFIN_URL")
		key, _ := os.LookupEnv("JELLYFIN_API_KEY")
		if strings.TrimSpace(url) != "" || strings.TrimSpace(key) != "" {
			c.Jellyfin = []Jellyfin{{URL: url, APIKey: key}}
		}
	}
	out := make([]Jellyfin, 0, len(c.Jellyfin))
	for idx, jf := range c.Jellyfin {
		jf.URL = strings.TrimRight(strings.TrimSpace(jf.URL), "/")
		jf.APIKey = strings.TrimSpace(jf.APIKey)
		jf.UserID = strings.TrimSpace(jf.UserID)
		jf.Name = strings.TrimSpace(jf.Name)
		if jf.URL == "" && jf.APIKey == "" {
			continue
		}
		if jf.Name == "" {
			jf.Name = fmt.Sprintf("jellyfin%d", idx+1)
		}
		if jf.PageSize <= 0 {
			jf.PageSize = defaultJellyfinPage
		}
		if jf.RequestTimeout <= 0 {
			jf.RequestTimeout = defaultRequestSeconds
		}
		out = append(out, jf)
	}
	c.Jellyfin = out
}

func (c *Config) normalizeSearchCache() error {
	var err error
	if strings.TrimSpace(c.SearchCache.Path) == "" {
		c.SearchCache.Path = filepath.Join(c.Paths.StateDir, defaultCacheFileName)
	}
	if c.SearchCache.Path, err = expandPath(c.SearchCache.Path); err != nil {
		return fmt.Errorf("search_cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.MaxAgeDays < 0 {
		c.Logging.MaxAgeDays = 0
	}
}
