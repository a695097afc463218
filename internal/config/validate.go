package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. A missing TMDB key or an
// empty instance list is not an error; the matching capability is skipped.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := validateInstances("radarr", c.Radarr); err != nil {
		return err
	}
	if err := validateInstances("sonarr", c.Sonarr); err != nil {
		return err
	}
	if err := c.validateJellyfin(); err != nil {
		return err
	}
	if err := c.validateSearchCache(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if err := validateURL("tmdb.base_url", c.TMDB.BaseURL); err != nil {
		return err
	}
	if c.TMDB.RequestTimeout <= 0 {
		return errors.New("tmdb.request_timeout must be positive (seconds)")
	}
	if c.TMDB.RequestDelayMS < 0 {
		return errors.New("tmdb.request_delay_ms must be >= 0")
	}
	return nil
}

func validateInstances(kind string, instances []Instance) error {
	if len(instances) > maxConfiguredInstances {
		return fmt.Errorf("%s: at most %d instances are supported", kind, maxConfiguredInstances)
	}
	seen := make(map[string]struct{}, len(instances))
	for idx, inst := range instances {
		key := fmt.Sprintf("%s[%d]", kind, idx)
		if inst.URL == "" {
			return fmt.Errorf("%s.url must be set when %s.api_key is configured", key, key)
		}
		if inst.APIKey == "" {
			return fmt.Errorf("%s.api_key must be set when %s.url is configured", key, key)
		}
		if err := validateURL(key+".url", inst.URL); err != nil {
			return err
		}
		if _, dup := seen[inst.Name]; dup {
			return fmt.Errorf("%s.name %q is used more than once", key, inst.Name)
		}
		seen[inst.Name] = struct{}{}
	}
	return nil
}

func (c *Config) validateJellyfin() error {
	if len(c.Jellyfin) > maxConfiguredInstances {
		return fmt.Errorf("jellyfin: at most %d servers are supported", maxConfiguredInstances)
	}
	for idx, jf := range c.Jellyfin {
		key := fmt.Sprintf("jellyfin[%d]", idx)
		if jf.URL == "" {
			return fmt.Errorf("%s.url must be set when %s.api_key is configured", key, key)
		}
		if jf.APIKey == "" {
			return fmt.Errorf("%s.api_key must be set when %s.url is configured", key, key)
		}
		if err := validateURL(key+".url", jf.URL); err != nil {
			return err
		}
		if jf.PageSize <= 0 {
			return fmt.Errorf("%s.page_size must be positive", key)
		}
	}
	return nil
}

func (c *Config) validateSearchCache() error {
	if c.SearchCache.TTLHours < 0 {
		return errors.New("search_cache.ttl_hours must be >= 0")
	}
	if c.SearchCache.Enabled && strings.TrimSpace(c.SearchCache.Path) == "" {
		return errors.New("search_cache.path must be set when search_cache.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB <= 0 {
		return errors.New("logging.max_size_mb must be positive")
	}
	return nil
}

func validateURL(key, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http or https URL, got %q", key, raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", key, raw)
	}
	return nil
}
