package library

import (
	"context"
	"log/slog"
	"time"

	"github.com/dweagle/extras/internal/config"
	"github.com/dweagle/extras/internal/logging"
	"github.com/dweagle/extras/internal/media"
	"github.com/dweagle/extras/internal/services"
	"github.com/dweagle/extras/internal/services/arr"
	"github.com/dweagle/extras/internal/services/jellyfin"
)

// Provider is one library server.
type Provider interface {
	Name() string
	Supports(t media.Type) bool
	Items(ctx context.Context, t media.Type) ([]media.LibraryItem, error)
}

// Source fans a fetch out to every provider.
type Source struct {
	providers []Provider
	logger    *slog.Logger
}

// NewSource constructs a Source over providers in the order given.
func NewSource(providers []Provider, logger *slog.Logger) *Source {
	return &Source{providers: providers, logger: logging.NewComponentLogger(logger, "library")}
}

// FromConfig builds providers for every configured instance. Instances are
// validated by config.Load, so construction failures here are configuration
// errors.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Source, error) {
	if cfg == nil {
		return NewSource(nil, logger), nil
	}
	providers := make([]Provider, 0, len(cfg.Radarr)+len(cfg.Sonarr)+len(cfg.Jellyfin))
	for _, inst := range cfg.Radarr {
		client, err := arr.New(arr.KindRadarr, inst.Name, inst.URL, inst.APIKey, inst.Timeout())
		if err != nil {
			return nil, err
		}
		providers = append(providers, ArrProvider{Client: client})
	}
	for _, inst := range cfg.Sonarr {
		client, err := arr.New(arr.KindSonarr, inst.Name, inst.URL, inst.APIKey, inst.Timeout())
		if err != nil {
			return nil, err
		}
		providers = append(providers, ArrProvider{Client: client})
	}
	for _, jf := range cfg.Jellyfin {
		client, err := jellyfin.New(jellyfin.Options{
			Name:     jf.Name,
			BaseURL:  jf.URL,
			APIKey:   jf.APIKey,
			UserID:   jf.UserID,
			PageSize: jf.PageSize,
			Timeout:  jf.Timeout(),
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, JellyfinProvider{Client: client})
	}
	return NewSource(providers, logger), nil
}

// Providers returns the number of configured providers.
func (s *Source) Providers() int {
	if s == nil {
		return 0
	}
	return len(s.providers)
}

// Fetch returns the ordered concatenation of every responding provider's
// items for t. It never fails; an empty slice means nothing was available.
func (s *Source) Fetch(ctx context.Context, t media.Type) []media.LibraryItem {
	if s == nil {
		return nil
	}
	var all []media.LibraryItem
	for _, p := range s.providers {
		if !p.Supports(t) {
			continue
		}
		pctx := services.WithInstance(ctx, p.Name())
		logger := logging.WithContext(pctx, s.logger)
		start := time.Now()
		items, err := p.Items(pctx, t)
		if err != nil {
			logging.WarnWithContext(logger, "library fetch failed", "library_fetch_failed",
				logging.String(logging.FieldMediaType, string(t)),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, services.Hint(err)),
				logging.String(logging.FieldImpact, "instance skipped; titles it holds will be searched remotely"),
			)
			continue
		}
		kept := withIDs(items)
		logger.Info("library fetched",
			logging.String(logging.FieldMediaType, string(t)),
			logging.Int("items", len(kept)),
			logging.Int("skipped_without_id", len(items)-len(kept)),
			logging.Duration("elapsed", time.Since(start)),
		)
		all = append(all, kept...)
	}
	return all
}

// withIDs drops items that carry no TMDB id. Such an entry cannot supply an
// identifier, so the title has to fall through to the remote search.
func withIDs(items []media.LibraryItem) []media.LibraryItem {
	kept := items[:0:0]
	for _, item := range items {
		if item.ExternalID > 0 {
			kept = append(kept, item)
		}
	}
	return kept
}
