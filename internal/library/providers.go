package library

import (
	"context"

	"github.com/dweagle/extras/internal/media"
	"github.com/dweagle/extras/internal/services/arr"
	"github.com/dweagle/extras/internal/services/jellyfin"
)

// ArrProvider adapts a Radarr or Sonarr client. Radarr serves movies and
// collections; Sonarr serves series.
type ArrProvider struct {
	Client *arr.Client
}

func (p ArrProvider) Name() string { return p.Client.Name() }

func (p ArrProvider) Supports(t media.Type) bool {
	switch p.Client.Kind() {
	case arr.KindRadarr:
		return t == media.TypeMovie || t == media.TypeCollection
	case arr.KindSonarr:
		return t == media.TypeSeries
	default:
		return false
	}
}

func (p ArrProvider) Items(ctx context.Context, t media.Type) ([]media.LibraryItem, error) {
	switch t {
	case media.TypeMovie:
		movies, err := p.Client.Movies(ctx)
		if err != nil {
			return nil, err
		}
		return convert(movies, arr.Movie.LibraryItem), nil
	case media.TypeCollection:
		collections, err := p.Client.Collections(ctx)
		if err != nil {
			return nil, err
		}
		return convert(collections, arr.Collection.LibraryItem), nil
	default:
		series, err := p.Client.Series(ctx)
		if err != nil {
			return nil, err
		}
		return convert(series, arr.Series.LibraryItem), nil
	}
}

// JellyfinProvider adapts a Jellyfin client; it serves every media type.
type JellyfinProvider struct {
	Client *jellyfin.Client
}

func (p JellyfinProvider) Name() string { return p.Client.Name() }

func (p JellyfinProvider) Supports(t media.Type) bool { return t.Valid() }

func (p JellyfinProvider) Items(ctx context.Context, t media.Type) ([]media.LibraryItem, error) {
	items, err := p.Client.Items(ctx, t)
	if err != nil {
		return nil, err
	}
	return convert(items, jellyfin.Item.LibraryItem), nil
}

func convert[T any](in []T, fn func(T) media.LibraryItem) []media.LibraryItem {
	out := make([]media.LibraryItem, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
