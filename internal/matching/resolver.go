package matching

import (
	"context"
	"log/slog"

	"github.com/dweagle/extras/internal/media"
)

// RemoteFinder resolves a title without a local library.
type RemoteFinder interface {
	Find(ctx context.Context, title string, year int, t media.Type) (*media.MatchResult, bool)
}

// Resolver tries the local library first and falls back to a RemoteFinder.
type Resolver struct {
	local  *LocalMatcher
	remote RemoteFinder
}

// NewResolver constructs a Resolver. remote may be nil, in which case only
// the local library is consulted.
func NewResolver(remote RemoteFinder, logger *slog.Logger) *Resolver {
	return &Resolver{local: NewLocalMatcher(logger), remote: remote}
}

// Resolve returns the local match when one exists, otherwise the remote one.
func (r *Resolver) Resolve(ctx context.Context, title string, year int, items []media.LibraryItem, t media.Type) (*media.MatchResult, bool) {
	q := media.Query{Title: title, Year: year, Type: t}
	if res, ok := r.local.Find(ctx, q, items); ok {
		return res, true
	}
	if r.remote == nil {
		return nil, false
	}
	res, ok := r.remote.Find(ctx, title, year, t)
	if !ok || res == nil {
		return nil, false
	}
	res.Source = media.SourceRemote
	return res, true
}
