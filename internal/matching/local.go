package matching

import (
	"context"
	"log/slog"

	"github.com/dweagle/extras/internal/logging"
	"github.com/dweagle/extras/internal/media"
	"github.com/dweagle/extras/internal/titlenorm"
)

// FindLocal scans items in order and returns the first whose normalized title
// equals the query's and whose year is compatible. Collections and queries
// without a year ignore the year entirely; otherwise the years may differ by
// at most one.
func FindLocal(q media.Query, items []media.LibraryItem) (media.LibraryItem, bool) {
	isCollection := q.Type.IsCollection()
	target := titlenorm.Normalize(q.Title, isCollection)
	if target == "" {
		return media.LibraryItem{}, false
	}
	for _, item := range items {
		if titlenorm.Normalize(item.Title, isCollection) != target {
			continue
		}
		if yearCompatible(isCollection, q.Year, item.Year) {
			return item, true
		}
	}
	return media.LibraryItem{}, false
}

func yearCompatible(isCollection bool, target, candidate int) bool {
	if isCollection || target == 0 || target == candidate {
		return true
	}
	delta := target - candidate
	return delta >= -1 && delta <= 1
}

// LocalMatcher wraps FindLocal with decision logging.
type LocalMatcher struct {
	logger *slog.Logger
}

// NewLocalMatcher constructs a LocalMatcher.
func NewLocalMatcher(logger *slog.Logger) *LocalMatcher {
	return &LocalMatcher{logger: logging.NewComponentLogger(logger, "local_match")}
}

// Find resolves q against items, returning a result tagged with the local
// source on a hit.
func (m *LocalMatcher) Find(ctx context.Context, q media.Query, items []media.LibraryItem) (*media.MatchResult, bool) {
	item, ok := FindLocal(q, items)
	logger := logging.WithContext(ctx, m.logger)
	if !ok {
		logger.Debug("no local library match",
			logging.Title(q.Title),
			logging.Int("year", q.Year),
			logging.Int("library_size", len(items)))
		return nil, false
	}
	logger.Debug("local library match",
		logging.Title(q.Title),
		logging.String("library_title", item.Title),
		logging.TMDBID(item.ExternalID),
		logging.Int("library_year", item.Year))
	return media.FromLibraryItem(item), true
}
