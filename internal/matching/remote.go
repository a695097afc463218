package matching

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/dweagle/extras/internal/logging"
	"github.com/dweagle/extras/internal/media"
	"github.com/dweagle/extras/internal/services/tmdb"
	"github.com/dweagle/extras/internal/similarity"
	"github.com/dweagle/extras/internal/titlenorm"
)

const (
	collectionSequenceThreshold = 0.85
	strongSequenceThreshold     = 0.9
	strongJaccardThreshold      = 0.8
	yearSequenceThreshold       = 0.8
	yearConfirmedScore          = 0.2
	translationComposite        = 1.0
)

// Candidate is one scored remote search result.
type Candidate struct {
	Item   media.LibraryItem
	Date   string
	Scores similarity.Scores
}

// Accepts reports whether scores pass the acceptance predicate for a movie or
// series. Collections use the sequence threshold plus the translation check,
// which needs the network, so they are handled inside RemoteMatcher.
func Accepts(t media.Type, s similarity.Scores) bool {
	if t.IsCollection() {
		return s.Sequence > collectionSequenceThreshold
	}
	if s.Sequence > strongSequenceThreshold && s.Jaccard > strongJaccardThreshold {
		return true
	}
	return s.Sequence > yearSequenceThreshold && s.Year >= yearConfirmedScore
}

// RemoteMatcher resolves titles through the TMDB search API.
type RemoteMatcher struct {
	searcher tmdb.Searcher
	logger   *slog.Logger
}

// NewRemoteMatcher constructs a RemoteMatcher. A nil searcher is valid and
// makes every lookup return no match.
func NewRemoteMatcher(searcher tmdb.Searcher, logger *slog.Logger) *RemoteMatcher {
	return &RemoteMatcher{searcher: searcher, logger: logging.NewComponentLogger(logger, "remote_match")}
}

// Find searches TMDB for title and returns the best accepted candidate.
func (m *RemoteMatcher) Find(ctx context.Context, title string, year int, t media.Type) (*media.MatchResult, bool) {
	if m == nil || m.searcher == nil || !t.Valid() {
		return nil, false
	}
	logger := logging.WithContext(ctx, m.logger)
	isCollection := t.IsCollection()
	target := titlenorm.Normalize(title, isCollection)
	if target == "" {
		return nil, false
	}

	resp, err := m.search(ctx, title, year, t)
	if err != nil {
		logging.WarnWithContext(logger, "tmdb search failed", "tmdb_search_failed",
			logging.Title(title),
			logging.String(logging.FieldMediaType, string(t)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check tmdb.api_key and network connectivity"),
			logging.String(logging.FieldImpact, "title left unmatched"),
		)
		return nil, false
	}
	if resp == nil || len(resp.Results) == 0 {
		logger.Debug("tmdb search returned no results",
			logging.Title(title),
			logging.Int("year", year))
		return nil, false
	}

	best, ok := m.selectBest(ctx, logger, target, year, t, resp.Results)
	if !ok {
		m.logNearMiss(logger, title, target, resp.Results, isCollection)
		return nil, false
	}

	result := &media.MatchResult{
		Title:       best.Item.Title,
		Year:        best.Item.Year,
		ReleaseDate: best.Date,
		PrimaryID:   best.Item.ExternalID,
		Source:      media.SourceRemote,
	}
	if t == media.TypeSeries {
		result.SecondaryID = m.lookupTVDB(ctx, logger, best.Item.ExternalID)
	}

	attrs := append(logging.DecisionAttrs("remote_match", "accepted", "acceptance predicate satisfied"),
		logging.Title(title),
		logging.String("matched_title", result.Title),
		logging.TMDBID(result.PrimaryID),
		logging.Int64("tvdb_id", result.SecondaryID),
		logging.Float64(logging.FieldComposite, best.Scores.Composite),
	)
	logger.Info("remote match accepted", logging.Args(attrs...)...)
	return result, true
}

func (m *RemoteMatcher) search(ctx context.Context, title string, year int, t media.Type) (*tmdb.Response, error) {
	opts := tmdb.SearchOptions{Year: year}
	switch t {
	case media.TypeMovie:
		return m.searcher.SearchMovie(ctx, title, opts)
	case media.TypeSeries:
		return m.searcher.SearchTV(ctx, title, opts)
	default:
		return m.searcher.SearchCollection(ctx, title)
	}
}

// selectBest keeps the accepted candidate with the strictly highest composite
// score; the first one seen wins ties.
func (m *RemoteMatcher) selectBest(ctx context.Context, logger *slog.Logger, target string, year int, t media.Type, results []tmdb.Result) (Candidate, bool) {
	isCollection := t.IsCollection()
	var best Candidate
	bestScore := 0.0
	found := false

	for idx, res := range results {
		name := res.DisplayTitle()
		date := res.Date()
		cand := Candidate{
			Item: media.LibraryItem{
				Title:      name,
				Year:       media.YearFromDate(date),
				ExternalID: res.ID,
			},
			Date: date,
		}
		cand.Scores = similarity.Score(target, titlenorm.Normalize(name, isCollection), isCollection, year, cand.Item.Year)

		accepted := Accepts(t, cand.Scores)
		viaTranslation := false
		if !accepted && isCollection {
			if m.translationMatches(ctx, logger, res.ID, target) {
				accepted = true
				viaTranslation = true
				cand.Scores.Composite = translationComposite
			}
		}

		scored := append([]logging.Attr{
			logging.Int("result_index", idx),
			logging.TMDBID(res.ID),
			logging.String("candidate_title", name),
			logging.Int("candidate_year", cand.Item.Year),
			logging.Bool("accepted", accepted),
			logging.Bool("translation_match", viaTranslation),
		}, logging.ScoreAttrs(cand.Scores.Sequence, cand.Scores.Jaccard, cand.Scores.Year, cand.Scores.Composite)...)
		logger.Debug("scored tmdb candidate", logging.Args(scored...)...)

		if accepted && cand.Scores.Composite > bestScore {
			best = cand
			bestScore = cand.Scores.Composite
			found = true
		}
	}
	return best, found
}

// translationMatches compares the collection's canonical and translated names
// against the normalized query. Lookup failures count as no hit.
func (m *RemoteMatcher) translationMatches(ctx context.Context, logger *slog.Logger, id int64, target string) bool {
	if id <= 0 {
		return false
	}
	coll, err := m.searcher.GetCollectionTranslations(ctx, id)
	if err != nil {
		logger.Debug("collection translation lookup failed",
			logging.Int64("tmdb_id", id),
			logging.Error(err))
		return false
	}
	if coll == nil {
		return false
	}
	for _, name := range coll.Names() {
		if titlenorm.Normalize(name, true) == target {
			return true
		}
	}
	return false
}

func (m *RemoteMatcher) lookupTVDB(ctx context.Context, logger *slog.Logger, showID int64) int64 {
	ids, err := m.searcher.GetTVExternalIDs(ctx, showID)
	if err != nil {
		logger.Debug("tv external id lookup failed",
			logging.Int64("tmdb_id", showID),
			logging.Error(err))
		return 0
	}
	if ids == nil || ids.TVDBID < 0 {
		return 0
	}
	return ids.TVDBID
}

// logNearMiss records the rejected result closest to the query so thresholds
// can be reviewed from debug logs.
func (m *RemoteMatcher) logNearMiss(logger *slog.Logger, title, target string, results []tmdb.Result, isCollection bool) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	var closest string
	var closestID int64
	var closestScore float32
	for _, res := range results {
		name := titlenorm.Normalize(res.DisplayTitle(), isCollection)
		if strings.TrimSpace(name) == "" {
			continue
		}
		score := edlib.JaroWinklerSimilarity(target, name)
		if score > closestScore {
			closest = res.DisplayTitle()
			closestID = res.ID
			closestScore = score
		}
	}
	if closest == "" {
		return
	}
	attrs := append(logging.DecisionAttrs("remote_match", "rejected", "no candidate passed acceptance"),
		logging.Title(title),
		logging.String("nearest_title", closest),
		logging.Int64("nearest_tmdb_id", closestID),
		logging.Float64("nearest_jaro_winkler", float64(closestScore)),
	)
	logger.Debug("no tmdb candidate accepted", logging.Args(attrs...)...)
}
