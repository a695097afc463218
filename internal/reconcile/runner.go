package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dweagle/extras/internal/logging"
	"github.com/dweagle/extras/internal/media"
	"github.com/dweagle/extras/internal/services"
)

// Library supplies the reference items for a media type.
type Library interface {
	Fetch(ctx context.Context, t media.Type) []media.LibraryItem
}

// Resolver decides the identity of one title.
type Resolver interface {
	Resolve(ctx context.Context, title string, year int, items []media.LibraryItem, t media.Type) (*media.MatchResult, bool)
}

// Progress describes one resolved item, for interactive output.
type Progress struct {
	Type   media.Type
	Index  int
	Total  int
	Title  string
	Result *media.MatchResult
}

// Options configures a Runner.
type Options struct {
	InputPath  string
	OutputPath string
	LockPath   string
	// DryRun resolves every item without writing the output document.
	DryRun bool
	// OnItem is called after every item is resolved.
	OnItem func(Progress)
}

// Runner executes reconciliation runs.
type Runner struct {
	library  Library
	resolver Resolver
	opts     Options
	logger   *slog.Logger
}

// sectionOrder is the order sections are resolved in.
var sectionOrder = []media.Type{media.TypeMovie, media.TypeCollection, media.TypeSeries}

// NewRunner constructs a Runner.
func NewRunner(library Library, resolver Resolver, opts Options, logger *slog.Logger) (*Runner, error) {
	if resolver == nil {
		return nil, errors.New("reconcile runner requires a resolver")
	}
	if opts.InputPath == "" || opts.OutputPath == "" {
		return nil, errors.New("reconcile runner requires input and output paths")
	}
	if opts.LockPath == "" {
		opts.LockPath = opts.OutputPath + ".lock"
	}
	return &Runner{
		library:  library,
		resolver: resolver,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "reconcile"),
	}, nil
}

// Run resolves every item of the input document and writes the output.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	runID, ok := services.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = services.WithRunID(ctx, runID)
	}
	logger := logging.WithContext(ctx, r.logger)
	started := time.Now()

	lock, err := acquireOutputLock(r.opts.LockPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.release(); err != nil {
			logging.WarnWithContext(logger, "failed to release output lock", "lock_release_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the lock file if no run is active"),
				logging.String(logging.FieldImpact, "next run may report the output as locked"))
		}
	}()

	doc, err := LoadDocument(r.opts.InputPath)
	if err != nil {
		return nil, err
	}
	logger.Info("reconciliation started",
		logging.String("input", r.opts.InputPath),
		logging.String("output", r.opts.OutputPath),
		logging.Int("movies", len(doc.Movies)),
		logging.Int("series", len(doc.Series)),
		logging.Int("collections", len(doc.Collections)),
		logging.Bool("dry_run", r.opts.DryRun))

	summary := &Summary{RunID: runID, Started: started, OutputPath: r.opts.OutputPath, DryRun: r.opts.DryRun}
	sampler := logging.NewProgressSampler(10)
	for _, t := range sectionOrder {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reconciliation interrupted: %w", err)
		}
		summary.Types = append(summary.Types, r.resolveSection(ctx, logger, sampler, t, doc.Section(t)))
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("reconciliation interrupted: %w", err)
	}

	if !r.opts.DryRun {
		if err := SaveDocument(r.opts.OutputPath, doc); err != nil {
			logging.ErrorWithContext(logger, "failed to write output document", "output_write_failed",
				logging.String("output", r.opts.OutputPath),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that paths.output_file is writable"))
			return nil, err
		}
	}
	summary.Duration = time.Since(started)

	total := summary.Total()
	logger.Info("reconciliation finished",
		logging.Int("items", total.Total),
		logging.Int("matched_local", total.Local),
		logging.Int("matched_remote", total.Remote),
		logging.Int("unmatched", total.Unmatched),
		logging.Duration("elapsed", summary.Duration))
	return summary, nil
}

func (r *Runner) resolveSection(ctx context.Context, logger *slog.Logger, sampler *logging.ProgressSampler, t media.Type, items []*Item) TypeSummary {
	counts := TypeSummary{Type: t, Total: len(items)}
	if len(items) == 0 {
		return counts
	}
	ctx = services.WithMediaType(ctx, string(t))

	var library []media.LibraryItem
	if r.library != nil {
		library = r.library.Fetch(ctx, t)
	}
	logger.Info("resolving section",
		logging.String(logging.FieldMediaType, string(t)),
		logging.Int("items", len(items)),
		logging.Int("library_size", len(library)))

	for idx, item := range items {
		if ctx.Err() != nil {
			break
		}
		itemCtx := services.WithItemIndex(ctx, idx+1)
		year := item.Year
		if t.IsCollection() {
			year = 0
		}
		res, ok := r.resolver.Resolve(itemCtx, item.Title, year, library, t)
		if ok {
			item.ApplyMatch(t, res)
		} else {
			item.ClearMatch()
		}

		switch {
		case !ok:
			counts.Unmatched++
		case res.Source == media.SourceLocal:
			counts.Local++
		default:
			counts.Remote++
		}

		if r.opts.OnItem != nil {
			r.opts.OnItem(Progress{Type: t, Index: idx + 1, Total: len(items), Title: item.Title, Result: res})
		}
		if sampler.ShouldLog(string(t), idx+1, len(items)) {
			logger.Info("reconciliation progress",
				logging.String(logging.FieldMediaType, string(t)),
				logging.Int("done", idx+1),
				logging.Int("total", len(items)),
				logging.Int("matched", counts.Local+counts.Remote))
		}
	}
	return counts
}
