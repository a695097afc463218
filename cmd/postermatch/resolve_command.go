package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dweagle/extras/internal/library"
	"github.com/dweagle/extras/internal/matching"
	"github.com/dweagle/extras/internal/media"
	"github.com/dweagle/extras/internal/reconcile"
	"github.com/dweagle/extras/internal/services"
)

type resolveOutput struct {
	Query    string       `json:"query"`
	Year     int          `json:"year,omitempty"`
	Type     media.Type   `json:"type"`
	Matched  bool         `json:"matched"`
	Match    *matchOutput `json:"match,omitempty"`
	TMDBLink string       `json:"tmdb_link,omitempty"`
	TVDBLink string       `json:"tvdb_link,omitempty"`
}

type matchOutput struct {
	Title  string       `json:"title"`
	Year   int          `json:"year,omitempty"`
	TMDBID int64        `json:"tmdb_id"`
	TVDBID int64        `json:"tvdb_id,omitempty"`
	Source media.Source `json:"source"`
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var (
		year       int
		typeFlag   string
		remoteOnly bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "resolve TITLE",
		Short: "Resolve a single title through the library and TMDB",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := media.ParseType(typeFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")
			if t.IsCollection() {
				year = 0
			}

			runCtx := services.WithRunID(cmd.Context(), ctx.runID)
			searcher, closer, err := reconcile.BuildSearcher(runCtx, cfg, logger)
			if err != nil {
				return err
			}
			defer closer.Close()

			var items []media.LibraryItem
			if !remoteOnly {
				source, err := library.FromConfig(cfg, logger)
				if err != nil {
					return err
				}
				items = source.Fetch(runCtx, t)
			}

			resolver := matching.NewResolver(matching.NewRemoteMatcher(searcher, logger), logger)
			res, ok := resolver.Resolve(runCtx, title, year, items, t)

			out := resolveOutput{Query: title, Year: year, Type: t, Matched: ok}
			if ok {
				out.Match = &matchOutput{
					Title:  res.Title,
					Year:   res.Year,
					TMDBID: res.PrimaryID,
					TVDBID: res.SecondaryID,
					Source: res.Source,
				}
				out.TMDBLink = media.TMDBLink(t, res.PrimaryID)
				if !t.IsCollection() {
					out.TVDBLink = media.TVDBLink(res.SecondaryID)
				}
			}
			if asJSON {
				return writeJSON(cmd, out)
			}
			renderResolve(cmd, out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Release year (0 = unknown)")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", string(media.TypeMovie), "Media type: movie, series or collection")
	cmd.Flags().BoolVar(&remoteOnly, "remote-only", false, "Skip the library lookup and search TMDB directly")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func renderResolve(cmd *cobra.Command, out resolveOutput) {
	w := cmd.OutOrStdout()
	if !out.Matched {
		fmt.Fprintf(w, "No match for %q (%s)\n", out.Query, out.Type)
		return
	}
	m := out.Match
	rows := [][]string{
		{"Title", m.Title},
		{"Year", yearLabel(m.Year)},
		{"Source", string(m.Source)},
		{"TMDB ID", strconv.FormatInt(m.TMDBID, 10)},
		{"TMDB", out.TMDBLink},
	}
	if m.TVDBID > 0 {
		rows = append(rows, []string{"TVDB ID", strconv.FormatInt(m.TVDBID, 10)}, []string{"TVDB", out.TVDBLink})
	}
	fmt.Fprintln(w, renderTable([]string{"Field", "Value"}, rows, nil, nil))
}

func yearLabel(year int) string {
	if year <= 0 {
		return "-"
	}
	return strconv.Itoa(year)
}
