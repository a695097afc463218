package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dweagle/extras/internal/library"
	"github.com/dweagle/extras/internal/media"
	"github.com/dweagle/extras/internal/services"
)

type libraryEntry struct {
	Title  string `json:"title"`
	Year   int    `json:"year,omitempty"`
	TMDBID int64  `json:"tmdb_id,omitempty"`
	TVDBID int64  `json:"tvdb_id,omitempty"`
}

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "library [movie|series|collection]",
		Short: "Fetch and list the aggregated reference library",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := media.TypeMovie
			if len(args) == 1 {
				parsed, err := media.ParseType(args[0])
				if err != nil {
					return err
				}
				t = parsed
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			source, err := library.FromConfig(cfg, logger)
			if err != nil {
				return err
			}
			if source.Providers() == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No Radarr, Sonarr or Jellyfin instances configured")
			}

			items := source.Fetch(services.WithRunID(cmd.Context(), ctx.runID), t)
			if asJSON {
				out := make([]libraryEntry, 0, len(items))
				for _, item := range items {
					out = append(out, libraryEntry{Title: item.Title, Year: item.Year, TMDBID: item.ExternalID, TVDBID: item.SecondaryID})
				}
				return writeJSON(cmd, out)
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{item.Title, yearLabel(item.Year), idLabel(item.ExternalID), idLabel(item.SecondaryID)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Title", "Year", "TMDB", "TVDB"},
				rows,
				[]string{fmt.Sprintf("%d %s", len(items), typeLabel(t)), "", "", ""},
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print items as JSON")
	return cmd
}

func idLabel(id int64) string {
	if id <= 0 {
		return "-"
	}
	return strconv.FormatInt(id, 10)
}
