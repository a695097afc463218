package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dweagle/extras/internal/similarity"
	"github.com/dweagle/extras/internal/titlenorm"
)

func newNormalizeCommand() *cobra.Command {
	var (
		collection bool
		compare    string
		year       int
		otherYear  int
	)

	cmd := &cobra.Command{
		Use:         "normalize TITLE",
		Short:       "Print the normalized form of a title, optionally scored against another",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			normalized := titlenorm.Normalize(strings.Join(args, " "), collection)
			if compare == "" {
				fmt.Fprintln(out, normalized)
				return nil
			}

			other := titlenorm.Normalize(compare, collection)
			s := similarity.Score(normalized, other, collection, year, otherYear)
			rows := [][]string{
				{"Normalized", normalized},
				{"Compared", other},
				{"Sequence", fmt.Sprintf("%.4f", s.Sequence)},
				{"Jaccard", fmt.Sprintf("%.4f", s.Jaccard)},
				{"Year", fmt.Sprintf("%.1f", s.Year)},
				{"Composite", fmt.Sprintf("%.4f", s.Composite)},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&collection, "collection", false, "Apply collection suffix stripping")
	cmd.Flags().StringVar(&compare, "compare", "", "Second title to score against")
	cmd.Flags().IntVar(&year, "year", 0, "Year of TITLE for the year score")
	cmd.Flags().IntVar(&otherYear, "compare-year", 0, "Year of the compared title for the year score")
	return cmd
}
