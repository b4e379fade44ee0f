// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
)

func newLookupCmd(a *app) *cobra.Command {
	var minRating float64

	cmd := &cobra.Command{
		Use:   "lookup <title>",
		Short: "Recommend books similar to a title",
		Long: `Look up a title exactly as the server does.

Known titles are answered from the local similarity index and filtered by
--min-rating. Unknown titles fall back to an Open Library search, where the
rating filter does not apply.

Examples:
  folioctl lookup "The Da Vinci Code"
  folioctl lookup "Dune" --min-rating 8
  folioctl lookup "Middlemarch" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("min-rating") {
				minRating = a.cfg.Recommend.DefaultMinRating
			}
			if minRating < 0 || minRating > a.cfg.Recommend.MaxMinRating {
				return fmt.Errorf("--min-rating must be between 0 and %v, got %v", a.cfg.Recommend.MaxMinRating, minRating)
			}

			ctx := cmd.Context()
			engine, err := a.engine(ctx)
			if err != nil {
				return fmt.Errorf("init lookup: %w", err)
			}

			// Unquoted titles arrive as several arguments.
			title := strings.Join(args, " ")
			res := engine.Lookup(ctx, recommend.Request{Title: title, MinRating: minRating}, nil)

			if a.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), models.RecommendationData{
					Query:     res.Query,
					Outcome:   res.Outcome,
					MinRating: minRating,
					Degraded:  res.Degraded,
					Items:     res.Items,
				})
			}
			return renderResult(cmd.OutOrStdout(), res, minRating)
		},
	}

	cmd.Flags().Float64VarP(&minRating, "min-rating", "m", 0, "minimum average rating for local recommendations (default from RECOMMEND_DEFAULT_MIN_RATING)")
	return cmd
}
