// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/models"
)

func newTitlesCmd(a *app) *cobra.Command {
	var (
		prefix string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List titles known to the rating matrix",
		Long: `List the titles that are answered locally, in matrix order.

With --prefix only titles starting with the prefix are listed (case-insensitive).

Examples:
  folioctl titles --limit 20
  folioctl titles --prefix "harry potter"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be non-negative, got %d", limit)
			}

			matrix, _, err := a.dataset(cmd.Context())
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}

			titles := matrix.Titles()
			if prefix != "" {
				titles = cache.NewTitleTrieFrom(titles).Autocomplete(prefix, 0)
			}
			total := len(titles)
			if limit > 0 && len(titles) > limit {
				titles = titles[:limit]
			}

			if a.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), models.TitlesData{Prefix: prefix, Total: total, Titles: titles})
			}
			return renderTitles(cmd.OutOrStdout(), titles, total)
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "only titles starting with this prefix")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "max titles (0 lists all)")
	return cmd
}
