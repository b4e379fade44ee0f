// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/recommend/algorithms"
	"github.com/tomtom215/folio/internal/recommend/storage"
)

// errNoModelDir is returned by index commands when no directory is configured.
var errNoModelDir = errors.New("no model directory: set MODEL_DIR or pass --model-dir")

func newIndexCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage persisted similarity indexes",
	}
	cmd.AddCommand(newIndexBuildCmd(a))
	cmd.AddCommand(newIndexListCmd(a))
	return cmd
}

func newIndexBuildCmd(a *app) *cobra.Command {
	var (
		out  string
		keep int
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Fit the similarity index and persist it",
		Long: `Fit the nearest-neighbour index over the rating matrix and save it as the
next artifact version. The server loads the newest artifact at startup
instead of fitting.

Examples:
  folioctl index build --out /data/model
  folioctl index build --keep 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != "" {
				a.cfg.Dataset.ModelDir = out
			}
			store, err := a.store()
			if err != nil {
				return fmt.Errorf("open model directory: %w", err)
			}
			if store == nil {
				return errNoModelDir
			}

			ctx := cmd.Context()
			matrix, _, err := a.dataset(ctx)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			knnCfg, err := a.knnConfig()
			if err != nil {
				return err
			}

			idx, err := algorithms.NewKNNIndex(ctx, matrix, knnCfg)
			if err != nil {
				return err
			}
			version, err := idx.Save(ctx, store, storage.ModelMetadata{RecordCount: matrix.NumRecords()})
			if err != nil {
				return err
			}
			if keep > 0 {
				if _, err := store.Prune(ctx, algorithms.ArtifactName, keep); err != nil {
					return fmt.Errorf("prune artifacts: %w", err)
				}
			}

			_, meta, err := algorithms.LoadKNNIndex(ctx, store, matrix, version)
			if err != nil {
				return fmt.Errorf("verify saved artifact: %w", err)
			}
			if a.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), meta)
			}
			return renderModels(cmd.OutOrStdout(), []storage.ModelMetadata{*meta})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "artifact directory (defaults to the model directory)")
	cmd.Flags().IntVar(&keep, "keep", 0, "keep only the newest N artifacts (0 keeps all)")
	return cmd
}

func newIndexListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted similarity artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return fmt.Errorf("open model directory: %w", err)
			}
			if store == nil {
				return errNoModelDir
			}

			models, err := store.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				if models == nil {
					models = []storage.ModelMetadata{}
				}
				return writeJSON(cmd.OutOrStdout(), models)
			}
			return renderModels(cmd.OutOrStdout(), models)
		},
	}
}
