// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package cli provides the folioctl command-line interface.
//
// folioctl works offline against the same ratings file and model directory
// as the server: it can look up titles, list or autocomplete titles, and fit
// and persist the similarity index ahead of a deployment.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/algorithms"
	"github.com/tomtom215/folio/internal/recommend/storage"
)

// Version is set at build time.
var Version = "dev"

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
)

// app carries global flags and the loaded configuration into subcommands.
type app struct {
	ratingsPath string
	modelDir    string
	output      string
	verbose     bool

	cfg    *config.Config
	logger zerolog.Logger
}

// NewRootCmd builds the folioctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "folioctl",
		Short: "Offline tooling for the Folio recommendation service",
		Long: `folioctl runs Folio lookups from the command line and manages the
persisted similarity index.

Configuration is read the same way as the server (defaults, config file,
environment, .env). Flags override the dataset locations.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip config loading for version and help commands
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.load(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.ratingsPath, "ratings", "", "ratings file (overrides RATINGS_PATH)")
	flags.StringVar(&a.modelDir, "model-dir", "", "similarity artifact directory (overrides MODEL_DIR)")
	flags.StringVarP(&a.output, "output", "o", outputText, "output format: text or json")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(newLookupCmd(a))
	rootCmd.AddCommand(newTitlesCmd(a))
	rootCmd.AddCommand(newIndexCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// load reads configuration and applies flag overrides.
func (a *app) load(logOut io.Writer) error {
	if a.output != outputText && a.output != outputJSON {
		return fmt.Errorf("unknown output format %q, want text or json", a.output)
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	logging.Init(logging.Config{Level: level, Format: "console", Timestamp: true, Service: "folioctl", Output: logOut})
	a.logger = logging.WithComponent("folioctl")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.ratingsPath != "" {
		cfg.Dataset.RatingsPath = a.ratingsPath
	}
	if a.modelDir != "" {
		cfg.Dataset.ModelDir = a.modelDir
	}
	a.cfg = cfg
	return nil
}

// dataset reads the ratings file and builds the matrix.
func (a *app) dataset(ctx context.Context) (*recommend.RatingMatrix, recommend.AverageRatings, error) {
	records, err := database.ReadRatings(ctx, &a.cfg.Dataset)
	if err != nil {
		return nil, nil, err
	}
	return recommend.BuildMatrix(records)
}

// knnConfig maps the recommend section onto the index configuration.
func (a *app) knnConfig() (algorithms.KNNConfig, error) {
	metric, err := algorithms.ParseMetric(a.cfg.Recommend.Metric)
	if err != nil {
		return algorithms.KNNConfig{}, err
	}
	knnCfg := algorithms.DefaultKNNConfig()
	knnCfg.K = a.cfg.Recommend.Neighbors
	knnCfg.Metric = metric
	return knnCfg, nil
}

// store opens the model directory, or returns nil when none is configured.
func (a *app) store() (*storage.Store, error) {
	if a.cfg.Dataset.ModelDir == "" {
		return nil, nil
	}
	return storage.NewStore(a.cfg.Dataset.ModelDir)
}

// engine builds a lookup engine. The persisted index is used when it matches;
// lookups never write artifacts.
func (a *app) engine(ctx context.Context) (*recommend.Engine, error) {
	matrix, averages, err := a.dataset(ctx)
	if err != nil {
		return nil, err
	}

	knnCfg, err := a.knnConfig()
	if err != nil {
		return nil, err
	}
	store, err := a.store()
	if err != nil {
		a.logger.Warn().Err(err).Msg("Model directory unavailable, fitting in memory")
	}

	index, _, err := algorithms.LoadOrFit(ctx, matrix, knnCfg, algorithms.LoaderOptions{Store: store}, a.logger)
	if err != nil {
		return nil, err
	}

	rc := recommend.DefaultConfig()
	rc.Neighbors = a.cfg.Recommend.Neighbors
	rc.EnrichLinks = a.cfg.Recommend.EnrichLinks
	rc.EnrichWorkers = a.cfg.Recommend.EnrichWorkers

	return recommend.NewEngine(rc, matrix, averages, index, catalog.New(&a.cfg.Catalog, a.logger), a.logger)
}
