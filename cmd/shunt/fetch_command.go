package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shunt/internal/catalog"
	"shunt/internal/logging"
	"shunt/internal/tvdb"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var jsonPath string
	var csvPath string
	var specialsOnly bool
	var skipCache bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the episode catalog from TheTVDB",
		Long: "Scrapes the configured series' public all-seasons page, assigns " +
			"absolute episode numbers and canonical filenames, and writes the " +
			"catalog as JSON and CSV.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			client, err := tvdb.New(cfg.TVDB)
			if err != nil {
				return err
			}

			var result *tvdb.FetchResult
			if specialsOnly {
				result, err = client.Specials(cmd.Context())
			} else {
				result, err = client.AllSeasons(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("fetch catalog: %w", err)
			}

			logger.Info("catalog page fetched",
				logging.String("url", result.URL),
				logging.Int("episodes", len(result.Episodes)),
				logging.String("cdn", result.Cache.Describe()))

			episodes := result.Episodes
			catalog.Finalize(episodes, cfg.Naming)

			if jsonPath == "" {
				if jsonPath, err = ctx.dataPath("catalog.json"); err != nil {
					return err
				}
			}
			if csvPath == "" {
				if csvPath, err = ctx.dataPath("catalog.csv"); err != nil {
					return err
				}
			}
			if err := catalog.WriteJSON(jsonPath, episodes); err != nil {
				return err
			}
			if err := catalog.WriteCSV(csvPath, episodes); err != nil {
				return err
			}

			if !skipCache {
				store, err := catalog.OpenStore(cfg)
				if err != nil {
					return err
				}
				defer store.Close()
				runID, err := store.RecordFetch(cmd.Context(), cfg.TVDB.SeriesSlug, result.URL, episodes)
				if err != nil {
					return fmt.Errorf("record fetch run: %w", err)
				}
				logger.Info("fetch run recorded", logging.String("run", runID))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fetched %d episodes\n", len(episodes))
			fmt.Fprintf(out, "JSON: %s\n", jsonPath)
			fmt.Fprintf(out, "CSV:  %s\n", csvPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonPath, "json", "", "Catalog JSON output path")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Catalog CSV output path")
	cmd.Flags().BoolVar(&specialsOnly, "specials", false, "Fetch only the season-0 specials page")
	cmd.Flags().BoolVar(&skipCache, "no-cache", false, "Do not record the fetch in the local catalog cache")
	return cmd
}
