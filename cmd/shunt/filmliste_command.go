package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shunt/internal/logging"
	"shunt/internal/mediathek"
)

func newFilmlisteCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "filmliste",
		Short: "Download the Filmliste and extract matching film records",
		Long: "Streams the xz-compressed MediathekView Filmliste and keeps " +
			"every film record matching the configured keywords. Raw records " +
			"are written as JSON for the convert step.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			client, err := mediathek.New(cfg.Mediathek, mediathek.WithUserAgent(cfg.TVDB.UserAgent))
			if err != nil {
				return err
			}

			logger.Info("downloading filmliste", logging.String("url", cfg.Mediathek.FilmlisteURL))
			records, err := client.Extract(cmd.Context())
			if err != nil {
				return fmt.Errorf("extract filmliste: %w", err)
			}
			logger.Info("filmliste filtered", logging.Int("records", len(records)))

			if outPath == "" {
				if outPath, err = ctx.dataPath("filmliste-records.json"); err != nil {
					return err
				}
			}
			if err := mediathek.WriteRecordsJSON(outPath, records); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d records to %s\n", len(records), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Raw records JSON output path")
	return cmd
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "convert <records.json>",
		Short: "Convert raw film records into a deduplicated broadcast listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			records, err := mediathek.ReadRecordsJSON(args[0])
			if err != nil {
				return err
			}

			listings := mediathek.Reduce(records, cfg.Mediathek.MinDuration)
			extracted := len(listings)
			listings = mediathek.Dedupe(listings, cfg.Matching.SeriesPrefix)
			logger.Info("listing converted",
				logging.Int("records", len(records)),
				logging.Int("episodes", extracted),
				logging.Int("deduplicated", len(listings)))

			if outPath == "" {
				if outPath, err = ctx.dataPath("listing.csv"); err != nil {
					return err
				}
			}
			if err := mediathek.WriteListingCSV(outPath, listings); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded records:      %d\n", len(records))
			fmt.Fprintf(out, "Episodes extracted:  %d\n", extracted)
			fmt.Fprintf(out, "After deduplication: %d\n", len(listings))
			fmt.Fprintf(out, "Wrote: %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Listing CSV output path")
	return cmd
}
