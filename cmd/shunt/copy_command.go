package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shunt/internal/catalog"
	"shunt/internal/match"
	"shunt/internal/organizer"
)

func newCopyCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var destDir string

	cmd := &cobra.Command{
		Use:   "copy <mapping.csv> <source-dir>",
		Short: "Copy source files into the library using a mapping table",
		Long: "Copies every source video whose extracted title appears in the " +
			"mapping CSV, renaming it to the mapped target filename. Existing " +
			"targets are never overwritten.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			mappings, err := match.ReadCSV(args[0])
			if err != nil {
				return err
			}
			if destDir == "" {
				destDir = cfg.Paths.LibraryDir
			}

			o := organizer.New(cfg, logger)
			summary, err := o.CopyMapped(cmd.Context(), mappings, organizer.Options{
				SourceDir: args[1],
				DestDir:   destDir,
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}
			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Log actions without copying")
	cmd.Flags().StringVarP(&destDir, "dest", "d", "", "Destination directory (default: configured library)")
	return cmd
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var destDir string

	cmd := &cobra.Command{
		Use:   "rename <catalog.json> <source-dir>",
		Short: "Copy source files into the library by fuzzy catalog match",
		Long: "Extracts a title from each source filename, fuzzy-matches it " +
			"against the catalog, and copies accepted matches under their " +
			"canonical filename. Low-confidence matches are skipped.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			episodes, err := catalog.ReadJSON(args[0])
			if err != nil {
				return err
			}
			if destDir == "" {
				destDir = cfg.Paths.LibraryDir
			}

			matcher := match.New(episodes, cfg.Matching)
			o := organizer.New(cfg, logger)
			summary, err := o.RenameMatched(cmd.Context(), matcher, organizer.Options{
				SourceDir: args[1],
				DestDir:   destDir,
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}
			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Log actions without copying")
	cmd.Flags().StringVarP(&destDir, "dest", "d", "", "Destination directory (default: configured library)")
	return cmd
}

func printSummary(cmd *cobra.Command, summary *organizer.Summary) {
	out := cmd.OutOrStdout()
	verb := "Copied"
	if summary.DryRun {
		verb = "Would copy"
	}
	fmt.Fprintf(out, "%s: %d of %d scanned\n", verb, summary.Copied, summary.Scanned)
	if summary.SkippedExisting > 0 {
		fmt.Fprintf(out, "Skipped (already present): %d\n", summary.SkippedExisting)
	}
	if summary.SkippedUnmapped > 0 {
		fmt.Fprintf(out, "Skipped (no mapping): %d\n", summary.SkippedUnmapped)
	}
	if summary.SkippedLowConfidence > 0 {
		fmt.Fprintf(out, "Skipped (low confidence): %d\n", summary.SkippedLowConfidence)
	}
}
