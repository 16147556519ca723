package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shunt/internal/catalog"
	"shunt/internal/library"
	"shunt/internal/logging"
	"shunt/internal/mediathek"
)

func newDupesCommand(ctx *commandContext) *cobra.Command {
	var recursive bool
	var csvPath string

	cmd := &cobra.Command{
		Use:   "dupes <dir> [dir...]",
		Short: "Report duplicate episode files",
		Long: "Parses canonical filenames in the given directories and lists " +
			"files sharing an episode code, broadcast date or absolute " +
			"number. Files that do not follow the naming scheme are listed " +
			"separately.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			paths, err := library.ScanVideos(args, recursive)
			if err != nil {
				return err
			}
			parser := library.NewParser(cfg.Naming.SeriesLabel, cfg.Naming.Extension)
			parsed, skipped := library.ParseAll(parser, paths)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned: %d files\n", len(paths))
			fmt.Fprintf(out, "Parsed:  %d files\n", len(parsed))
			fmt.Fprintf(out, "Skipped (pattern mismatch): %d files\n", len(skipped))

			for _, key := range []string{library.KeyEpisodeCode, library.KeyBroadcastDate, library.KeyAbsEpisode} {
				groups := library.FindDuplicates(parsed, key)
				if len(groups) == 0 {
					fmt.Fprintf(out, "\nNo duplicates by %s.\n", key)
					continue
				}
				fmt.Fprintf(out, "\nDuplicates by %s (%d keys):\n", key, len(groups))
				for _, group := range groups {
					fmt.Fprintf(out, "\n  %s = %s  (%d files)\n", key, group.Value, len(group.Files))
					for _, f := range group.Files {
						fmt.Fprintf(out, "    - %s  (%.2f MiB)\n", f.Path, f.SizeMiB)
					}
				}
			}

			if len(skipped) > 0 {
				fmt.Fprintln(out, "\nSkipped files (pattern mismatch):")
				for _, path := range skipped {
					fmt.Fprintf(out, "  - %s\n", path)
				}
			}

			if csvPath != "" {
				if err := library.WriteParsedCSV(csvPath, parsed); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nWrote CSV: %s\n", csvPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Scan subdirectories")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Optional CSV export of parsed files")
	return cmd
}

func newMissingCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var outPath string

	cmd := &cobra.Command{
		Use:   "missing <listing.csv> <catalog.json>",
		Short: "Report broadcast episodes with no file on disk",
		Long: "Compares episode numbers from the broadcast listing with the " +
			"absolute numbers parsed from library filenames and reports the " +
			"gaps, with the catalog's expected filename for each.",
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
			if dir == "" {
				dir = cfg.Paths.LibraryDir
			}

			listings, err := mediathek.ReadListingCSV(args[0])
			if err != nil {
				return err
			}
			episodes, err := catalog.ReadJSON(args[1])
			if err != nil {
				return err
			}

			parser := library.NewParser(cfg.Naming.SeriesLabel, cfg.Naming.Extension)
			present, unparsed, err := library.AbsIndex(parser, dir)
			if err != nil {
				return err
			}
			for _, name := range unparsed {
				logger.Warn("filename did not parse", logging.String("file", name))
			}

			missing := library.FindMissing(listings, present, episodes, cfg.Naming)

			headers := []string{"Abs", "Broadcast title", "Broadcast date", "Code", "Expected filename"}
			rows := make([][]string, 0, len(missing))
			for _, entry := range missing {
				rows = append(rows, []string{
					strconv.Itoa(entry.AbsEpisode),
					entry.BroadcastTitle,
					entry.BroadcastDate,
					entry.CatalogCode,
					entry.ExpectedFilename,
				})
			}

			out := cmd.OutOrStdout()
			if len(missing) == 0 {
				fmt.Fprintln(out, "No missing episodes.")
			} else {
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight}))
			}
			fmt.Fprintf(out, "Parsed on disk: %d, missing: %d\n", len(present), len(missing))

			if outPath != "" {
				if err := library.WriteMissingCSV(outPath, missing); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote: %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Library directory (default: configured library)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Missing-report CSV output path")
	return cmd
}
