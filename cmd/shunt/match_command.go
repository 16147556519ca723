package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shunt/internal/catalog"
	"shunt/internal/library"
	"shunt/internal/logging"
	"shunt/internal/match"
	"shunt/internal/mediathek"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "match <listing.csv> <catalog.json>",
		Short: "Match broadcast listings against the catalog",
		Long: "Pairs every broadcast listing with its best catalog entry and " +
			"writes a mapping CSV. Matches below the threshold keep their " +
			"score but no target filename.",
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

			listings, err := mediathek.ReadListingCSV(args[0])
			if err != nil {
				return err
			}
			episodes, err := catalog.ReadJSON(args[1])
			if err != nil {
				return err
			}

			matcher := match.New(episodes, cfg.Matching)
			mappings := match.Build(listings, matcher, cfg.Naming)

			accepted := 0
			for _, m := range mappings {
				if m.NewFilename != "" {
					accepted++
				}
			}
			logger.Info("listings matched",
				logging.Int("listings", len(listings)),
				logging.Int("accepted", accepted),
				logging.Float64("threshold", matcher.Threshold()))

			if outPath == "" {
				if outPath, err = ctx.dataPath("mapping.csv"); err != nil {
					return err
				}
			}
			if err := match.WriteCSV(outPath, mappings); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Matched %d of %d listings (threshold %.2f)\n", accepted, len(listings), matcher.Threshold())
			fmt.Fprintf(out, "Wrote: %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Mapping CSV output path")
	return cmd
}

func newExistsCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var outPath string

	cmd := &cobra.Command{
		Use:   "exists <mapping.csv>",
		Short: "Check which mapped target files already exist",
		Long: "Checks every target filename in a mapping CSV against the " +
			"library directory. A file counts as present on an exact name " +
			"match or when any file carries the same episode code. With " +
			"--out the mapping is rewritten with the file_exists and " +
			"match_type columns filled in.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Paths.LibraryDir
			}

			mappings, err := match.ReadCSV(args[0])
			if err != nil {
				return err
			}
			idx, err := library.BuildIndex(dir)
			if err != nil {
				return err
			}

			headers := []string{"Target", "Exists", "Match"}
			rows := make([][]string, 0, len(mappings))
			present, checked := 0, 0
			for i := range mappings {
				m := &mappings[i]
				m.FileExists, m.MatchType = false, ""
				if m.NewFilename == "" {
					continue
				}
				m.FileExists, m.MatchType = idx.Check(m.NewFilename)
				checked++
				if m.FileExists {
					present++
				}
				rows = append(rows, []string{m.NewFilename, yesNo(m.FileExists), m.MatchType})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(headers, rows, nil))
			fmt.Fprintf(out, "Present: %d / %d\n", present, checked)

			if outPath != "" {
				if err := match.WriteCSV(outPath, mappings); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote: %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Library directory (default: configured library)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Rewrite the mapping CSV with existence columns to this path")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
