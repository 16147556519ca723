package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shunt/internal/catalog"
	"shunt/internal/library"
)

func newPresenceCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var outPath string
	var recursive bool

	cmd := &cobra.Command{
		Use:   "presence <catalog.json|catalog.csv>",
		Short: "Check which catalog episodes have a file on disk",
		Long: "Checks every catalog entry against the library tree by its " +
			"code, date and absolute-number triple, ignoring title spelling, " +
			"casing, unicode punctuation and quality suffixes. The catalog " +
			"is rewritten as CSV with a VideoPresent column filled in.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Paths.LibraryDir
			}

			episodes, err := readCatalogFile(args[0])
			if err != nil {
				return err
			}
			index, err := library.BuildPresenceIndex(dir, recursive)
			if err != nil {
				return err
			}
			present := library.CheckPresence(episodes, index)

			found := 0
			for _, ok := range present {
				if ok {
					found++
				}
			}

			if outPath == "" {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				outPath = base + "_checked.csv"
			}
			if err := library.WritePresenceCSV(outPath, episodes, present); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checked episodes: %d\n", len(episodes))
			fmt.Fprintf(out, "Present: %d / %d\n", found, len(episodes))
			fmt.Fprintf(out, "Wrote: %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Library directory (default: configured library)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Annotated catalog CSV output path (default: <input>_checked.csv)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Scan subdirectories")
	return cmd
}

// readCatalogFile loads a catalog from either interchange form.
func readCatalogFile(path string) ([]catalog.Episode, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return catalog.ReadJSON(path)
	}
	return catalog.ReadCSV(path)
}
