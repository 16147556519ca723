package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shunt/internal/catalog"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var renumber bool

	cmd := &cobra.Command{
		Use:   "merge <catalog.json> <catalog.json> [more...]",
		Short: "Concatenate catalog JSON files",
		Long: "Merges catalog lists in argument order without sorting or " +
			"deduplication. With --renumber the merged catalog is re-sorted " +
			"and absolute numbers are assigned afresh.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			lists := make([][]catalog.Episode, 0, len(args))
			total := 0
			for _, path := range args {
				episodes, err := catalog.ReadJSON(path)
				if err != nil {
					return err
				}
				lists = append(lists, episodes)
				total += len(episodes)
			}

			merged := catalog.Merge(lists...)
			if renumber {
				catalog.Finalize(merged, cfg.Naming)
			}

			if outPath == "" {
				if outPath, err = ctx.dataPath("catalog-merged.json"); err != nil {
					return err
				}
			}
			if err := catalog.WriteJSON(outPath, merged); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d entries from %d files into %s\n", total, len(args), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Merged catalog JSON output path")
	cmd.Flags().BoolVar(&renumber, "renumber", false, "Re-sort and reassign absolute episode numbers")
	return cmd
}
