package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shunt/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect cached catalog fetches",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded catalog fetches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No catalog fetches recorded.")
				return nil
			}

			headers := []string{"ID", "Series", "Fetched", "Episodes"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.Series,
					run.FetchedAt.Format("2006-01-02 15:04:05"),
					strconv.Itoa(run.EpisodeCount),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show the episodes recorded by a fetch (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var runID string
			if len(args) == 1 {
				runID = args[0]
			} else {
				run, err := store.LatestRun(cmd.Context(), cfg.TVDB.SeriesSlug)
				if err != nil {
					return err
				}
				runID = run.ID
			}

			episodes, err := store.EpisodesForRun(cmd.Context(), runID)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, episodes)
			}

			headers := []string{"Code", "Date", "Abs", "Title"}
			rows := make([][]string, 0, len(episodes))
			for _, ep := range episodes {
				rows = append(rows, []string{
					ep.Code,
					ep.AirDateISO,
					strconv.Itoa(ep.AbsEpisode),
					ep.Title,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
			fmt.Fprintf(out, "%d episodes in run %s\n", len(episodes), runID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
