package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// writeJSON renders v to the command's stdout as two-space-indented
// JSON, for the --json flag of report commands.
func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
