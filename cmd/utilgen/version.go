package main

import (
	"encoding/json"
	"fmt"

	"bennypowers.dev/utilgen/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "utilgen", info)
		return err
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Print as JSON")

	rootCmd.Version = version.Get().String()
	rootCmd.AddCommand(versionCmd)
}
