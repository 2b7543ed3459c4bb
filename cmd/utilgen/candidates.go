package main

import (
	"fmt"
	"os"

	"bennypowers.dev/utilgen/internal/build"
	"bennypowers.dev/utilgen/internal/collections"
	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/extract"
	"github.com/spf13/cobra"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates <file>...",
	Short: "Print the candidates scanned from files",
	Long: "Scan files the way a build does and print the distinct candidates, sorted.\n" +
		"With --resolved, only those that generate CSS.",
	Args: cobra.MinimumNArgs(1),
	RunE: runCandidates,
}

func init() {
	candidatesCmd.Flags().Bool("resolved", false, "Only print candidates that generate CSS")
	addConfigFlags(candidatesCmd)

	rootCmd.AddCommand(candidatesCmd)
}

func runCandidates(cmd *cobra.Command, args []string) error {
	defer extract.ClosePools()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	found := collections.NewSet[string]()
	for _, path := range args {
		content, err := os.ReadFile(path) //nolint:gosec // G304: files named on the command line
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		found.Union(build.ScanFile(path, content, cfg.Mode))
	}

	var keep func(string) bool
	if resolved, _ := cmd.Flags().GetBool("resolved"); resolved {
		d, err := cfg.Design()
		if err != nil {
			return err
		}
		session := build.New(cfg, design.NewStore(d)).Engine().Session()
		keep = func(raw string) bool {
			_, shortcut := cfg.Shortcuts[raw]
			return shortcut || session.Resolve(raw) != nil
		}
	}

	out := cmd.OutOrStdout()
	for _, raw := range collections.Sorted(found) {
		if keep == nil || keep(raw) {
			fmt.Fprintln(out, raw)
		}
	}
	return nil
}
