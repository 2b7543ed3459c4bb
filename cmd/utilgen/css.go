package main

import (
	"fmt"

	"bennypowers.dev/utilgen/internal/build"
	"bennypowers.dev/utilgen/internal/collections"
	"bennypowers.dev/utilgen/internal/cssast"
	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/log"
	"github.com/spf13/cobra"
)

var cssCmd = &cobra.Command{
	Use:   "css <candidate>...",
	Short: "Print the CSS generated for candidates",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCSS,
}

func init() {
	cssCmd.Flags().Bool("minify", false, "Minify the output")
	addConfigFlags(cssCmd)

	rootCmd.AddCommand(cssCmd)
}

func runCSS(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := cfg.Design()
	if err != nil {
		return err
	}
	b := build.New(cfg, design.NewStore(d))
	candidates := collections.NewSet(args...)
	nodes, n := b.Generate(b.Engine().Session(), candidates)
	if n == 0 {
		return fmt.Errorf("no candidate generated CSS: %v", args)
	}
	if skipped := len(candidates) - n; skipped > 0 {
		log.Warn("%d of %d candidates generated no CSS", skipped, len(candidates))
	}

	minify, _ := cmd.Flags().GetBool("minify")
	_, err = fmt.Fprint(cmd.OutOrStdout(), cssast.Print(nodes, minify))
	return err
}
