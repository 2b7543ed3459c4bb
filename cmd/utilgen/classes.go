package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List the named classes the theme can generate",
	Args:  cobra.NoArgs,
	RunE:  runClasses,
}

func init() {
	classesCmd.Flags().Bool("variants", false, "List the static variants instead")
	addConfigFlags(classesCmd)

	rootCmd.AddCommand(classesCmd)
}

func runClasses(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := cfg.Design()
	if err != nil {
		return err
	}

	var names []string
	if variants, _ := cmd.Flags().GetBool("variants"); variants {
		names = d.StaticVariantNames()
	} else {
		names = slices.Concat(slices.Sorted(maps.Keys(cfg.Shortcuts)), d.Classes())
	}
	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
