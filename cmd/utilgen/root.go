package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "utilgen",
	Short: "On-demand utility CSS generator",
	Long: "utilgen scans a project's sources for utility class candidates and generates\n" +
		"the CSS for the ones its theme can resolve.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		name := viper.GetString("log_level")
		if viper.GetBool("verbose") {
			name = "debug"
		}
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("root", "r", ".", "Project root")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file (default: looked up under the root)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug output")

	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("UTILGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the project configuration and applies the overrides of
// the flags cmd defines.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	root, err := filepath.Abs(viper.GetString("root"))
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	var cfg *config.Config
	if file := viper.GetString("config"); file != "" {
		cfg, err = config.LoadFile(file, root)
	} else {
		cfg, err = config.Load(root)
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Lookup("mode") != nil && flags.Changed("mode") {
		mode, _ := flags.GetString("mode")
		cfg.Mode = config.Mode(strings.ToLower(mode))
	}
	if flags.Lookup("prefix") != nil && flags.Changed("prefix") {
		cfg.Prefix, _ = flags.GetString("prefix")
	}
	if flags.Lookup("output") != nil && flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// addConfigFlags registers the configuration overrides shared by the
// commands that resolve candidates.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "", "Extraction mode: generic or regions")
	cmd.Flags().String("prefix", "", "Class prefix")
}
