package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"bennypowers.dev/utilgen/internal/build"
	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/extract"
	"bennypowers.dev/utilgen/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the project's stylesheet",
	Long: "Scan the configured content for candidates and write the CSS they generate,\n" +
		"inside the input stylesheet when one is configured.",
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "Output file (default: configured output, else stdout)")
	buildCmd.Flags().Bool("minify", false, "Minify the output")
	buildCmd.Flags().BoolP("watch", "w", false, "Rebuild when project files change")
	buildCmd.Flags().Int("workers", 0, "Scan workers (default: GOMAXPROCS)")
	addConfigFlags(buildCmd)

	_ = viper.BindPFlag("minify", buildCmd.Flags().Lookup("minify"))

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer extract.ClosePools()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := cfg.Design()
	if err != nil {
		return err
	}
	store := design.NewStore(d)
	b := build.New(cfg, store)
	opts := build.Options{Minify: viper.GetBool("minify")}
	watch, _ := cmd.Flags().GetBool("watch")

	if err := buildOnce(ctx, b, opts, cmd.OutOrStdout()); err != nil {
		if !watch {
			return err
		}
		log.Error("Build failed: %v", err)
	}
	if !watch {
		return nil
	}
	return watchProject(ctx, &watcher{
		cmd:     cmd,
		builder: b,
		store:   store,
		opts:    opts,
		out:     cmd.OutOrStdout(),
	})
}

// buildOnce builds and writes the result to the configured output, or to
// stdout when there is none.
func buildOnce(ctx context.Context, b *build.Builder, opts build.Options, stdout io.Writer) error {
	result, err := b.Build(ctx, opts)
	if err != nil {
		return err
	}
	return writeResult(b.Config(), result.CSS, stdout)
}

func writeResult(cfg *config.Config, css []byte, stdout io.Writer) error {
	if cfg.Output == "" || cfg.Output == "-" {
		_, err := stdout.Write(css)
		return err
	}
	path := cfg.Path(cfg.Output)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, css, 0o644); err != nil { //nolint:gosec // G306: generated stylesheets are public
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}
	log.Info("Wrote %s", path)
	return nil
}
