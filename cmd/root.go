package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gostatics/internal/config"
	"github.com/alexiusacademia/gostatics/internal/version"
)

var (
	configFile string
	verbose    bool

	// settings and logger are ready once PersistentPreRunE has run.
	settings = config.Default()
	logger   = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gostatics",
	Short: "Planar beam and frame statics solver",
	Long: `gostatics - Go Statics Solver

A CLI tool that computes the support and hinge reactions of statically
determinate planar beams and frames.

Structures are made of nodes joined by straight segments. Segments carry
point loads, distributed loads and torques; nodes carry fixed, pinned or
roller supports, or internal hinges.

Structures are stored as JSON (.bm) or YAML files.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gostatics v%-45s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Statics Solver for Planar Beams and Frames           ║")
		fmt.Fprintf(out, "  ║   %-56s║\n", fmt.Sprintf("%s ©  %s", version.Author, version.Year))
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Support reactions of fixed, pinned and roller supports")
		fmt.Fprintln(out, "    • Internal hinges with reciprocal hinge forces")
		fmt.Fprintln(out, "    • Point loads, distributed loads and torques")
		fmt.Fprintln(out, "    • Unknown applied loads solved alongside reactions")
		fmt.Fprintln(out, "    • Structure plots and ASCII load profiles")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gostatics --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// setup loads the config file and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	s, err := config.Load(config.Path(configFile))
	if err != nil {
		return err
	}
	level, err := config.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}

	settings = s
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $GOSTATICS_CONFIG or ~/.gostatics/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log solver details to stderr")
}
