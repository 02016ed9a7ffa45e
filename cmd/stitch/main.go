package main

import (
	"fmt"
	"os"

	"github.com/cuemby/stitch/pkg/config"
	"github.com/cuemby/stitch/pkg/log"
	"github.com/cuemby/stitch/pkg/metrics"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli carries state shared by every subcommand once the root command has
// loaded configuration
type cli struct {
	cfgFile     string
	logLevel    string
	logJSON     bool
	metricsFile string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "stitch",
		Short: "Stitch - compile application topologies into deployment artifacts",
		Long: `Stitch describes distributed applications as labeled groups of containers,
the network connections allowed between them, placement rules and the
machines to run on, and compiles them into a canonical artifact for a
deployment engine.

Artifacts are printed to stdout as JSON or YAML and can be recorded as
revisions in a local database.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.writeMetrics()
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Stitch version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "Config file (default: stitch.yaml in ., $HOME/.stitch, /etc/stitch)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&c.logJSON, "log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file when the command completes")

	rootCmd.AddCommand(newCompileCmd(c))
	rootCmd.AddCommand(newComposeCmd(c))
	rootCmd.AddCommand(newRevisionsCmd(c))
	rootCmd.AddCommand(newTemplatesCmd())

	return rootCmd
}

func (c *cli) load(cmd *cobra.Command) error {
	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if cmd.Flags().Changed("log-level") {
		level = c.logLevel
	}
	jsonOutput := cfg.Log.JSON
	if cmd.Flags().Changed("log-json") {
		jsonOutput = c.logJSON
	}

	log.Init(log.Config{
		Level:      log.ParseLevel(level),
		JSONOutput: jsonOutput,
		Output:     cmd.ErrOrStderr(),
	})

	c.cfg = cfg
	return nil
}

func (c *cli) writeMetrics() error {
	if c.metricsFile == "" {
		return nil
	}
	if err := metrics.WriteFile(c.metricsFile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
