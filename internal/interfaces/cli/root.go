// Package cli implements the molgraph command-line interface.  Every
// subcommand runs the comparison engine in-process; no server is required.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/molgraph/internal/application/compare"
	"github.com/turtacn/molgraph/internal/config"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Output     string
	Timeout    time.Duration
	MaxNodes   int64
	NoColor    bool
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config  *config.Config
	Logger  logging.Logger
	Service compare.Service
	Output  string
	Options compare.SearchOptions
}

// NewRootCommand creates the root command with all global flags and
// subcommands mounted.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "molgraph",
		Short:   "molgraph — attributed molecular-graph comparison engine",
		Long:    "molgraph compares molecules as attributed graphs: exact and substructure\nmatching, deadline-bounded maximum-common-subgraph search, and derived\nsimilarity scores (Tanimoto, edit distance, GLS).",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: environment only)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.Output, "output", "o", "text", "output format (text, json)")
	pf.DurationVar(&opts.Timeout, "timeout", 0, "search budget deadline (0: engine default)")
	pf.Int64Var(&opts.MaxNodes, "max-nodes", 0, "search budget node cap (0: engine default)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newMatchCmd(),
		newSubstructCmd(),
		newMCSCmd(),
		newScoreCmd(),
		newBatchCmd(),
		newInspectCmd(),
		newRenderCmd(),
	)
	return cmd
}

// persistentPreRun loads configuration, builds the logger and the comparison
// service, and stores them in the command context.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	if opts.NoColor {
		color.NoColor = true
	}

	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	log, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return err
	}

	svc, err := compare.NewService(cfg.Engine, log,
		compare.WithGraphCacheSize(cfg.Cache.GraphLRUSize))
	if err != nil {
		return err
	}

	cliCtx := &CLIContext{
		Config:  cfg,
		Logger:  log,
		Service: svc,
		Output:  opts.Output,
		Options: compare.SearchOptions{
			Timeout:  opts.Timeout,
			MaxNodes: opts.MaxNodes,
		},
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

// getCLIContext extracts the CLIContext installed by persistentPreRun.
func getCLIContext(cmd *cobra.Command) *CLIContext {
	ctx, _ := cmd.Context().Value(cliContextKey{}).(*CLIContext)
	return ctx
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMatched renders a boolean match outcome in the selected format.
func printMatched(cliCtx *CLIContext, matched bool) error {
	if cliCtx.Output == "json" {
		return printJSON(map[string]bool{"matched": matched})
	}
	if matched {
		color.Green("MATCH")
	} else {
		color.Red("NO MATCH")
	}
	return nil
}

// Execute runs the CLI and returns the first error encountered.
func Execute() error {
	return NewRootCommand().Execute()
}
