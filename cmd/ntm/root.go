package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/aretw0/ntm/internal/cli"
	"github.com/aretw0/ntm/internal/config"
	"github.com/aretw0/ntm/internal/presentation/report"
	"github.com/spf13/cobra"
)

var (
	session  *cli.Session
	exitCode = cli.ExitAccepted
)

var rootCmd = &cobra.Command{
	Use:   "ntm",
	Short: "ntm traces nondeterministic Turing machines",
	Long: `ntm loads Turing machine definitions (.tm, .yaml, .json or a Markdown library)
and explores every computation branch level by level, reporting whether the input is
accepted, rejected, or the depth bound was reached.

Exit codes: 0 accepted, 1 error, 2 rejected, 3 depth or step limit reached.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupSession,
}

// Execute runs the root command and returns the process exit code.
// An interrupt cancels the running simulation.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if session != nil {
		if cerr := session.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", cerr)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitError
	}
	return exitCode
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default "+config.DefaultFile+" when present)")
	flags.String("lib", "", "Directory of machine definitions (a Loam library)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	flags.String("wildcard-policy", "", "Wildcard matching: exact-first or union")
	flags.Bool("lenient", false, "Skip input alphabet validation")
}

// setupSession merges the config file with explicitly set flags.
func setupSession(cmd *cobra.Command, args []string) error {
	if cmd.Name() == versionCmd.Name() {
		return nil
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	overrideString(cmd, "lib", &cfg.Library)
	overrideString(cmd, "log-level", &cfg.LogLevel)
	overrideString(cmd, "log-file", &cfg.LogFile)
	overrideString(cmd, "metrics-file", &cfg.MetricsFile)
	overrideString(cmd, "wildcard-policy", &cfg.WildcardPolicy)
	overrideString(cmd, "format", &cfg.Format)
	overrideInt(cmd, "max-depth", &cfg.MaxDepth)
	overrideInt(cmd, "max-steps", &cfg.MaxSteps)
	if lenient, _ := cmd.Flags().GetBool("lenient"); lenient {
		cfg.StrictInput = false
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	session, err = cli.NewSession(cfg)
	return err
}

func overrideString(cmd *cobra.Command, name string, dst *string) {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		*dst = f.Value.String()
	}
}

func overrideInt(cmd *cobra.Command, name string, dst *int) {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return
	}
	if v, err := cmd.Flags().GetInt(name); err == nil {
		*dst = v
	}
}

func outputFormat() (report.Format, error) {
	return report.ParseFormat(session.Config.Format)
}
