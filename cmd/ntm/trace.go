package main

import (
	"github.com/aretw0/ntm/internal/cli"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace <machine> [input]",
	Short: "Trace a nondeterministic machine breadth-first",
	Long: `Explores the configuration tree of <machine> on [input] one level at a time.
<machine> is a definition file or an ID in the library given by --lib.
The input defaults to the empty string.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}
		code, err := session.Trace(cmd.Context(), args[0], inputArg(args), cli.TraceOptions{
			MaxDepth: session.Config.MaxDepth,
			Format:   format,
		})
		exitCode = code
		return err
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().IntP("max-depth", "d", 0, "Deepest level to explore (default from config, 100)")
	traceCmd.Flags().StringP("format", "f", "", "Output format: text, markdown, json")
}

func inputArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}
