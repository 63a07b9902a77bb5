package main

import (
	"github.com/aretw0/ntm/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <machine> [input]",
	Short: "Run a deterministic k-tape machine",
	Long: `Runs <machine> deterministically, applying the first matching rule at each step,
until it halts or the step limit is reached.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}
		history, _ := cmd.Flags().GetBool("history")
		code, err := session.Run(cmd.Context(), args[0], inputArg(args), cli.RunOptions{
			MaxSteps: session.Config.MaxSteps,
			Format:   format,
			History:  history,
		})
		exitCode = code
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("max-steps", "s", 0, "Step limit (default from config, 1000)")
	runCmd.Flags().StringP("format", "f", "", "Output format: text, markdown, json")
	runCmd.Flags().Bool("history", false, "Record every step")
}
