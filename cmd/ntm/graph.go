package main

import (
	"github.com/aretw0/ntm/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <machine>",
	Short: "Export the state diagram as Mermaid",
	Long: `Outputs a Mermaid diagram (graph LR) of the states and transitions of <machine>.
With --input, the accepting path of a trace on that input is highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.GraphOptions{MaxDepth: session.Config.MaxDepth}
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			opts.Input = &input
		}
		return session.Graph(cmd.Context(), args[0], opts)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("input", "i", "", "Highlight the accepting path for this input")
	graphCmd.Flags().IntP("max-depth", "d", 0, "Depth bound for the highlighted trace")
}
