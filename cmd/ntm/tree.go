package main

import (
	"github.com/aretw0/ntm/internal/cli"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree <machine> [input]",
	Short: "Export the configuration tree of a trace as Mermaid",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		code, err := session.Tree(cmd.Context(), args[0], inputArg(args), cli.TreeOptions{
			MaxDepth: session.Config.MaxDepth,
			Limit:    limit,
		})
		exitCode = code
		return err
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().IntP("max-depth", "d", 0, "Deepest level to explore")
	treeCmd.Flags().Int("limit", 200, "Maximum number of configurations drawn")
}
