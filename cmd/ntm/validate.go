package main

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [machine...]",
	Short: "Check machines for consistency",
	Long: `Reports unreachable states, an unreachable accept state, states without outgoing
transitions and nondeterministic choices. Without arguments every machine of the
library is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := session.Validate(args)
		exitCode = code
		return err
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
