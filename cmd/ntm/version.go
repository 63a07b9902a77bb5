package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/ntm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ntm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ntm version %s\n", strings.TrimSpace(ntm.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
