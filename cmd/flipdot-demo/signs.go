package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BeatGlow/flipdot/sign"
)

func init() { rootCmd.AddCommand(signsCmd) }

var signsCmd = &cobra.Command{
	Use:   "signs",
	Short: "list supported sign types",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range sign.SignTypes() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %dx%d\n", t, t.Width(), t.Height())
		}
	},
}
