package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/axtree"
	"github.com/aretw0/axtree/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of axtree",
	Run: func(cmd *cobra.Command, args []string) {
		noColor, _ := cmd.Flags().GetBool("no-color")
		tui.PrintBanner(os.Stdout, tui.DetectProfile(os.Stdout, noColor))
		fmt.Printf("axtree version %s\n", strings.TrimSpace(axtree.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
