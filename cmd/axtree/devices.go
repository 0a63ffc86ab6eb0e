package main

import (
	"fmt"
	"os"

	"github.com/aretw0/axtree/internal/cli"
	"github.com/aretw0/axtree/internal/logging"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the configured devices",
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptions(cmd)
		factory, err := cli.LoadDevices(opts, logging.NewNop())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(domain.ExitFailure)
		}
		cli.PrintDevices(os.Stdout, factory.List(), factory.Default())
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
