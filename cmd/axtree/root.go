package main

import (
	"fmt"
	"os"

	"github.com/aretw0/axtree/internal/cli"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "axtree",
	Short: "axtree inspects and drives applications through their accessibility tree",
	Long: `axtree addresses accessible elements by path ("/0/1") to dump subtrees,
report attributes, invoke actions, set text or values and synthesize mouse
and keyboard input.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(domain.ExitUsage)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Device registry file (default $AXTREE_CONFIG or ~/.config/axtree/devices.yaml)")
	rootCmd.PersistentFlags().StringP("device", "d", "", "Device name, file:<dump> or host[:port]")
	rootCmd.PersistentFlags().Bool("debug", false, "Log requests to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured status lines")
}

func runOptions(cmd *cobra.Command) cli.RunOptions {
	configPath, _ := cmd.Flags().GetString("config")
	device, _ := cmd.Flags().GetString("device")
	debug, _ := cmd.Flags().GetBool("debug")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return cli.RunOptions{
		ConfigPath: configPath,
		Device:     device,
		Debug:      debug,
		NoColor:    noColor,
	}
}
