// Package cli implements the thingbus command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// logLevel is the persistent log level flag shared by all subcommands.
	logLevel string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "thingbus",
	Short: "thingbus is the addressing toolbox of the thingbus platform",
	Long: `thingbus builds, parses and resolves the addressing artifacts of the
thingbus message-routing platform: canonical topic paths and placeholder
templates used in connection configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("thingbus %s (%s)\n", Version, Commit)
	},
}
