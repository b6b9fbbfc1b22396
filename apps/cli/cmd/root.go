package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "yoassert",
	Short: "Assert the shape of generated file trees.",
	Long: `yoassert verifies the output of code generators and scaffolding
tools. Declare the files, contents, JSON structure and database state
you expect in a yoassert.yaml manifest, then run the checks against a
generated directory.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsageError)
	}
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
