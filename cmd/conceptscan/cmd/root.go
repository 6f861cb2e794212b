package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corey/conceptscan/internal/logger"
)

var (
	logLevel  string
	logPretty bool
)

var rootCmd = &cobra.Command{
	Use:   "conceptscan",
	Short: "conceptscan — lexical concept search for document sets",
	Long:  "Scans documents for configured concepts (term lists or regex sheets), sections the matches, and renders annotated output.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Config{Level: logLevel, Pretty: logPretty})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "Human-readable log output")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(watchCmd)
}
