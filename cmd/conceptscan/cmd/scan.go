package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/conceptscan/internal/app"
)

var (
	scanConfig    string
	scanInclude   []string
	scanExclude   []string
	scanRecursive bool
	scanSectSep   int
	scanSectMax   int
	scanFormat    string
	scanUpper     bool
	scanOutput    string
	scanWorkers   int
	scanCache     string
	scanSummary   bool
	scanFoldCase  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [dirs...]",
	Short: "Scan directories for configured concepts",
	Long:  "Searches every readable document under the given directories and renders the matches per document.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanConfig, "config", "c", "", "Concept configuration file (csv or json)")
	scanCmd.Flags().StringSliceVar(&scanInclude, "include", nil, "Glob patterns for files to include")
	scanCmd.Flags().StringSliceVar(&scanExclude, "exclude", nil, "Glob patterns for files to exclude")
	scanCmd.Flags().BoolVarP(&scanRecursive, "recursive", "r", true, "Descend into subdirectories")
	scanCmd.Flags().IntVar(&scanSectSep, "sect-sep", 0, "Max gap between matches in one section (0 = default)")
	scanCmd.Flags().IntVar(&scanSectMax, "sect-max", 0, "Max section length before a forced split (0 = unlimited)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "text", "Output format: text or html")
	scanCmd.Flags().BoolVar(&scanUpper, "uppercase", true, "Uppercase matched text in text output")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Write output to file instead of stdout")
	scanCmd.Flags().IntVarP(&scanWorkers, "parallel", "p", 1, "Number of worker goroutines")
	scanCmd.Flags().StringVar(&scanCache, "cache", "", "Path to result cache database")
	scanCmd.Flags().BoolVar(&scanSummary, "summary", false, "Append per-concept term counts after each document")
	scanCmd.Flags().BoolVar(&scanFoldCase, "fold-case", false, "Merge case variants in the summary")
	scanCmd.MarkFlagRequired("config")
}

func runScan(cmd *cobra.Command, args []string) error {
	out := os.Stdout
	if scanOutput != "" {
		f, err := os.Create(scanOutput)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		defer f.Close()
		out = f
	}

	a, err := app.New(app.Options{
		ConfigPath:     scanConfig,
		Dirs:           args,
		Include:        scanInclude,
		Exclude:        scanExclude,
		Recursive:      scanRecursive,
		SectionSep:     scanSectSep,
		SectionMax:     scanSectMax,
		Format:         scanFormat,
		UppercaseMatch: scanUpper,
		Output:         out,
		Summary:        scanSummary,
		FoldCase:       scanFoldCase,
		Workers:        scanWorkers,
		CachePath:      scanCache,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Scan()
}
