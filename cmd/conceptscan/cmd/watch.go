package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/corey/conceptscan/internal/adapters/fsnotify"
	"github.com/corey/conceptscan/internal/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Watch directories and rescan documents as they change",
	Long:  "Runs an initial scan, then rescans any document that is created or modified until interrupted.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	// watch shares scan's configuration flags
	watchCmd.Flags().AddFlagSet(scanCmd.Flags())
}

func runWatch(cmd *cobra.Command, args []string) error {
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
		Output:         os.Stdout,
		Summary:        scanSummary,
		FoldCase:       scanFoldCase,
		Workers:        scanWorkers,
		CachePath:      scanCache,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Scan(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.Watch(args, func(path string) {
		if err := a.ScanDocument(path); err != nil {
			log.Error().Str("path", path).Err(err).Msg("rescan failed")
		}
	}); err != nil {
		return err
	}

	log.Info().Strs("dirs", args).Msg("watching for changes")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}
