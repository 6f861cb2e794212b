package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/conceptscan/internal/adapters/bbolt"
)

var (
	cachePath string
	wipeForce bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the result cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached text and result counts",
	RunE:  runCacheStats,
}

var cacheWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cached texts and results",
	RunE:  runCacheWipe,
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "Path to result cache database")
	cacheCmd.MarkPersistentFlagRequired("cache")
	cacheWipeCmd.Flags().BoolVar(&wipeForce, "force", false, "Skip confirmation prompt")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheWipeCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	store, err := bbolt.NewStore(cachePath)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	texts, results, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("texts:   %d\nresults: %d\n", texts, results)
	return nil
}

func runCacheWipe(cmd *cobra.Command, args []string) error {
	if !wipeForce {
		fmt.Printf("This will delete all cached data in %s. Continue? [y/N] ", cachePath)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("cancelled")
			return nil
		}
	}

	store, err := bbolt.NewStore(cachePath)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	if err := store.Wipe(); err != nil {
		return err
	}
	fmt.Println("cache wiped")
	return nil
}
