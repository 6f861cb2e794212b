package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/conceptscan/internal/adapters/config"
	"github.com/corey/conceptscan/internal/domain/pattern"
)

var conceptsConfig string

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "List the concepts and patterns a configuration defines",
	RunE:  runConcepts,
}

func init() {
	conceptsCmd.Flags().StringVarP(&conceptsConfig, "config", "c", "", "Concept configuration file (csv or json)")
	conceptsCmd.MarkFlagRequired("config")
}

func runConcepts(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().Load(conceptsConfig)
	if err != nil {
		return err
	}
	registry, err := pattern.Build(cfg)
	if err != nil {
		return err
	}

	for _, p := range registry.Patterns() {
		mode := "case-sensitive"
		if p.IgnoreCase {
			mode = "case-insensitive"
		}
		fmt.Printf("%-24s %-16s %s\n", p.Concept, mode, p.Expr)
	}
	fmt.Printf("\n%d patterns across %d concepts\n", registry.Len(), len(registry.Concepts()))
	return nil
}
