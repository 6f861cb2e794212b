// conceptscan is a lexical concept search engine for document sets.
// Concepts are configured as term lists or regex sheets; matches are
// sectioned, summarized, and rendered as text or HTML.
package main

import (
	"os"

	"github.com/corey/conceptscan/cmd/conceptscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
