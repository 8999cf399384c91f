// Command fissure counts cells covered by two or more axis-aligned segments.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/fissure/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintf(os.Stderr, "fissure: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
