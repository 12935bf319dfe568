// Command tokens-sync compiles design-system/tokens into
// design-system/generated/tokens.css relative to the working directory.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/grounds-studio/grounds/internal/tokens"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr))
}

func run(stdout, stderr io.Writer) int {
	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	policy, err := tokens.DefaultPolicy()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).Level(zerolog.WarnLevel)
	pipeline := tokens.NewPipeline(tokens.DefaultPaths(root), tokens.Options{Policy: policy}, logger)

	report, err := pipeline.Sync()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "Wrote %s\n", report.Output)
	return 0
}
