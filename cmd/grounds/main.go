// Command grounds is the Grounds site tooling CLI.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/grounds-studio/grounds/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
