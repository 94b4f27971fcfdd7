package main

import (
	"os"

	"github.com/cardkit-labs/cardkit/internal/card"
	"github.com/cardkit-labs/cardkit/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(card.NewRegistries(), version, commit, date); err != nil {
		os.Exit(1)
	}
}
