// Command simcli is the interactive command-line front end for the
// simulation: load content, run a number of ticks, inspect the resulting
// metrics snapshot, and queue ship commands by hand.
package main

import (
	"os"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/cli"
)

// version is stamped at build time via -ldflags; "dev" otherwise. A
// non-empty SIMCLI_VERSION environment variable overrides it at startup.
var version = "dev"

func main() {
	if v := os.Getenv("SIMCLI_VERSION"); v != "" {
		version = v
	}
	cli.Execute(version)
}
