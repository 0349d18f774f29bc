// Package main is the entry point for the onecode editor.
package main

import (
	"fmt"
	"os"

	zone "github.com/lrstanley/bubblezone"

	"github.com/onecode/onecode/cmd"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	zone.NewGlobal()

	versionString := fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	cmd.SetVersion(versionString)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
