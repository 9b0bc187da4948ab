// Package main provides the entry point for the aigit CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/aigit/internal/cli"
)

// Set at build time via -ldflags.
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	err := cli.Execute(context.Background(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	cli.CloseLogFile()
	os.Exit(cli.ExitCodeForError(err))
}
