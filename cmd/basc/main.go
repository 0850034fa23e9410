// basc compiles scene files into timed overlay animation scripts.
//
// Usage:
//
//	basc compile <scene> [-o file] [--archive db]
//	basc validate <scene>
//	basc sample <scene> --at <time> [--item id]
//	basc history <scene-name> --archive db
//	basc test <scenarios-dir> [--filter glob] [--update]
//
// Global flags --format (text|json) and --verbose default to BASC_FORMAT and
// BASC_VERBOSE; --archive defaults to BASC_ARCHIVE.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/basc/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		// Commands report to stdout in the selected format; this line is for the terminal
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
