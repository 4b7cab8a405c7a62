package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/modelscan/internal/modelscan"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

func logic(ctx context.Context, options modelscan.Options, stdout, stderr io.Writer) error {
	enableProgress := options.Output == "table" &&
		!options.Debug &&
		isTerminal(stderr)

	if ctx == nil {
		ctx = context.Background()
	}

	// Simple progress callback that prints directly to stderr
	var progressHook func(dirs, hits int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		fmt.Fprint(stderr, "\r\033[2KScanning for model files…\r")

		progressHook = func(dirs, hits int64) {
			msg := fmt.Sprintf("Scanning… %s dirs, %s models", humanize.Comma(dirs), humanize.Comma(hits))
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	options.DebugWriter = stderr

	result, err := modelscan.Run(ctx, options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch options.Output {
	case "json":
		return PrintJSON(result, stdout)
	case "paths":
		return PrintPaths(result.Records, stdout)
	case "table":
		return PrintReport(result.Records, stdout)
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
