package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Execute runs the absorb CLI with args and returns the process exit code.
// This is the main entry point for the CLI application.
//
// Logging:
//   - Default: the configured level, info unless set (logs to stderr)
//   - With --verbose (-v): debug level
//
// Errors are printed to stderr with their code and message unchanged, so
// that validation failures such as INVALID_FORMULA reach the user verbatim.
// A cancelled context yields exit code 130.
//
// Example:
//
//	func main() {
//	    os.Exit(cli.Execute(context.Background(), os.Args[1:]))
//	}
func Execute(ctx context.Context, args []string) int {
	return run(ctx, args, os.Stderr)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	c := New(stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(stderr)
	root.SetOut(stdout)

	err := root.ExecuteContext(ctx)
	c.teardown()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130 // Standard shell convention for SIGINT
	}
	fmt.Fprintln(stderr, styleIconError.Render(iconError)+" "+formatEngineError(err))
	return 1
}
