// Package biomemod implements the biomemod command line: run a modification
// pass over a world file, print the world file schema, and list past runs.
package biomemod

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const usage = `usage: biomemod <command> [flags]

commands:
  run      apply modifier packs to a world file
  schema   print the world file JSON schema
  history  list recorded passes`

// ErrUsage reports a missing or unknown command.
var ErrUsage = errors.New(usage)

// Main dispatches args to a command. args excludes the program name.
func Main(ctx context.Context, args []string, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if len(args) == 0 {
		return ErrUsage
	}
	command, rest := strings.TrimSpace(args[0]), args[1:]
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(errOut)

	switch command {
	case "run":
		cfg, err := ParseRunConfig(fs, rest)
		if err != nil {
			return err
		}
		return runWithTelemetry(ctx, serviceRun, func(ctx context.Context) error {
			return Run(ctx, cfg, out, errOut)
		})
	case "schema":
		cfg, err := ParseSchemaConfig(fs, rest)
		if err != nil {
			return err
		}
		return Schema(cfg, out)
	case "history":
		cfg, err := ParseHistoryConfig(fs, rest)
		if err != nil {
			return err
		}
		return runWithTelemetry(ctx, serviceHistory, func(ctx context.Context) error {
			return History(ctx, cfg, out)
		})
	case "help", "-h", "-help", "--help":
		fmt.Fprintln(out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%w", command, ErrUsage)
	}
}
