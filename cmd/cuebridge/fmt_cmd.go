package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
)

func runFmt(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	f := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(f)
	if err != nil {
		return err
	}
	defer a.close()

	var content []byte
	switch rest := fs.Args(); len(rest) {
	case 0:
		content, err = io.ReadAll(os.Stdin)
	case 1:
		content, err = os.ReadFile(rest[0])
	default:
		return fmt.Errorf("fmt: at most one file argument")
	}
	if err != nil {
		return fmt.Errorf("fmt: read input: %w", err)
	}

	out, ok, err := a.bridge.Format(ctx, string(content))
	if err != nil {
		return a.fail(err)
	}
	if !ok {
		fmt.Fprintln(os.Stderr, a.msgs.Get("format.unavailable"))
		return exitCode(1)
	}

	fmt.Print(out)
	return nil
}
