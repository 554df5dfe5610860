package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"cuebridge/internal/domain"
)

// vetConcurrency bounds how many cue processes run at once when several
// files are checked together.
const vetConcurrency = 4

var (
	errLabel = color.New(color.FgRed, color.Bold)
	posStyle = color.New(color.FgCyan)
)

func runVet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("vet", flag.ExitOnError)
	f := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	files := fs.Args()
	if len(files) == 0 {
		return fmt.Errorf("vet: at least one file argument required")
	}

	a, err := newApp(f)
	if err != nil {
		return err
	}
	defer a.close()

	// Each invocation is independent, so files are checked concurrently.
	results := make([][]domain.Diagnostic, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(vetConcurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			diags, err := a.bridge.Vet(gctx, file)
			results[i] = diags
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return a.fail(err)
	}

	total := 0
	for _, diags := range results {
		for _, d := range diags {
			printDiagnostic(d)
			total++
		}
	}
	if total == 0 {
		fmt.Println(a.msgs.Get("vet.clean"))
		return nil
	}
	return exitCode(1)
}

func printDiagnostic(d domain.Diagnostic) {
	fmt.Printf("%s %s %s\n",
		errLabel.Sprint("error"),
		posStyle.Sprintf("%s:%d:%d:", d.File, d.Line, d.Column),
		d.Message,
	)
}
