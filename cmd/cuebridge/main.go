package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			showUsage()
			return
		}
	}
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(2)
	}

	// Ctrl-C must reach the running cue child process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "fmt":
		err = runFmt(ctx, os.Args[2:])
	case "vet":
		err = runVet(ctx, os.Args[2:])
	case "doctor":
		err = runDoctor(os.Args[2:])
	case "version":
		runVersion()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		showUsage()
		os.Exit(2)
	}

	if err != nil {
		var code exitCode
		if ok := asExitCode(err, &code); ok {
			os.Exit(int(code))
		}
		fmt.Fprintf(os.Stderr, "cuebridge: %v\n", err)
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Print(`cuebridge - bridge to the cue command-line tool

Usage:
  cuebridge fmt [flags] [file]       format stdin (or file) through cue fmt
  cuebridge vet [flags] <file>...    check files and print diagnostics
  cuebridge doctor [flags]           report which cue executable would run
  cuebridge version                  print the version

Flags (fmt, vet, doctor):
  --config path    config file (default: cuebridge.yaml)
  --cue path       explicit cue executable, overrides config
  --timeout dur    per-invocation timeout, e.g. 10s

Environment:
  CUEBRIDGE_CUE_PATH, CUEBRIDGE_TIMEOUT, CUEBRIDGE_LOCALE
`)
}
