package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cuebridge/internal/adapter/cue"
	"cuebridge/internal/domain"
	"cuebridge/internal/infra/config"
	"cuebridge/internal/infra/logger"
	"cuebridge/internal/infra/messages"
	"cuebridge/internal/usecase"
)

// app wires the bridge together. Construction is explicit: config, logger
// and message catalog are built here and injected, never fetched globally.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	close  func() error
	msgs   *messages.Catalog
	runner *cue.ExecRunner
	bridge *usecase.Bridge
}

type commonFlags struct {
	configPath string
	cuePath    string
	timeout    time.Duration
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	f := &commonFlags{}
	fs.StringVar(&f.configPath, "config", "cuebridge.yaml", "config file")
	fs.StringVar(&f.cuePath, "cue", "", "explicit cue executable path")
	fs.DurationVar(&f.timeout, "timeout", 0, "per-invocation timeout")
	return f
}

func newApp(f *commonFlags) (*app, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.cuePath != "" {
		cfg.Cue.ExecutablePath = f.cuePath
	}

	timeout, err := cfg.Cue.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if f.timeout > 0 {
		timeout = f.timeout
	}

	log, closer, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, err
	}

	msgs, err := messages.Load(cfg.Locale)
	if err != nil {
		_ = closer()
		return nil, err
	}

	runner := cue.NewExecRunner(log)
	bridge := usecase.NewBridge(runner, cue.NewVetOutputParser(), usecase.Options{
		ExecutablePath: cfg.Cue.ExecutablePath,
		Timeout:        timeout,
	}, log)

	return &app{
		cfg:    cfg,
		logger: log,
		close:  closer,
		msgs:   msgs,
		runner: runner,
		bridge: bridge,
	}, nil
}

// fail prints the localized message for err and converts it into a silent
// exit code so main does not print the raw error a second time.
func (a *app) fail(err error) error {
	fmt.Fprintln(os.Stderr, a.msgs.Get(domain.MessageKeyOf(err)))
	a.logger.Error("command failed",
		"code", domain.ErrorCodeOf(err),
		"error", err,
	)
	return exitCode(1)
}

// exitCode signals main to exit with the wrapped code without printing.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit code %d", int(e)) }

func asExitCode(err error, code *exitCode) bool { return errors.As(err, code) }
