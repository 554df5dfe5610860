package usecase

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"cuebridge/internal/domain"
)

// DefaultTimeout is the wall-clock limit applied when none is configured.
const DefaultTimeout = 5 * time.Second

// Options configures a Bridge.
type Options struct {
	ExecutablePath string        // explicit cue path, "" = search PATH
	Timeout        time.Duration // per-invocation limit, <= 0 = DefaultTimeout
}

// Bridge orchestrates format and check invocations of the cue binary.
// Dependencies are injected; there is no global accessor. A Bridge holds no
// mutable state and is safe for concurrent use.
type Bridge struct {
	runner domain.Runner
	parser domain.VetParser
	opts   Options
	logger *slog.Logger
}

// NewBridge creates a Bridge from its collaborators.
func NewBridge(runner domain.Runner, parser domain.VetParser, opts Options, logger *slog.Logger) *Bridge {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{runner: runner, parser: parser, opts: opts, logger: logger}
}

// WithTimeout returns a copy of the bridge using the given timeout.
func (b *Bridge) WithTimeout(timeout time.Duration) *Bridge {
	opts := b.opts
	opts.Timeout = timeout
	return NewBridge(b.runner, b.parser, opts, b.logger)
}

// Format runs `cue fmt -` with content on stdin. It returns the raw stdout
// and true only when the process completed with exit code 0. Timeouts,
// cancellation and non-zero exits degrade to ("", false, nil): formatting
// failures are silent at this layer and only logged.
func (b *Bridge) Format(ctx context.Context, content string) (string, bool, error) {
	res, err := b.run(ctx, &content, "fmt", "-")
	if err != nil {
		return "", false, err
	}
	if !res.Completed(0) {
		b.logger.Debug("formatting unavailable",
			"status", res.Status,
			"exit_code", res.ExitCode,
			"stderr", res.Stderr,
		)
		return "", false, nil
	}
	return res.Stdout, true, nil
}

// Vet runs `cue vet` on the file's absolute path and parses the grouped
// diagnostics from stdout. Records are anchored to file exactly as the
// caller passed it. cue vet exits non-zero whenever findings exist, so
// output is parsed for any completed exit code; only a timed-out, cancelled
// or never-started process yields no diagnostics.
func (b *Bridge) Vet(ctx context.Context, file string) ([]domain.Diagnostic, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, domain.WrapOp("Bridge.Vet", err)
	}

	res, err := b.run(ctx, nil, "vet", abs)
	if err != nil {
		return nil, err
	}
	if res.Status != domain.StatusCompleted {
		b.logger.Debug("vet produced no usable output",
			"file", file, "status", res.Status)
		return nil, nil
	}
	return b.parser.Parse(file, res.Stdout), nil
}

// run resolves the executable fresh and performs one invocation.
func (b *Bridge) run(ctx context.Context, stdin *string, args ...string) (domain.ExecutionResult, error) {
	path, err := b.runner.Resolve(b.opts.ExecutablePath)
	if err != nil {
		return domain.ExecutionResult{Status: domain.StatusNotStarted}, err
	}
	return b.runner.Execute(ctx, domain.Invocation{
		Path:    path,
		Args:    args,
		Stdin:   stdin,
		Timeout: b.opts.Timeout,
	})
}
