package cue

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"cuebridge/internal/domain"
)

// ToolName is the canonical executable name searched on PATH when no
// explicit path is configured.
const ToolName = "cue"

// defaultWaitDelay bounds how long a killed child may linger before its
// I/O pipes are forcibly closed.
const defaultWaitDelay = 2 * time.Second

// ExecRunner runs the cue binary via os/exec. It holds no mutable state,
// so a single instance is safe for concurrent use.
type ExecRunner struct {
	logger    *slog.Logger
	waitDelay time.Duration
}

// NewExecRunner creates an ExecRunner logging through the given logger.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{logger: logger, waitDelay: defaultWaitDelay}
}

// Resolve returns the executable path to invoke. A non-empty configured path
// must reference an executable file; an empty one falls back to a PATH
// search for the canonical tool name. Resolution is fresh per call.
func (r *ExecRunner) Resolve(configured string) (string, error) {
	if configured != "" {
		if !isExecutableFile(configured) {
			return "", &domain.BridgeError{
				Op:         "Runner.Resolve",
				Err:        domain.ErrExecutableNotFound,
				Detail:     configured,
				MessageKey: domain.MsgUserPathNotExecutable,
			}
		}
		return configured, nil
	}

	path, err := exec.LookPath(ToolName)
	if err != nil {
		return "", &domain.BridgeError{
			Op:         "Runner.Resolve",
			Err:        domain.ErrExecutableNotFound,
			Detail:     fmt.Sprintf("%q not on PATH", ToolName),
			MessageKey: domain.MsgExecutableNotFound,
		}
	}
	return path, nil
}

// Execute launches one OS process and blocks until exit, timeout, or
// cancellation. The child inherits the parent environment so shell-specific
// setup is honored. A timed-out or cancelled child is killed rather than
// leaked; no retries happen at this layer.
func (r *ExecRunner) Execute(ctx context.Context, inv domain.Invocation) (domain.ExecutionResult, error) {
	id := ulid.Make().String()

	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, inv.Path, inv.Args...)
	cmd.WaitDelay = r.waitDelay
	if inv.Stdin != nil {
		// os/exec owns the pipe: the payload is fully written and the
		// stream closed on every exit path, including write failures.
		cmd.Stdin = strings.NewReader(*inv.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("cue invocation",
		"invocation_id", id,
		"path", inv.Path,
		"args", inv.Args,
		"timeout", inv.Timeout,
	)

	runErr := cmd.Run()
	result := domain.ExecutionResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	switch {
	case runErr == nil:
		result.Status = domain.StatusCompleted
		result.ExitCode = 0
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		result.Status = domain.StatusTimedOut
		r.logger.Warn("cue invocation timed out",
			"invocation_id", id, "timeout", inv.Timeout)
	case ctx.Err() != nil:
		result.Status = domain.StatusCancelled
		r.logger.Debug("cue invocation cancelled", "invocation_id", id)
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.Status = domain.StatusCompleted
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.Status = domain.StatusNotStarted
			r.logger.Error("cue invocation failed to launch",
				"invocation_id", id, "error", runErr)
			return result, &domain.BridgeError{
				Op:         "Runner.Execute",
				Err:        fmt.Errorf("%w: %w", domain.ErrExecuteFailed, runErr),
				Detail:     inv.Path,
				MessageKey: domain.MsgExecuteError,
			}
		}
	}

	r.logger.Debug("cue invocation finished",
		"invocation_id", id,
		"status", result.Status,
		"exit_code", result.ExitCode,
	)
	return result, nil
}

// isExecutableFile reports whether path names a regular file with execute
// permission.
func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
