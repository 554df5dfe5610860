package domain

import (
	"context"
	"time"
)

// CompletionStatus is the lifecycle outcome of a single tool invocation.
type CompletionStatus string

const (
	// StatusCompleted means the process ran to exit and the exit code is valid.
	StatusCompleted CompletionStatus = "completed"
	// StatusTimedOut means the wall-clock timeout elapsed and the process was killed.
	StatusTimedOut CompletionStatus = "timed_out"
	// StatusCancelled means the caller's context was cancelled and the process was killed.
	StatusCancelled CompletionStatus = "cancelled"
	// StatusNotStarted means the process never launched (spawn or I/O failure).
	StatusNotStarted CompletionStatus = "not_started"
)

// Invocation describes one call to the external cue binary.
// Values are constructed per call and never reused or persisted.
type Invocation struct {
	Path    string        // absolute path to the executable
	Args    []string      // ordered argument list, excluding argv[0]
	Stdin   *string       // payload written to stdin, nil = no stdin
	Timeout time.Duration // wall-clock limit; <= 0 means no limit
}

// ExecutionResult carries everything the runner observed about one invocation.
// Stdout and Stderr are only trustworthy when Status is StatusCompleted.
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	Status   CompletionStatus
	ExitCode int // meaningful only for StatusCompleted
}

// Completed reports whether the process ran to exit with the given code.
func (r ExecutionResult) Completed(code int) bool {
	return r.Status == StatusCompleted && r.ExitCode == code
}

// Runner resolves and executes the external tool. Implementations must be
// safe for concurrent use: each Execute call owns its own process handle.
type Runner interface {
	// Resolve returns the executable path to invoke. A non-empty configured
	// path must point at an executable file; an empty one falls back to a
	// search of the environment PATH. Fails with ErrExecutableNotFound.
	Resolve(configured string) (string, error)

	// Execute launches one OS process and blocks until exit, timeout, or
	// cancellation of ctx. A timed-out or cancelled child is killed, never
	// leaked. Launch and stream I/O failures return ErrExecuteFailed.
	Execute(ctx context.Context, inv Invocation) (ExecutionResult, error)
}

// VetParser converts the raw textual output of a check invocation into
// structured diagnostics anchored to the given file.
type VetParser interface {
	Parse(file string, raw string) []Diagnostic
}
