package cue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuebridge/internal/domain"
)

func testRunner() *ExecRunner {
	return NewExecRunner(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func strPtr(s string) *string { return &s }

func TestExecuteCapturesOutput(t *testing.T) {
	skipOnWindows(t)

	res, err := testRunner().Execute(context.Background(), domain.Invocation{
		Path:    "/bin/sh",
		Args:    []string{"-c", "printf out; printf err >&2"},
		Timeout: 10 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, res.Status)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out", res.Stdout)
	assert.Equal(t, "err", res.Stderr)
}

func TestExecuteNonZeroExit(t *testing.T) {
	skipOnWindows(t)

	res, err := testRunner().Execute(context.Background(), domain.Invocation{
		Path:    "/bin/sh",
		Args:    []string{"-c", "printf findings; exit 3"},
		Timeout: 10 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, res.Status)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "findings", res.Stdout)
}

func TestExecuteWritesStdin(t *testing.T) {
	skipOnWindows(t)

	res, err := testRunner().Execute(context.Background(), domain.Invocation{
		Path:    "/bin/sh",
		Args:    []string{"-c", "cat"},
		Stdin:   strPtr("a: 1\n"),
		Timeout: 10 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, res.Status)
	assert.Equal(t, "a: 1\n", res.Stdout)
}

func TestExecuteTimeoutKillsChild(t *testing.T) {
	skipOnWindows(t)

	start := time.Now()
	res, err := testRunner().Execute(context.Background(), domain.Invocation{
		Path:    "/bin/sh",
		Args:    []string{"-c", "sleep 30"},
		Timeout: 100 * time.Millisecond,
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusTimedOut, res.Status)
	// Timeout plus bounded overhead, far below the child's sleep.
	assert.Less(t, elapsed, 5*time.Second)
}

func TestExecutePropagatesCancellation(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	res, err := testRunner().Execute(ctx, domain.Invocation{
		Path:    "/bin/sh",
		Args:    []string{"-c", "sleep 30"},
		Timeout: time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, res.Status)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecuteSpawnFailure(t *testing.T) {
	res, err := testRunner().Execute(context.Background(), domain.Invocation{
		Path:    filepath.Join(t.TempDir(), "no-such-binary"),
		Timeout: time.Second,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExecuteFailed))
	assert.Equal(t, domain.StatusNotStarted, res.Status)

	var be *domain.BridgeError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, domain.MsgExecuteError, be.MessageKey)
}

func TestResolveConfiguredExecutable(t *testing.T) {
	skipOnWindows(t)

	path := filepath.Join(t.TempDir(), "cue")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	got, err := testRunner().Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolveConfiguredNotExecutable(t *testing.T) {
	skipOnWindows(t)

	path := filepath.Join(t.TempDir(), "cue")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644))

	_, err := testRunner().Resolve(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExecutableNotFound))

	var be *domain.BridgeError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, domain.MsgUserPathNotExecutable, be.MessageKey)
}

func TestResolveConfiguredMissing(t *testing.T) {
	_, err := testRunner().Resolve(filepath.Join(t.TempDir(), "absent"))
	assert.True(t, errors.Is(err, domain.ErrExecutableNotFound))
}

func TestResolveConfiguredDirectory(t *testing.T) {
	_, err := testRunner().Resolve(t.TempDir())
	assert.True(t, errors.Is(err, domain.ErrExecutableNotFound))
}

func TestResolveSearchPathMiss(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := testRunner().Resolve("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExecutableNotFound))

	var be *domain.BridgeError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, domain.MsgExecutableNotFound, be.MessageKey)
}

func TestResolveSearchPathHit(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ToolName)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("PATH", dir)

	got, err := testRunner().Resolve("")
	require.NoError(t, err)
	assert.Equal(t, path, got)
}
