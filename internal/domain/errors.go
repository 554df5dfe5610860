package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the bridge layer.
var (
	// ErrExecutableNotFound is raised before any process spawns: the
	// configured path is missing or not executable, or the tool is absent
	// from the environment PATH.
	ErrExecutableNotFound = fmt.Errorf("cue executable not found")

	// ErrExecuteFailed wraps a spawn or stream I/O failure unrelated to the
	// tool's own logic.
	ErrExecuteFailed = fmt.Errorf("cue execution failed")
)

// Message-catalog keys for user-facing error text.
const (
	MsgExecutableNotFound    = "runner.executableNotFound"
	MsgUserPathNotExecutable = "runner.userPathNotExecutable"
	MsgExecuteError          = "runner.executeError"
)

// BridgeError wraps a sentinel error with operation context. MessageKey,
// when set, selects the localized user-facing text for this failure.
type BridgeError struct {
	Op         string // operation name (e.g., "Runner.Execute")
	Err        error  // underlying sentinel or wrapped error
	Detail     string // human-readable detail
	MessageKey string // message-catalog key, "" = derive from sentinel
}

func (e *BridgeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *BridgeError) Unwrap() error { return e.Err }

// NewBridgeError creates a new BridgeError.
func NewBridgeError(op string, err error, detail string) *BridgeError {
	return &BridgeError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ErrorCode is a machine-parseable error category for log correlation.
type ErrorCode string

const (
	CodeUnknown            ErrorCode = "UNKNOWN"
	CodeExecutableNotFound ErrorCode = "EXECUTABLE_NOT_FOUND"
	CodeExecuteFailed      ErrorCode = "EXECUTE_FAILED"
)

// ErrorCodeOf maps err to its ErrorCode, unwrapping as needed.
func ErrorCodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, ErrExecutableNotFound):
		return CodeExecutableNotFound
	case errors.Is(err, ErrExecuteFailed):
		return CodeExecuteFailed
	default:
		return CodeUnknown
	}
}

// MessageKeyOf maps err to the message-catalog key for user-facing text.
// Unknown errors map to the generic execution failure key.
func MessageKeyOf(err error) string {
	var be *BridgeError
	if errors.As(err, &be) && be.MessageKey != "" {
		return be.MessageKey
	}
	if errors.Is(err, ErrExecutableNotFound) {
		return MsgExecutableNotFound
	}
	return MsgExecuteError
}
