package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/claude/periodize/internal/engine"
	"github.com/claude/periodize/internal/microcycle"
	"github.com/claude/periodize/internal/registry"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Simulation rejected the input
	ExitCommandError = 2 // Command error (bad registry file, unreachable server, etc.)
)

// Error code constants shared by all commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeUnknownID    = "E002" // Block kind or ability outside the registry
	ErrCodeTooLarge     = "E003" // Program exceeds the block limit
	ErrCodeTrainingDays = "E004" // Unsupported training days per week
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs data as JSON, or calls text to render it for humans.
func (f *OutputFormatter) Success(data any, text func(io.Writer) error) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	return text(f.Writer)
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Fail reports err and returns the ExitError the command should exit with.
func (f *OutputFormatter) Fail(err error) error {
	code, exit := classifyError(err)
	if outErr := f.Error(code, err.Error()); outErr != nil {
		return outErr
	}
	return WrapExitError(exit, code, err)
}

func classifyError(err error) (string, int) {
	switch {
	case errors.Is(err, registry.ErrConfiguration):
		return ErrCodeUnknownID, ExitFailure
	case errors.Is(err, engine.ErrProgramTooLarge):
		return ErrCodeTooLarge, ExitFailure
	case errors.Is(err, microcycle.ErrInvalidTrainingDays):
		return ErrCodeTrainingDays, ExitFailure
	default:
		return ErrCodeGeneric, ExitCommandError
	}
}
