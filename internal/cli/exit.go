package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/roach88/trurl/internal/edit"
)

// Exit codes. Every terminal error category has its own code.
const (
	ExitSuccess = 0
	ExitFile    = 1 // URL file or recipe unreadable, output failed
	ExitAppend  = 2 // --append mistake
	ExitArg     = 3 // an option misses its argument
	ExitFlag    = 4 // unknown option, or one given too often
	ExitSet     = 5 // a --set problem
	ExitMemory  = 6 // out of memory
	ExitURL     = 7 // the components do not add up to a URL
)

const (
	progName    = "trurl"
	errorPrefix = progName + " error: "
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from the command.
type ExitError struct {
	Code    int    // Exit code (one of the Exit constants)
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

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFile for errors that carry no code,
// which are I/O failures.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFile
}

// categoryCodes maps terminal error categories to exit codes.
var categoryCodes = map[edit.Category]int{
	edit.CategoryFile:   ExitFile,
	edit.CategoryAppend: ExitAppend,
	edit.CategoryArg:    ExitArg,
	edit.CategoryFlag:   ExitFlag,
	edit.CategorySet:    ExitSet,
	edit.CategoryMemory: ExitMemory,
	edit.CategoryURL:    ExitURL,
}

// asExitError gives err the exit code of its category. Errors that already
// carry a code are returned unchanged.
func asExitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	var editErr *edit.Error
	if errors.As(err, &editErr) {
		code, ok := categoryCodes[editErr.Category]
		if !ok {
			code = ExitFile
		}
		return NewExitError(code, editErr.Message)
	}
	return WrapExitError(ExitFile, "transform failed", err)
}

// PrintError writes a terminal error the way the command reports it:
// the message, then a pointer to the help text.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s%s\n%sTry %s -h for help\n", errorPrefix, err.Error(), errorPrefix, progName)
}
