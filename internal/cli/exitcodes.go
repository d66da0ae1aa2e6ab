package cli

import (
	"errors"

	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/services/pipeline"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested item or stage was not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data, such as a field
	// that is not key=value.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty titles, titles that are too long, blank IDs.
	ExitValidation = 5
)

// UsageError marks errors caused by how the command was invoked
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// DataError marks malformed input data
type DataError struct {
	Err error
}

func (e *DataError) Error() string { return e.Err.Error() }
func (e *DataError) Unwrap() error { return e.Err }

// ReportedError marks errors that were already shown to the user
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to its exit code
func ExitCode(err error) int {
	var usage *UsageError
	var data *DataError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage):
		return ExitUsage
	case errors.As(err, &data):
		return ExitDataErr
	case errors.Is(err, models.ErrItemNotFound), errors.Is(err, models.ErrStageNotFound):
		return ExitNotFound
	case errors.Is(err, pipeline.ErrEmptyTitle),
		errors.Is(err, pipeline.ErrTitleTooLong),
		errors.Is(err, pipeline.ErrInvalidItemID),
		errors.Is(err, pipeline.ErrInvalidStageID):
		return ExitValidation
	default:
		return ExitError
	}
}

// ErrorCode is the machine readable code reported in JSON output
func ErrorCode(err error) string {
	switch ExitCode(err) {
	case ExitUsage:
		return "USAGE"
	case ExitDataErr:
		return "INVALID_DATA"
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitValidation:
		return "VALIDATION"
	default:
		return "ERROR"
	}
}
