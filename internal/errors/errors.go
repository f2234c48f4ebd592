package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Spec errors (SPEC-001 to SPEC-099)
	ErrCodeSpecNotFound  ErrorCode = "SPEC-001"
	ErrCodeSpecInvalid   ErrorCode = "SPEC-002"
	ErrCodeSpecUnmarshal ErrorCode = "SPEC-003"
	ErrCodeSpecMarshal   ErrorCode = "SPEC-004"

	// Task board errors (BOARD-001 to BOARD-099)
	ErrCodeBoardNotFound    ErrorCode = "BOARD-001"
	ErrCodeBoardInvalid     ErrorCode = "BOARD-002"
	ErrCodeBoardTaskMissing ErrorCode = "BOARD-003"

	// Lifecycle stage errors (STAGE-001 to STAGE-099)
	ErrCodeStageFailed    ErrorCode = "STAGE-001"
	ErrCodeStageArtifact  ErrorCode = "STAGE-002"
	ErrCodeStageWorkspace ErrorCode = "STAGE-003"
	ErrCodeStageSummary   ErrorCode = "STAGE-004"
	ErrCodeStageClarify   ErrorCode = "STAGE-005"
	ErrCodeStageIntegrate ErrorCode = "STAGE-006"

	// Provider errors (PROVIDER-001 to PROVIDER-099)
	ErrCodeProviderNotConfigured ErrorCode = "PROVIDER-001"
	ErrCodeProviderCall          ErrorCode = "PROVIDER-002"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"
	ErrCodeConfigLoad    ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
	ErrCodeFileMarshal     ErrorCode = "IO-006"
)

// SwarmError represents an enhanced error with code, suggestions, and documentation
type SwarmError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *SwarmError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *SwarmError) Unwrap() error {
	return e.Cause
}

// New creates a new SwarmError
func New(code ErrorCode, message string) *SwarmError {
	return &SwarmError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new SwarmError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *SwarmError {
	return &SwarmError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *SwarmError) WithSuggestion(suggestion string) *SwarmError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *SwarmError) WithSuggestions(suggestions ...string) *SwarmError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *SwarmError) WithDocs(url string) *SwarmError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewSpecNotFoundError creates a spec file not found error
func NewSpecNotFoundError(path string) *SwarmError {
	return New(ErrCodeSpecNotFound, fmt.Sprintf("project specification not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Run 'swarm run --spec <file>' with an explicit spec path")
}

// NewSpecInvalidError creates a spec validation error
func NewSpecInvalidError(details string) *SwarmError {
	return New(ErrCodeSpecInvalid, fmt.Sprintf("invalid project specification: %s", details)).
		WithSuggestion("Check the spec schema requirements").
		WithSuggestion("Every feature needs an id, a name, and at least one acceptance criterion")
}

// NewBoardTaskMissingError creates a missing task board entry error
func NewBoardTaskMissingError(taskID string) *SwarmError {
	return New(ErrCodeBoardTaskMissing, fmt.Sprintf("task board entry not found: %s", taskID)).
		WithSuggestion("The task board may be from an older run; re-run the plan stage").
		WithSuggestion("Check <project>/.swarm/taskboard.json for the expected entry")
}

// NewBoardNotFoundError creates a task board not found error
func NewBoardNotFoundError(projectPath string) *SwarmError {
	return New(ErrCodeBoardNotFound, fmt.Sprintf("no task board found under: %s", projectPath)).
		WithSuggestion("Run 'swarm run' to create a task board for this project")
}

// NewProviderNotConfiguredError creates an error for a run without an agent command
func NewProviderNotConfiguredError() *SwarmError {
	return New(ErrCodeProviderNotConfigured, "no agent command configured").
		WithSuggestion("Pass --agent-cmd with the command that bridges to your agent").
		WithSuggestion("Use --dry-run to exercise the pipeline without a live agent")
}

// NewProviderCallError creates an error for a failed agent command invocation
func NewProviderCallError(detail string, cause error) *SwarmError {
	return Wrap(ErrCodeProviderCall, fmt.Sprintf("agent command failed: %s", detail), cause).
		WithSuggestion("Check that the agent command is on PATH and executable").
		WithSuggestion("Run the command by hand with a JSON request on stdin to reproduce")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *SwarmError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}

// NewConfigLoadError creates a configuration load error
func NewConfigLoadError(path string, cause error) *SwarmError {
	return Wrap(ErrCodeConfigLoad, fmt.Sprintf("failed to load configuration: %s", path), cause).
		WithSuggestion("Check the configuration file syntax").
		WithSuggestion("Use SWARM_* environment variables to override individual settings")
}
