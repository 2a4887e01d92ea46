// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	ErrConfigInvalid = "CONFIG_INVALID"

	// Tool errors
	ErrToolNotFound = "TOOL_NOT_FOUND"
	ErrRefAmbiguous = "REF_AMBIGUOUS"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// State errors
	ErrStateError = "STATE_ERROR"

	// Validation errors
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrInvalidJSON      = "INVALID_JSON"
	ErrPathNotFound     = "PATH_NOT_FOUND"
	ErrDecodeFailed     = "DECODE_FAILED"
	ErrInvalidRegex     = "INVALID_REGEX"
	ErrUnknownColor     = "UNKNOWN_COLOR"

	// Lookup errors
	ErrThemeNotFound    = "THEME_NOT_FOUND"
	ErrCategoryNotFound = "CATEGORY_NOT_FOUND"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnUsageNotRecorded = "USAGE_NOT_RECORDED"
	WarnFuzzyResolved    = "FUZZY_RESOLVED"
	WarnNoMatches        = "NO_MATCHES"
	WarnUnknownTool      = "UNKNOWN_TOOL"
)
