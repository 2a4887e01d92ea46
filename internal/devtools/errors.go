package devtools

import "errors"

// Sentinel errors returned (possibly wrapped) by the tools.
var (
	ErrInvalidJSON   = errors.New("invalid JSON")
	ErrInvalidBase64 = errors.New("failed to decode from Base64")
	ErrInvalidUTF8   = errors.New("decoded bytes are not valid UTF-8")
	ErrMalformedURI  = errors.New("failed to decode URL")
	ErrInvalidRegex  = errors.New("invalid regular expression")
	ErrUnknownColor  = errors.New("unrecognized color format")
	ErrPathNotFound  = errors.New("path not found")
)

// ValidationError describes one problem found by a validator.
type ValidationError struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ValidationResult is the outcome of a validator.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

func valid() ValidationResult {
	return ValidationResult{Valid: true, Errors: []ValidationError{}}
}

func invalid(e ValidationError) ValidationResult {
	return ValidationResult{Valid: false, Errors: []ValidationError{e}}
}
