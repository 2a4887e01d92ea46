package devtools

import (
	"encoding/base64"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

var base64Pattern = jsRegexp(`^[A-Za-z0-9+/]*={0,2}$`, regexp2.None)

// EncodeBase64 encodes the UTF-8 bytes of input.
func EncodeBase64(input string) string {
	return base64.StdEncoding.EncodeToString([]byte(input))
}

// DecodeBase64 decodes input and requires the result to be UTF-8 text.
// ASCII whitespace is ignored and missing padding is tolerated.
func DecodeBase64(input string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)

	var (
		data []byte
		err  error
	)
	if len(cleaned)%4 == 0 {
		data, err = base64.StdEncoding.DecodeString(cleaned)
	} else {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(cleaned, "="))
	}
	if err != nil {
		return "", ErrInvalidBase64
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return string(data), nil
}

// ValidateBase64 checks that input only uses the Base64 alphabet and padding.
func ValidateBase64(input string) ValidationResult {
	if !matches(base64Pattern, strings.TrimSpace(input)) {
		return invalid(ValidationError{
			Message:    "Invalid Base64 format",
			Suggestion: "Base64 should only contain A-Z, a-z, 0-9, +, /, and = for padding",
		})
	}
	return valid()
}
