package devtools

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// unreserved reports whether c passes through encodeURIComponent untouched.
func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// EncodeURLComponent percent-encodes input the way browsers'
// encodeURIComponent does: spaces become %20 and only letters, digits and
// -_.!~*'() are left as is.
func EncodeURLComponent(input string) string {
	var sb strings.Builder
	sb.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if unreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

// DecodeURLComponent reverses EncodeURLComponent. A '+' is left alone.
// Malformed escapes or escapes that decode to invalid UTF-8 are errors.
func DecodeURLComponent(input string) (string, error) {
	out, err := url.PathUnescape(input)
	if err != nil {
		return "", ErrMalformedURI
	}
	if !utf8.ValidString(out) {
		return "", ErrMalformedURI
	}
	return out, nil
}

// ValidateURL checks that input is an absolute URL.
func ValidateURL(input string) ValidationResult {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return invalid(ValidationError{
			Message:    "Invalid URL format",
			Suggestion: "URL should start with http:// or https://",
		})
	}
	return valid()
}
