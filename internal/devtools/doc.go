// Package devtools implements the text utilities behind each catalog tool:
// JSON formatting, Base64 and URL codecs, regex testing, minification, color
// conversion and Markdown rendering.
//
// Every function works on in-memory strings. Failures are reported as errors
// (or a ValidationResult for the validators); nothing panics on bad input.
package devtools
