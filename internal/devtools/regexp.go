package devtools

import (
	"time"

	"github.com/dlclark/regexp2"
)

// regexTimeout bounds every regex evaluation.
const regexTimeout = time.Second

// jsRegexp compiles expr with JavaScript semantics. It panics on a bad
// expression and is only used for package-level patterns.
func jsRegexp(expr string, opts regexp2.RegexOptions) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.ECMAScript|opts)
	re.MatchTimeout = regexTimeout
	return re
}

// matches reports whether re matches s, treating a timeout as no match.
func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// replaceAll replaces every match of re in s. On timeout s is returned
// unchanged along with the error.
func replaceAll(re *regexp2.Regexp, s, repl string) (string, error) {
	out, err := re.Replace(s, repl, -1, -1)
	if err != nil {
		return s, err
	}
	return out, nil
}
