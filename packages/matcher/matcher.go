// Package matcher decides whether a body of text matches a target pattern.
//
// Two pattern kinds are supported: a literal string, matched as a
// case-sensitive contiguous substring, and a regular expression, matched in
// unanchored full-text search mode. No other pattern kinds exist; content
// assertions treat anything else as a caller error.
package matcher

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher reports whether a body of text satisfies a pattern. String returns
// a printable form of the pattern for failure messages.
type Matcher interface {
	MatchString(body string) bool
	String() string
}

type textMatcher string

func (m textMatcher) MatchString(body string) bool { return strings.Contains(body, string(m)) }
func (m textMatcher) String() string               { return fmt.Sprintf("%q", string(m)) }

type regexpMatcher struct {
	re *regexp.Regexp
}

func (m regexpMatcher) MatchString(body string) bool { return m.re.MatchString(body) }
func (m regexpMatcher) String() string               { return "/" + m.re.String() + "/" }

// Text returns a matcher that succeeds when the body contains s as a
// contiguous substring. No escaping or case folding is applied.
func Text(s string) Matcher {
	return textMatcher(s)
}

// Regexp returns a matcher that succeeds when re matches anywhere in the body.
func Regexp(re *regexp.Regexp) Matcher {
	return regexpMatcher{re: re}
}

// From converts a caller-supplied pattern into a Matcher. A string becomes a
// substring matcher, a *regexp.Regexp a regexp matcher, and a Matcher is
// returned unchanged. Any other kind is an error.
func From(pattern any) (Matcher, error) {
	switch p := pattern.(type) {
	case string:
		return Text(p), nil
	case *regexp.Regexp:
		return Regexp(p), nil
	case Matcher:
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported pattern kind %T (want string, *regexp.Regexp or matcher.Matcher)", pattern)
	}
}
