package assert

import (
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/yeoman/yeoman-assert/packages/matcher"
	"github.com/yeoman/yeoman-assert/packages/probe"
)

// File asserts that every path exists. Directories count: an empty scaffolded
// directory is as much an artifact as a written file.
func File(t TestingT, paths ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	ok := true
	for _, p := range paths {
		if !probe.Exists(p) {
			ok = failf(t, "%s, no such file or directory", p)
		}
	}
	return ok
}

// NoFile asserts that every path does not exist.
func NoFile(t TestingT, paths ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	ok := true
	for _, p := range paths {
		if probe.Exists(p) {
			ok = failf(t, "expected %s to not exist", p)
		}
	}
	return ok
}

// FileContent asserts that the file at path exists and matches want: a plain
// string is a substring match, a *regexp.Regexp a pattern match. The
// existence check fails on its own terms, so a missing file never reads as a
// content mismatch.
func FileContent(t TestingT, path string, want any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return FileContentAll(t, oneCheck(path, want))
}

// FileContentAll runs FileContent over every check independently.
func FileContentAll(t TestingT, checks []Check) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	ok := true
	for _, c := range checks {
		if !matchFile(t, c.Path, c.Want, true) {
			ok = false
		}
	}
	return ok
}

// NoFileContent asserts that the file at path exists and does not match
// want.
func NoFileContent(t TestingT, path string, want any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return NoFileContentAll(t, oneCheck(path, want))
}

// NoFileContentAll runs NoFileContent over every check independently.
func NoFileContentAll(t TestingT, checks []Check) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	ok := true
	for _, c := range checks {
		if !matchFile(t, c.Path, c.Want, false) {
			ok = false
		}
	}
	return ok
}

func matchFile(t TestingT, path string, want any, wantMatch bool) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	m, err := matcher.From(want)
	if err != nil {
		return fatalf(t, "%s: %v", path, err)
	}
	if !probe.Exists(path) {
		return failf(t, "%s, no such file or directory", path)
	}
	body, err := probe.ReadText(path)
	if err != nil {
		return fatalf(t, "%s: %v", path, err)
	}
	switch {
	case wantMatch && !m.MatchString(body):
		return failf(t, "%s did not match %s, contents:\n\n%s", path, m, body)
	case !wantMatch && m.MatchString(body):
		return failf(t, "%s matched %s", path, m)
	}
	return true
}

// EqualsFileContent asserts that the file at path exists and its content
// equals want once line endings on both sides are normalized to LF.
func EqualsFileContent(t TestingT, path, want string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return EqualsFileContentAll(t, oneCheck(path, want))
}

// EqualsFileContentAll runs EqualsFileContent over every check. Want values
// must be strings.
func EqualsFileContentAll(t TestingT, checks []Check) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	ok := true
	for _, c := range checks {
		want, isString := c.Want.(string)
		if !isString {
			return fatalf(t, "%s: expected content must be a string, got %T", c.Path, c.Want)
		}
		if !equalsFile(t, c.Path, want) {
			ok = false
		}
	}
	return ok
}

func equalsFile(t TestingT, path, want string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !probe.Exists(path) {
		return failf(t, "%s, no such file or directory", path)
	}
	body, err := probe.ReadText(path)
	if err != nil {
		return fatalf(t, "%s: %v", path, err)
	}
	got, wantLF := normalizeEOL(body), normalizeEOL(want)
	if got == wantLF {
		return true
	}
	return failf(t, "%s content mismatch (-want +got):\n%s", path, cmp.Diff(wantLF, got))
}

// TextEqual asserts that two strings are equal once CRLF line endings are
// normalized to LF on both sides. Lone carriage returns are left alone.
func TextEqual(t TestingT, value, expected string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	got, want := normalizeEOL(value), normalizeEOL(expected)
	if got == want {
		return true
	}
	return failf(t, "text mismatch (-want +got):\n%s", cmp.Diff(want, got))
}

func normalizeEOL(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
