package assert

import (
	"strings"

	"github.com/yeoman/yeoman-assert/packages/capability"
)

// Implement asserts that subject provides every member spec names. spec may
// be a []string of member names, a pointer to an interface such as
// (*io.Reader)(nil), or another object whose own callable members form the
// expectation. All missing members are reported at once.
func Implement(t TestingT, subject, spec any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if capability.Implements(subject, spec) {
		return true
	}
	missing := capability.Of(subject).Missing(capability.Members(spec)...)
	if len(missing) == 0 {
		return true
	}
	return failf(t, "expected subject to implement: %s", strings.Join(missing, ", "))
}

// NotImplement asserts that subject provides none of the members spec names.
// All unexpectedly present members are reported at once.
func NotImplement(t TestingT, subject, spec any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	present := capability.Of(subject).Present(capability.Members(spec)...)
	if len(present) == 0 {
		return true
	}
	return failf(t, "expected subject to not implement: %s", strings.Join(present, ", "))
}
