package assert

// TestingT is the minimal testing surface the assertions need. *testing.T,
// *testing.B and testify-compatible harnesses all satisfy it.
type TestingT interface {
	Errorf(format string, args ...any)
	FailNow()
}

// tHelper marks assertion helpers so failures point at the caller's line.
type tHelper interface {
	Helper()
}

func failf(t TestingT, format string, args ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	t.Errorf(format, args...)
	return false
}

func fatalf(t TestingT, format string, args ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	t.Errorf(format, args...)
	t.FailNow()
	return false
}
