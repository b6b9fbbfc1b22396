package assert

import (
	tassert "github.com/stretchr/testify/assert"
)

// The conventional primitives delegate to testify, so suites built on this
// package keep a single assertion import.

// Equal asserts that expected and actual are equal.
func Equal(t TestingT, expected, actual any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return tassert.Equal(t, expected, actual, msgAndArgs...)
}

// NotEqual asserts that expected and actual are not equal.
func NotEqual(t TestingT, expected, actual any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return tassert.NotEqual(t, expected, actual, msgAndArgs...)
}

// True asserts that value is true.
func True(t TestingT, value bool, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return tassert.True(t, value, msgAndArgs...)
}

// False asserts that value is false.
func False(t TestingT, value bool, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return tassert.False(t, value, msgAndArgs...)
}

// Nil asserts that object is nil.
func Nil(t TestingT, object any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return tassert.Nil(t, object, msgAndArgs...)
}

// NotNil asserts that object is not nil.
func NotNil(t TestingT, object any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return tassert.NotNil(t, object, msgAndArgs...)
}

// NoError asserts that err is nil.
func NoError(t TestingT, err error, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return tassert.NoError(t, err, msgAndArgs...)
}

// Error asserts that err is non-nil.
func Error(t TestingT, err error, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return tassert.Error(t, err, msgAndArgs...)
}

// Panics asserts that f panics when called.
func Panics(t TestingT, f func(), msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return tassert.Panics(t, f, msgAndArgs...)
}

// NotPanics asserts that f completes without panicking.
func NotPanics(t TestingT, f func(), msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return tassert.NotPanics(t, f, msgAndArgs...)
}
