package assert

import (
	"errors"
	"fmt"
)

// mockT records failures instead of failing the enclosing test.
type mockT struct {
	failures []string
	fatal    bool
}

func (m *mockT) Errorf(format string, args ...any) {
	m.failures = append(m.failures, fmt.Sprintf(format, args...))
}

func (m *mockT) FailNow() {
	m.fatal = true
	panic(errFailNow)
}

var errFailNow = errors.New("fail now")

// record runs fn against a fresh recorder, swallowing the FailNow sentinel
// the way a real harness stops a test goroutine.
func record(fn func(t *mockT)) *mockT {
	m := &mockT{}
	func() {
		defer func() {
			if r := recover(); r != nil && r != errFailNow {
				panic(r)
			}
		}()
		fn(m)
	}()
	return m
}
