package assert

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type demoGenerator struct{}

func (demoGenerator) Prompting() {}
func (demoGenerator) Writing()   {}

func TestImplement(t *testing.T) {
	g := demoGenerator{}

	Implement(t, g, []string{"Prompting", "Writing"})
	Implement(t, g, demoGenerator{})
	Implement(t, map[string]any{"run": func() {}}, []string{"run"})

	m := record(func(mt *mockT) { Implement(mt, g, []string{"Prompting", "Install", "End"}) })
	require.Len(t, m.failures, 1, "all missing members in one failure")
	require.Equal(t, "expected subject to implement: Install, End", m.failures[0])
}

func TestImplement_InterfacePointer(t *testing.T) {
	Implement(t, strings.NewReader("x"), (*io.Reader)(nil))

	m := record(func(mt *mockT) { Implement(mt, demoGenerator{}, (*io.Reader)(nil)) })
	require.Len(t, m.failures, 1)
	require.Contains(t, m.failures[0], "Read")
}

func TestNotImplement(t *testing.T) {
	g := demoGenerator{}

	NotImplement(t, g, []string{"Install", "End"})

	m := record(func(mt *mockT) { NotImplement(mt, g, []string{"Writing", "Install", "Prompting"}) })
	require.Len(t, m.failures, 1, "all present members in one failure")
	require.Equal(t, "expected subject to not implement: Writing, Prompting", m.failures[0])
}
