package partial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name      string
		candidate any
		expected  any
		ok        bool
		path      string
	}{
		{
			name:      "flat subset",
			candidate: map[string]any{"a": 1, "b": 2},
			expected:  map[string]any{"a": 1},
			ok:        true,
		},
		{
			name:      "nested subset with extra keys",
			candidate: map[string]any{"a": map[string]any{"b": 1}, "c": 2},
			expected:  map[string]any{"a": map[string]any{"b": 1}},
			ok:        true,
		},
		{
			name:      "nested value differs",
			candidate: map[string]any{"a": map[string]any{"b": 1}},
			expected:  map[string]any{"a": map[string]any{"b": 2}},
			ok:        false,
			path:      "a.b",
		},
		{
			name:      "array prefix containment",
			candidate: map[string]any{"b": []any{0, "a"}},
			expected:  map[string]any{"b": []any{0}},
			ok:        true,
		},
		{
			name:      "array element differs",
			candidate: map[string]any{"b": []any{0, "a"}},
			expected:  map[string]any{"b": []any{1}},
			ok:        false,
			path:      "b.0",
		},
		{
			name:      "expected array longer than candidate",
			candidate: map[string]any{"b": []any{0}},
			expected:  map[string]any{"b": []any{0, "a"}},
			ok:        false,
			path:      "b.1",
		},
		{
			name:      "missing key fails",
			candidate: map[string]any{"a": 1},
			expected:  map[string]any{"missing": 1},
			ok:        false,
			path:      "missing",
		},
		{
			name:      "missing nested region fails at its leaf",
			candidate: map[string]any{},
			expected:  map[string]any{"a": map[string]any{"b": 1}},
			ok:        false,
			path:      "a.b",
		},
		{
			name:      "null leaf equals null",
			candidate: map[string]any{"a": nil},
			expected:  map[string]any{"a": nil},
			ok:        true,
		},
		{
			name:      "absent key is not null",
			candidate: map[string]any{},
			expected:  map[string]any{"a": nil},
			ok:        false,
			path:      "a",
		},
		{
			name:      "scalar where object expected",
			candidate: map[string]any{"a": 5},
			expected:  map[string]any{"a": map[string]any{"b": 1}},
			ok:        false,
			path:      "a.b",
		},
		{
			name:      "objects inside arrays",
			candidate: map[string]any{"deps": []any{map[string]any{"name": "lodash", "dev": false}}},
			expected:  map[string]any{"deps": []any{map[string]any{"name": "lodash"}}},
			ok:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Contains(tt.candidate, tt.expected)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var m *Mismatch
			require.True(t, errors.As(err, &m), "want a *Mismatch, got %T", err)
			assert.Equal(t, tt.path, m.Path)
		})
	}
}

func TestContains_StructCandidate(t *testing.T) {
	type pkg struct {
		Name    string         `json:"name"`
		Version string         `json:"version"`
		Scripts map[string]any `json:"scripts"`
	}

	candidate := pkg{Name: "demo", Version: "1.0.0", Scripts: map[string]any{"test": "jest"}}

	assert.NoError(t, Contains(candidate, map[string]any{"name": "demo"}))
	assert.NoError(t, Contains(candidate, map[string]any{"scripts": map[string]any{"test": "jest"}}))
	assert.Error(t, Contains(candidate, map[string]any{"name": "other"}))
}

func TestContains_NotComparable(t *testing.T) {
	err := Contains(map[string]any{"ch": make(chan int)}, map[string]any{"ch": 1})
	require.Error(t, err)
	var m *Mismatch
	assert.False(t, errors.As(err, &m), "normalization failures are not mismatches")
}

func TestExcludes(t *testing.T) {
	tests := []struct {
		name      string
		candidate any
		expected  any
		ok        bool
	}{
		{
			name:      "leaf differs",
			candidate: map[string]any{"a": 1},
			expected:  map[string]any{"a": 2},
			ok:        true,
		},
		{
			name:      "leaf equals",
			candidate: map[string]any{"a": 1},
			expected:  map[string]any{"a": 1},
			ok:        false,
		},
		{
			name:      "nested leaf equals",
			candidate: map[string]any{"a": map[string]any{"b": 1}},
			expected:  map[string]any{"a": map[string]any{"b": 1}},
			ok:        false,
		},
		{
			name:      "nested leaf differs",
			candidate: map[string]any{"a": map[string]any{"b": 1}},
			expected:  map[string]any{"a": map[string]any{"b": 2}},
			ok:        true,
		},
		{
			name:      "absent nested region counts as not containing",
			candidate: map[string]any{"other": 1},
			expected:  map[string]any{"a": map[string]any{"b": 1}},
			ok:        true,
		},
		{
			name:      "absent leaf counts as not containing",
			candidate: map[string]any{},
			expected:  map[string]any{"a": 1},
			ok:        true,
		},
		{
			name:      "array element equals",
			candidate: map[string]any{"b": []any{0, "a"}},
			expected:  map[string]any{"b": []any{0}},
			ok:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Excludes(tt.candidate, tt.expected)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				var m *Mismatch
				require.True(t, errors.As(err, &m))
				assert.True(t, m.Negated)
			}
		})
	}
}

// A candidate can fail Contains and Excludes at once: the two walks agree on
// structure but demand opposite things at different leaves.
func TestContainsAndExcludesAreNotComplements(t *testing.T) {
	candidate := map[string]any{"a": 1, "b": 2}
	expected := map[string]any{"a": 1, "b": 3}

	assert.Error(t, Contains(candidate, expected), "b differs, so containment fails")
	assert.Error(t, Excludes(candidate, expected), "a matches, so exclusion fails")
}

func TestMismatchMessages(t *testing.T) {
	err := Contains(map[string]any{"a": map[string]any{"b": 1}}, map[string]any{"a": map[string]any{"b": 2}})
	require.Error(t, err)
	assert.Equal(t, "a.b: expected 2, got 1", err.Error())

	err = Contains(map[string]any{}, map[string]any{"port": 8080})
	require.Error(t, err)
	assert.Equal(t, "port: expected 8080, got <missing>", err.Error())

	err = Excludes(map[string]any{"port": 8080}, map[string]any{"port": 8080})
	require.Error(t, err)
	assert.Equal(t, "port: expected not to equal 8080", err.Error())
}
