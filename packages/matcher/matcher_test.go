package matcher

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		body    string
		match   bool
	}{
		{"substring present", "use strict", `'use strict';\nvar x = 1;`, true},
		{"substring absent", "use strict", "var x = 1;", false},
		{"case sensitive", "Use Strict", "use strict", false},
		{"empty pattern matches everything", "", "anything", true},
		{"regex metacharacters are literal", "a.b", "xaybz", false},
		{"regex metacharacters match literally", "a.b", "xa.bz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, Text(tt.pattern).MatchString(tt.body))
		})
	}
}

func TestRegexp(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		body  string
		match bool
	}{
		{"unanchored match", "wor.d?", "hello world", true},
		{"no match", "^world", "hello world", false},
		{"multiline body", `var \w+ =`, "function f() {}\nvar route = 1;", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Regexp(regexp.MustCompile(tt.expr))
			assert.Equal(t, tt.match, m.MatchString(tt.body))
		})
	}
}

func TestFrom(t *testing.T) {
	m, err := From("needle")
	assert.NoError(t, err)
	assert.True(t, m.MatchString("a needle in a haystack"))

	re := regexp.MustCompile(`\d+`)
	m, err = From(re)
	assert.NoError(t, err)
	assert.True(t, m.MatchString("route 66"))
	assert.Equal(t, `/\d+/`, m.String())

	// A Matcher passes through unchanged.
	orig := Text("x")
	m, err = From(orig)
	assert.NoError(t, err)
	assert.Equal(t, orig, m)

	_, err = From(42)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported pattern kind")
}
