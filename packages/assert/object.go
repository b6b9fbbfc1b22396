package assert

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/yeoman/yeoman-assert/packages/matcher"
	"github.com/yeoman/yeoman-assert/packages/partial"
	"github.com/yeoman/yeoman-assert/packages/probe"
)

// ObjectContent asserts that candidate contains expected: every key expected
// names must be present with an equal value, recursing through nested
// objects and array indexes. Extra keys in candidate are fine.
func ObjectContent(t TestingT, candidate, expected any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	err := partial.Contains(candidate, expected)
	if err == nil {
		return true
	}
	var m *partial.Mismatch
	if errors.As(err, &m) {
		return failf(t, "object content mismatch: %v", m)
	}
	return fatalf(t, "%v", err)
}

// NoObjectContent asserts that candidate does not contain expected. The walk
// mirrors ObjectContent, but each leaf must differ; a key candidate lacks
// counts as not containing it.
func NoObjectContent(t TestingT, candidate, expected any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	err := partial.Excludes(candidate, expected)
	if err == nil {
		return true
	}
	var m *partial.Mismatch
	if errors.As(err, &m) {
		return failf(t, "unexpected object content: %v", m)
	}
	return fatalf(t, "%v", err)
}

// JSONFileContent asserts that the JSON file at path exists, parses, and
// contains expected under ObjectContent rules. A file that does not parse
// stops the test: a malformed fixture would fail every later check too.
func JSONFileContent(t TestingT, path string, expected any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !probe.Exists(path) {
		return failf(t, "%s, no such file or directory", path)
	}
	doc, err := probe.ReadJSON(path)
	if err != nil {
		return fatalf(t, "%v", err)
	}
	if err := partial.Contains(doc, expected); err != nil {
		var m *partial.Mismatch
		if errors.As(err, &m) {
			return failf(t, "%s: %v", path, m)
		}
		return fatalf(t, "%s: %v", path, err)
	}
	return true
}

// NoJSONFileContent asserts that the JSON file at path exists, parses, and
// does not contain expected under NoObjectContent rules.
func NoJSONFileContent(t TestingT, path string, expected any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !probe.Exists(path) {
		return failf(t, "%s, no such file or directory", path)
	}
	doc, err := probe.ReadJSON(path)
	if err != nil {
		return fatalf(t, "%v", err)
	}
	if err := partial.Excludes(doc, expected); err != nil {
		var m *partial.Mismatch
		if errors.As(err, &m) {
			return failf(t, "%s: %v", path, m)
		}
		return fatalf(t, "%s: %v", path, err)
	}
	return true
}

// JSONFileContentAt asserts the value at a gjson dotted query inside the
// JSON file at path. A *regexp.Regexp or matcher.Matcher want is matched
// against the value's textual form; any other want, strings included, must
// equal the value after JSON normalization.
func JSONFileContentAt(t TestingT, path, query string, want any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !probe.Exists(path) {
		return failf(t, "%s, no such file or directory", path)
	}
	res, err := probe.ReadJSONPath(path, query)
	if err != nil {
		return fatalf(t, "%v", err)
	}
	if !res.Exists() {
		return failf(t, "%s: no value at %q", path, query)
	}

	var m matcher.Matcher
	switch w := want.(type) {
	case *regexp.Regexp:
		m = matcher.Regexp(w)
	case matcher.Matcher:
		m = w
	}
	if m != nil {
		if !m.MatchString(res.String()) {
			return failf(t, "%s: value at %q did not match %s, got %s", path, query, m, res.Raw)
		}
		return true
	}

	equal, err := jsonEqual(res.Value(), want)
	if err != nil {
		return fatalf(t, "%s: %v", path, err)
	}
	if !equal {
		return failf(t, "%s: value at %q = %s, want %v", path, query, res.Raw, want)
	}
	return true
}

// JSONFileSchema validates the JSON file at path against the JSON Schema at
// schemaPath. Schema problems stop the test; document violations are
// reported in full.
func JSONFileSchema(t TestingT, path, schemaPath string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !probe.Exists(path) {
		return failf(t, "%s, no such file or directory", path)
	}
	if !probe.Exists(schemaPath) {
		return fatalf(t, "%s, no such file or directory", schemaPath)
	}
	doc, err := probe.ReadText(path)
	if err != nil {
		return fatalf(t, "%s: %v", path, err)
	}
	schema, err := probe.ReadText(schemaPath)
	if err != nil {
		return fatalf(t, "%s: %v", schemaPath, err)
	}

	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewStringLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fatalf(t, "%s: schema validation error: %v", path, err)
	}
	if result.Valid() {
		return true
	}

	var msgs []string
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return failf(t, "%s does not validate against %s: %s", path, schemaPath, strings.Join(msgs, "; "))
}

// jsonEqual compares two values after a JSON round-trip, so an int64 from a
// database meets an untyped literal and maps compare without key-order
// sensitivity.
func jsonEqual(got, want any) (bool, error) {
	gb, err := canonicalJSON(got)
	if err != nil {
		return false, err
	}
	wb, err := canonicalJSON(want)
	if err != nil {
		return false, err
	}
	return bytes.Equal(gb, wb), nil
}

func canonicalJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var norm any
	if err := json.Unmarshal(b, &norm); err != nil {
		return nil, err
	}
	return json.Marshal(norm)
}
