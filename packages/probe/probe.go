// Package probe reads generated filesystem artifacts for the assertion layer.
package probe

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// ParseError reports a file whose content could not be decoded as JSON.
// Malformed fixture data is a setup bug rather than an assertion failure, so
// callers are expected to treat it as fatal.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid JSON: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Exists reports whether a filesystem entry is present at path. Files and
// directories are not distinguished.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadText returns the full textual content of path. A missing path yields an
// error satisfying errors.Is(err, fs.ErrNotExist).
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadJSON reads path and decodes it as JSON into the generic value domain
// (map[string]any, []any, float64, string, bool, nil). Decode failures are
// reported as a *ParseError.
func ReadJSON(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return v, nil
}

// ReadJSONPath reads path and resolves a gjson dotted query (e.g.
// "scripts.test" or "deps.0.name") inside it. The content is validated before
// the lookup so malformed JSON surfaces as a *ParseError rather than a silent
// miss. A query that resolves to nothing returns a zero gjson.Result; callers
// distinguish it via Result.Exists.
func ReadJSONPath(path, query string) (gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, err
	}

	if !gjson.ValidBytes(data) {
		return gjson.Result{}, &ParseError{Path: path, Err: fmt.Errorf("gjson: invalid document")}
	}
	return gjson.GetBytes(data, query), nil
}
