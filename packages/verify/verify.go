// Package verify executes manifest checks against a generated directory
// tree. Checks run in manifest order, each against a fresh failure recorder,
// so one broken artifact never hides the verdict on the rest.
package verify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/yeoman/yeoman-assert/packages/assert"
	"github.com/yeoman/yeoman-assert/packages/manifest"
)

// Result is the outcome of one manifest check.
type Result struct {
	Desc     string   `json:"desc"`
	Passed   bool     `json:"passed"`
	Messages []string `json:"messages,omitempty"`
}

// Summary is the outcome of a full verification run.
type Summary struct {
	RunID    string        `json:"runId"`
	Root     string        `json:"root"`
	Manifest string        `json:"manifest"`
	Results  []Result      `json:"results"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// Run executes every check in m against root. A single pass, no retries:
// verifying a generated tree is cheap enough to just run again.
func Run(root string, m *manifest.Manifest) *Summary {
	start := time.Now()
	s := &Summary{
		RunID:    uuid.New().String(),
		Root:     root,
		Manifest: m.Path,
	}

	for i := range m.Checks {
		res := runCheck(root, m, &m.Checks[i])
		s.Results = append(s.Results, res)
		if res.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}

	s.Duration = time.Since(start)
	return s
}

var errStop = errors.New("check stopped")

// recorder satisfies assert.TestingT, collecting failures instead of failing
// a test. FailNow unwinds the current check; runCheck recovers the sentinel
// so the remaining checks still execute.
type recorder struct {
	messages []string
}

func (r *recorder) Errorf(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func (r *recorder) FailNow() {
	panic(errStop)
}

func runCheck(root string, m *manifest.Manifest, e *manifest.Entry) Result {
	rec := &recorder{}
	func() {
		defer func() {
			if r := recover(); r != nil && r != errStop {
				panic(r)
			}
		}()
		apply(rec, root, m, e)
	}()

	return Result{
		Desc:     e.Desc(),
		Passed:   len(rec.messages) == 0,
		Messages: rec.messages,
	}
}

func apply(t assert.TestingT, root string, m *manifest.Manifest, e *manifest.Entry) {
	switch {
	case len(e.File) > 0:
		assert.File(t, resolveAll(root, e.File)...)
	case len(e.NoFile) > 0:
		assert.NoFile(t, resolveAll(root, e.NoFile)...)
	case e.FileContent != nil:
		mt, err := e.FileContent.Matcher()
		if err != nil {
			t.Errorf("%v", err)
			t.FailNow()
			return
		}
		assert.FileContent(t, resolve(root, e.FileContent.Path), mt)
	case e.NoFileContent != nil:
		mt, err := e.NoFileContent.Matcher()
		if err != nil {
			t.Errorf("%v", err)
			t.FailNow()
			return
		}
		assert.NoFileContent(t, resolve(root, e.NoFileContent.Path), mt)
	case e.EqualsFileContent != nil:
		c := e.EqualsFileContent
		var want string
		if c.Text != nil {
			want = *c.Text
		} else {
			data, err := os.ReadFile(resolve(m.Dir, c.Fixture))
			if err != nil {
				t.Errorf("failed to read fixture: %v", err)
				t.FailNow()
				return
			}
			want = string(data)
		}
		assert.EqualsFileContent(t, resolve(root, c.Path), want)
	case e.JSONFileContent != nil:
		assert.JSONFileContent(t, resolve(root, e.JSONFileContent.Path), e.JSONFileContent.Content)
	case e.NoJSONFileContent != nil:
		assert.NoJSONFileContent(t, resolve(root, e.NoJSONFileContent.Path), e.NoJSONFileContent.Content)
	case e.JSONPath != nil:
		want, err := e.JSONPath.Want()
		if err != nil {
			t.Errorf("%v", err)
			t.FailNow()
			return
		}
		assert.JSONFileContentAt(t, resolve(root, e.JSONPath.Path), e.JSONPath.Query, want)
	case e.JSONSchema != nil:
		assert.JSONFileSchema(t, resolve(root, e.JSONSchema.Path), resolve(m.Dir, e.JSONSchema.Schema))
	case len(e.Glob) > 0:
		for _, pattern := range e.Glob {
			globCheck(t, root, pattern, true)
		}
	case len(e.NoGlob) > 0:
		for _, pattern := range e.NoGlob {
			globCheck(t, root, pattern, false)
		}
	case e.SQLiteTable != nil:
		assert.SQLiteTable(t, resolve(root, e.SQLiteTable.Path), e.SQLiteTable.Table)
	case e.SQLiteColumn != nil:
		c := e.SQLiteColumn
		assert.SQLiteColumn(t, resolve(root, c.Path), c.Table, c.Column)
	}
}

func globCheck(t assert.TestingT, root, pattern string, wantMatch bool) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		t.Errorf("glob %s: %v", pattern, err)
		t.FailNow()
		return
	}
	switch {
	case wantMatch && len(matches) == 0:
		t.Errorf("glob %s matched nothing", pattern)
	case !wantMatch && len(matches) > 0:
		t.Errorf("glob %s matched %s", pattern, strings.Join(matches, ", "))
	}
}

// resolve anchors a manifest path at base; absolute paths are taken as-is.
func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func resolveAll(base string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolve(base, p)
	}
	return out
}
