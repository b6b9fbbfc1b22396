// Package manifest loads the YAML verification plans the yoassert CLI runs
// against generated directory trees.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/yeoman/yeoman-assert/packages/matcher"
)

// Filenames contains the manifest names searched in order when none is given
// explicitly.
var Filenames = []string{
	".yoassert.yaml",
	"yoassert.yaml",
	".yoassert.yml",
	"yoassert.yml",
}

// Manifest is a verification plan: an ordered list of checks to run against
// a generated tree.
type Manifest struct {
	Checks []Entry `yaml:"checks"`

	// Path is the file the manifest was loaded from.
	Path string `yaml:"-"`
	// Dir is the directory containing it. Fixture and schema paths
	// resolve against Dir, so a manifest can travel with its golden
	// files.
	Dir string `yaml:"-"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.Path = path
	m.Dir = filepath.Dir(path)

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Find searches dir for a manifest file, trying Filenames in order.
func Find(dir string) (string, error) {
	for _, name := range Filenames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no manifest found in %s (tried %s)", dir, strings.Join(Filenames, ", "))
}

func (m *Manifest) validate() error {
	if len(m.Checks) == 0 {
		return errors.New("manifest has no checks")
	}
	for i := range m.Checks {
		if err := m.Checks[i].validate(); err != nil {
			return fmt.Errorf("checks[%d]: %w", i, err)
		}
	}
	return nil
}

// StringList accepts a single YAML scalar or a sequence of scalars, so
// `file: package.json` and `file: [a, b]` both parse.
type StringList []string

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	case yaml.SequenceNode:
		var ss []string
		if err := value.Decode(&ss); err != nil {
			return err
		}
		*l = StringList(ss)
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
	}
}

// Entry is one manifest check. Exactly one field may be set.
type Entry struct {
	File              StringList         `yaml:"file,omitempty"`
	NoFile            StringList         `yaml:"noFile,omitempty"`
	FileContent       *ContentCheck      `yaml:"fileContent,omitempty"`
	NoFileContent     *ContentCheck      `yaml:"noFileContent,omitempty"`
	EqualsFileContent *EqualsCheck       `yaml:"equalsFileContent,omitempty"`
	JSONFileContent   *JSONCheck         `yaml:"jsonFileContent,omitempty"`
	NoJSONFileContent *JSONCheck         `yaml:"noJsonFileContent,omitempty"`
	JSONPath          *JSONPathCheck     `yaml:"jsonPath,omitempty"`
	JSONSchema        *SchemaCheck       `yaml:"jsonSchema,omitempty"`
	Glob              StringList         `yaml:"glob,omitempty"`
	NoGlob            StringList         `yaml:"noGlob,omitempty"`
	SQLiteTable       *SQLiteTableCheck  `yaml:"sqliteTable,omitempty"`
	SQLiteColumn      *SQLiteColumnCheck `yaml:"sqliteColumn,omitempty"`
}

// Kind names the single check the entry carries.
func (e *Entry) Kind() (string, error) {
	var kinds []string
	if len(e.File) > 0 {
		kinds = append(kinds, "file")
	}
	if len(e.NoFile) > 0 {
		kinds = append(kinds, "noFile")
	}
	if e.FileContent != nil {
		kinds = append(kinds, "fileContent")
	}
	if e.NoFileContent != nil {
		kinds = append(kinds, "noFileContent")
	}
	if e.EqualsFileContent != nil {
		kinds = append(kinds, "equalsFileContent")
	}
	if e.JSONFileContent != nil {
		kinds = append(kinds, "jsonFileContent")
	}
	if e.NoJSONFileContent != nil {
		kinds = append(kinds, "noJsonFileContent")
	}
	if e.JSONPath != nil {
		kinds = append(kinds, "jsonPath")
	}
	if e.JSONSchema != nil {
		kinds = append(kinds, "jsonSchema")
	}
	if len(e.Glob) > 0 {
		kinds = append(kinds, "glob")
	}
	if len(e.NoGlob) > 0 {
		kinds = append(kinds, "noGlob")
	}
	if e.SQLiteTable != nil {
		kinds = append(kinds, "sqliteTable")
	}
	if e.SQLiteColumn != nil {
		kinds = append(kinds, "sqliteColumn")
	}

	switch len(kinds) {
	case 0:
		return "", errors.New("no check set")
	case 1:
		return kinds[0], nil
	default:
		return "", fmt.Errorf("mixes %s", strings.Join(kinds, " and "))
	}
}

// Desc is the one-line description reports print for the entry.
func (e *Entry) Desc() string {
	switch {
	case len(e.File) > 0:
		return "file " + strings.Join(e.File, ", ")
	case len(e.NoFile) > 0:
		return "noFile " + strings.Join(e.NoFile, ", ")
	case e.FileContent != nil:
		return "fileContent " + e.FileContent.describe()
	case e.NoFileContent != nil:
		return "noFileContent " + e.NoFileContent.describe()
	case e.EqualsFileContent != nil:
		return "equalsFileContent " + e.EqualsFileContent.Path
	case e.JSONFileContent != nil:
		return "jsonFileContent " + e.JSONFileContent.Path
	case e.NoJSONFileContent != nil:
		return "noJsonFileContent " + e.NoJSONFileContent.Path
	case e.JSONPath != nil:
		return fmt.Sprintf("jsonPath %s %s", e.JSONPath.Path, e.JSONPath.Query)
	case e.JSONSchema != nil:
		return fmt.Sprintf("jsonSchema %s against %s", e.JSONSchema.Path, e.JSONSchema.Schema)
	case len(e.Glob) > 0:
		return "glob " + strings.Join(e.Glob, ", ")
	case len(e.NoGlob) > 0:
		return "noGlob " + strings.Join(e.NoGlob, ", ")
	case e.SQLiteTable != nil:
		return fmt.Sprintf("sqliteTable %s %s", e.SQLiteTable.Path, e.SQLiteTable.Table)
	case e.SQLiteColumn != nil:
		return fmt.Sprintf("sqliteColumn %s %s.%s", e.SQLiteColumn.Path, e.SQLiteColumn.Table, e.SQLiteColumn.Column)
	default:
		return "empty check"
	}
}

func (e *Entry) validate() error {
	kind, err := e.Kind()
	if err != nil {
		return err
	}

	switch kind {
	case "fileContent", "noFileContent":
		c := e.FileContent
		if c == nil {
			c = e.NoFileContent
		}
		if c.Path == "" {
			return fmt.Errorf("%s requires path", kind)
		}
		if _, err := c.Matcher(); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	case "equalsFileContent":
		c := e.EqualsFileContent
		if c.Path == "" {
			return errors.New("equalsFileContent requires path")
		}
		if countSet(c.Text != nil, c.Fixture != "") != 1 {
			return errors.New("equalsFileContent takes exactly one of text or fixture")
		}
	case "jsonFileContent", "noJsonFileContent":
		c := e.JSONFileContent
		if c == nil {
			c = e.NoJSONFileContent
		}
		if c.Path == "" {
			return fmt.Errorf("%s requires path", kind)
		}
		if len(c.Content) == 0 {
			return fmt.Errorf("%s requires content", kind)
		}
	case "jsonPath":
		if e.JSONPath.Path == "" || e.JSONPath.Query == "" {
			return errors.New("jsonPath requires path and query")
		}
		if _, err := e.JSONPath.Want(); err != nil {
			return err
		}
	case "jsonSchema":
		if e.JSONSchema.Path == "" || e.JSONSchema.Schema == "" {
			return errors.New("jsonSchema requires path and schema")
		}
	case "glob", "noGlob":
		patterns := e.Glob
		if kind == "noGlob" {
			patterns = e.NoGlob
		}
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("%s: invalid pattern %q", kind, p)
			}
		}
	case "sqliteTable":
		if e.SQLiteTable.Path == "" || e.SQLiteTable.Table == "" {
			return errors.New("sqliteTable requires path and table")
		}
	case "sqliteColumn":
		c := e.SQLiteColumn
		if c.Path == "" || c.Table == "" || c.Column == "" {
			return errors.New("sqliteColumn requires path, table and column")
		}
	}
	return nil
}

// ContentCheck matches a file's content with a substring or a regexp.
type ContentCheck struct {
	Path     string `yaml:"path"`
	Contains string `yaml:"contains,omitempty"`
	Matches  string `yaml:"matches,omitempty"`
}

// Matcher builds the content matcher the check describes.
func (c *ContentCheck) Matcher() (matcher.Matcher, error) {
	switch {
	case c.Contains != "" && c.Matches != "":
		return nil, errors.New("takes exactly one of contains or matches")
	case c.Matches != "":
		re, err := regexp.Compile(c.Matches)
		if err != nil {
			return nil, fmt.Errorf("invalid matches pattern: %w", err)
		}
		return matcher.Regexp(re), nil
	case c.Contains != "":
		return matcher.Text(c.Contains), nil
	default:
		return nil, errors.New("requires contains or matches")
	}
}

func (c *ContentCheck) describe() string {
	m, err := c.Matcher()
	if err != nil {
		return c.Path
	}
	return fmt.Sprintf("%s %s", c.Path, m)
}

// EqualsCheck compares a file against inline text or a fixture file.
// Fixture paths resolve against the manifest's directory.
type EqualsCheck struct {
	Path    string  `yaml:"path"`
	Text    *string `yaml:"text,omitempty"`
	Fixture string  `yaml:"fixture,omitempty"`
}

// JSONCheck matches partial JSON content, key by key.
type JSONCheck struct {
	Path    string         `yaml:"path"`
	Content map[string]any `yaml:"content"`
}

// JSONPathCheck asserts the value at a gjson query inside a JSON file.
type JSONPathCheck struct {
	Path     string `yaml:"path"`
	Query    string `yaml:"query"`
	Equals   any    `yaml:"equals,omitempty"`
	Contains string `yaml:"contains,omitempty"`
	Matches  string `yaml:"matches,omitempty"`
}

// Want returns the expectation in the form the assertions take: the equals
// value as-is, contains as a substring matcher, matches as a regexp matcher.
func (c *JSONPathCheck) Want() (any, error) {
	if countSet(c.Equals != nil, c.Contains != "", c.Matches != "") != 1 {
		return nil, errors.New("jsonPath takes exactly one of equals, contains or matches")
	}
	switch {
	case c.Equals != nil:
		return c.Equals, nil
	case c.Contains != "":
		return matcher.Text(c.Contains), nil
	default:
		re, err := regexp.Compile(c.Matches)
		if err != nil {
			return nil, fmt.Errorf("jsonPath: invalid matches pattern: %w", err)
		}
		return matcher.Regexp(re), nil
	}
}

// SchemaCheck validates a JSON file against a JSON Schema. Schema paths
// resolve against the manifest's directory.
type SchemaCheck struct {
	Path   string `yaml:"path"`
	Schema string `yaml:"schema"`
}

// SQLiteTableCheck asserts a table exists in a SQLite database file.
type SQLiteTableCheck struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table"`
}

// SQLiteColumnCheck asserts a table declares a column.
type SQLiteColumnCheck struct {
	Path   string `yaml:"path"`
	Table  string `yaml:"table"`
	Column string `yaml:"column"`
}

func countSet(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
