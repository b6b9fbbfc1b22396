package probe

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExists(t *testing.T) {
	path := writeFile(t, "present.txt", "hello")

	assert.True(t, Exists(path))
	assert.True(t, Exists(filepath.Dir(path)), "directories count as existing")
	assert.False(t, Exists(filepath.Join(t.TempDir(), "absent.txt")))
}

func TestReadText(t *testing.T) {
	path := writeFile(t, "body.txt", "line one\nline two\n")

	body, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", body)

	_, err = ReadText(filepath.Join(t.TempDir(), "absent.txt"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadJSON(t *testing.T) {
	path := writeFile(t, "pkg.json", `{"name": "demo", "version": 2, "keywords": ["a", "b"]}`)

	v, err := ReadJSON(path)
	require.NoError(t, err)

	obj, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "demo", obj["name"])
	assert.Equal(t, float64(2), obj["version"])
	assert.Equal(t, []any{"a", "b"}, obj["keywords"])
}

func TestReadJSON_ParseError(t *testing.T) {
	path := writeFile(t, "broken.json", `{"name": `)

	_, err := ReadJSON(path)
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, path, perr.Path)
}

func TestReadJSON_NotFound(t *testing.T) {
	_, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	var perr *ParseError
	assert.False(t, errors.As(err, &perr), "a missing file is not a parse error")
}

func TestReadJSONPath(t *testing.T) {
	path := writeFile(t, "pkg.json", `{"scripts": {"test": "jest"}, "deps": [{"name": "lodash"}]}`)

	res, err := ReadJSONPath(path, "scripts.test")
	require.NoError(t, err)
	assert.True(t, res.Exists())
	assert.Equal(t, "jest", res.String())

	res, err = ReadJSONPath(path, "deps.0.name")
	require.NoError(t, err)
	assert.Equal(t, "lodash", res.String())

	res, err = ReadJSONPath(path, "scripts.build")
	require.NoError(t, err)
	assert.False(t, res.Exists())
}

func TestReadJSONPath_InvalidJSON(t *testing.T) {
	path := writeFile(t, "broken.json", `not json at all`)

	_, err := ReadJSONPath(path, "a.b")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
}
