package partial

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Mismatch is the error returned when a containment (or exclusion) check
// fails. Path names the offending key as a dotted path with array indices
// inlined, e.g. "scripts.test" or "deps.0.name".
type Mismatch struct {
	Path     string
	Expected any
	Actual   any
	Missing  bool // the candidate has no value at Path
	Negated  bool // set by Excludes: the value matched where it must not
}

func (m *Mismatch) Error() string {
	if m.Negated {
		return fmt.Sprintf("%s: expected not to equal %v", m.Path, m.Expected)
	}
	if m.Missing {
		return fmt.Sprintf("%s: expected %v, got <missing>", m.Path, m.Expected)
	}
	return fmt.Sprintf("%s: expected %v, got %v", m.Path, m.Expected, m.Actual)
}

// Contains checks that candidate recursively contains at least the key/value
// structure of expected. It returns nil on success, a *Mismatch naming the
// first offending key on failure, and a plain error when either input cannot
// be normalized to JSON (a caller bug, not a comparison result).
func Contains(candidate, expected any) error {
	c, e, err := normalizePair(candidate, expected)
	if err != nil {
		return err
	}
	return contains(c, e, nil)
}

// Excludes checks that candidate does not contain expected, key by key: every
// leaf of expected must differ from the candidate's value at that path.
// Nested partials recurse with the same per-key rule rather than negating
// Contains, mirroring the asymmetry documented on the package.
func Excludes(candidate, expected any) error {
	c, e, err := normalizePair(candidate, expected)
	if err != nil {
		return err
	}
	return excludes(c, e, nil)
}

// value is the tagged representation the traversal runs on. The JSON value
// domain (object, array, string, number, bool, null) is extended with an
// explicit absent kind so missing keys compare like first-class values.
type kind uint8

const (
	kindAbsent kind = iota
	kindNull
	kindScalar
	kindArray
	kindObject
)

type value struct {
	kind   kind
	scalar any // string, float64 or bool when kind == kindScalar
	arr    []any
	obj    map[string]any
}

var absent = value{kind: kindAbsent}

func valueOf(v any) value {
	switch x := v.(type) {
	case nil:
		return value{kind: kindNull}
	case map[string]any:
		return value{kind: kindObject, obj: x}
	case []any:
		return value{kind: kindArray, arr: x}
	default:
		return value{kind: kindScalar, scalar: x}
	}
}

// at resolves one traversal step. Objects look the key up directly; arrays
// treat the key as a decimal index. Every other kind has no children, so
// absence propagates through scalars, null and absent itself.
func (v value) at(key string) value {
	switch v.kind {
	case kindObject:
		child, ok := v.obj[key]
		if !ok {
			return absent
		}
		return valueOf(child)
	case kindArray:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(v.arr) {
			return absent
		}
		return valueOf(v.arr[i])
	default:
		return absent
	}
}

// nested reports whether an expected value triggers recursion: objects and
// arrays do, scalars and null are leaves.
func (v value) nested() bool {
	return v.kind == kindObject || v.kind == kindArray
}

func (v value) format() string {
	switch v.kind {
	case kindAbsent:
		return "<missing>"
	case kindNull:
		return "null"
	case kindScalar:
		return fmt.Sprintf("%v", v.scalar)
	default:
		data, err := json.Marshal(v.export())
		if err != nil {
			return fmt.Sprintf("%v", v.export())
		}
		return string(data)
	}
}

func (v value) export() any {
	switch v.kind {
	case kindObject:
		return v.obj
	case kindArray:
		return v.arr
	case kindScalar:
		return v.scalar
	default:
		return nil
	}
}

func equal(a, b value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case kindNull:
		return true
	case kindScalar:
		return a.scalar == b.scalar
	default:
		// Leaves are only scalars and null; container kinds reaching an
		// equality check mean the candidate shape diverged.
		return false
	}
}

// keys returns the traversal keys of an expected value: object keys sorted
// for deterministic reporting, array indices in order. Non-containers have no
// keys, so a scalar expected checks vacuously.
func (v value) keys() []string {
	switch v.kind {
	case kindObject:
		out := make([]string, 0, len(v.obj))
		for k := range v.obj {
			out = append(out, k)
		}
		sort.Strings(out)
		return out
	case kindArray:
		out := make([]string, len(v.arr))
		for i := range v.arr {
			out[i] = strconv.Itoa(i)
		}
		return out
	default:
		return nil
	}
}

func contains(c, e value, path []string) error {
	for _, key := range e.keys() {
		ev := e.at(key)
		cv := c.at(key)
		keyPath := append(path, key)

		if ev.nested() {
			if err := contains(cv, ev, keyPath); err != nil {
				return err
			}
			continue
		}
		if !equal(cv, ev) {
			return &Mismatch{
				Path:     strings.Join(keyPath, "."),
				Expected: ev.format(),
				Actual:   cv.format(),
				Missing:  cv.kind == kindAbsent,
			}
		}
	}
	return nil
}

func excludes(c, e value, path []string) error {
	for _, key := range e.keys() {
		ev := e.at(key)
		cv := c.at(key)
		keyPath := append(path, key)

		if ev.nested() {
			if err := excludes(cv, ev, keyPath); err != nil {
				return err
			}
			continue
		}
		if equal(cv, ev) {
			return &Mismatch{
				Path:     strings.Join(keyPath, "."),
				Expected: ev.format(),
				Actual:   cv.format(),
				Negated:  true,
			}
		}
	}
	return nil
}

// normalizePair round-trips both inputs through JSON so structs, maps and
// decoded documents all land in the same value domain before comparison.
func normalizePair(candidate, expected any) (value, value, error) {
	c, err := normalize(candidate)
	if err != nil {
		return absent, absent, fmt.Errorf("candidate is not comparable: %w", err)
	}
	e, err := normalize(expected)
	if err != nil {
		return absent, absent, fmt.Errorf("expected partial is not comparable: %w", err)
	}
	return valueOf(c), valueOf(e), nil
}

func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
