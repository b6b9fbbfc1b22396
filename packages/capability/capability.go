// Package capability inspects what a value can do: which named members are
// callable on it, and which interfaces it satisfies.
//
// A member is callable when it is a method on the value (pointer-receiver
// methods count, since they are reachable from any addressable value), an
// exported func-typed struct field, or a func-valued entry in a
// map[string]... subject. Everything else, including a present field of a
// non-func type, is not a capability.
package capability

import (
	"reflect"
	"slices"
	"sort"
)

// Set is the snapshot of a subject's callable members, taken once so that
// repeated queries do not re-walk the type.
type Set struct {
	have map[string]bool
}

// Of builds the capability set of subject. A nil subject has no capabilities.
func Of(subject any) Set {
	s := Set{have: map[string]bool{}}
	if subject == nil {
		return s
	}

	v := reflect.ValueOf(subject)
	t := v.Type()

	// Method sets. For non-pointer subjects the pointer type carries the
	// full set reachable from an addressable value.
	mt := t
	if t.Kind() != reflect.Pointer {
		mt = reflect.PointerTo(t)
	}
	for i := 0; i < mt.NumMethod(); i++ {
		s.have[mt.Method(i).Name] = true
	}

	// Func-typed struct fields and map entries.
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return s
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		st := v.Type()
		for i := 0; i < st.NumField(); i++ {
			f := st.Field(i)
			if f.IsExported() && f.Type.Kind() == reflect.Func && !v.Field(i).IsNil() {
				s.have[f.Name] = true
			}
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			break
		}
		iter := v.MapRange()
		for iter.Next() {
			mv := iter.Value()
			for mv.Kind() == reflect.Interface {
				mv = mv.Elem()
			}
			if mv.Kind() == reflect.Func && !mv.IsNil() {
				s.have[iter.Key().String()] = true
			}
		}
	}
	return s
}

// Has reports whether name is callable on the subject.
func (s Set) Has(name string) bool {
	return s.have[name]
}

// Names returns every callable member, sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.have))
	for n := range s.have {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Missing returns the subset of names that are not callable, in the order
// given. All offenders are reported, not just the first.
func (s Set) Missing(names ...string) []string {
	var out []string
	for _, n := range names {
		if !s.have[n] {
			out = append(out, n)
		}
	}
	return out
}

// Present returns the subset of names that are callable, in the order given.
// It is the query behind "must not implement" checks, where any hit is an
// offender.
func (s Set) Present(names ...string) []string {
	var out []string
	for _, n := range names {
		if s.have[n] {
			out = append(out, n)
		}
	}
	return out
}

// HasCallable reports whether name is callable on subject without keeping
// the set around.
func HasCallable(subject any, name string) bool {
	return Of(subject).Has(name)
}

// Members derives a list of member names from spec, which may be
//   - a []string, used as given (duplicates kept, each checked on its own);
//   - a pointer to an interface, e.g. (*io.Reader)(nil), yielding the
//     interface's method names;
//   - any other value, yielding its own callable members so one object can
//     serve as the expectation for another.
func Members(spec any) []string {
	if spec == nil {
		return nil
	}
	if names, ok := spec.([]string); ok {
		return slices.Clone(names)
	}
	if t := reflect.TypeOf(spec); t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Interface {
		it := t.Elem()
		names := make([]string, 0, it.NumMethod())
		for i := 0; i < it.NumMethod(); i++ {
			names = append(names, it.Method(i).Name)
		}
		return names
	}
	return Of(spec).Names()
}

// Implements reports whether subject satisfies the interface that ifacePtr
// points to, written as Implements(v, (*io.Reader)(nil)).
func Implements(subject, ifacePtr any) bool {
	if subject == nil || ifacePtr == nil {
		return false
	}
	it := reflect.TypeOf(ifacePtr)
	if it.Kind() != reflect.Pointer || it.Elem().Kind() != reflect.Interface {
		return false
	}
	return reflect.TypeOf(subject).Implements(it.Elem())
}
