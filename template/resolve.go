package template

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrNoField reports a top-level name that did not resolve.
var ErrNoField = errors.New("no such field")

// Mapping is the resolution context for top-level field names.
type Mapping interface {
	// Lookup resolves a top-level name. It returns an error wrapping
	// ErrNoField when the name is not present.
	Lookup(name string) (any, error)
}

type mapMapping map[string]any

func (m mapMapping) Lookup(name string) (any, error) {
	if v, ok := m[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoField, name)
}

// MapOf adapts a plain map as a Mapping.
func MapOf(m map[string]any) Mapping {
	return mapMapping(m)
}

// Resolve evaluates a field path against a context. The path's leading name
// is looked up in the context; the remaining ".name" and "[index]" accessors
// are applied to the result in order. The returned Value records whether the
// final value is invocable.
func Resolve(path string, ctx Mapping) (Value, error) {
	first, accs, err := parsePath(path)
	if err != nil {
		return Value{}, err
	}
	cur, err := ctx.Lookup(first)
	if err != nil {
		return Value{}, err
	}
	for _, acc := range accs {
		cur, err = acc.apply(cur)
		if err != nil {
			return Value{}, fmt.Errorf("resolving %q: %w", path, err)
		}
	}
	return ValueOf(cur), nil
}

type accessor struct {
	key   string
	index bool
}

func parsePath(path string) (first string, accs []accessor, err error) {
	i := 0
	for i < len(path) && path[i] != '.' && path[i] != '[' {
		i++
	}
	first = path[:i]
	if first == "" {
		return "", nil, errors.New("empty field name")
	}
	for i < len(path) {
		switch path[i] {
		case '.':
			j := i + 1
			for j < len(path) && path[j] != '.' && path[j] != '[' {
				j++
			}
			if j == i+1 {
				return "", nil, fmt.Errorf("empty attribute in field path %q", path)
			}
			accs = append(accs, accessor{key: path[i+1 : j]})
			i = j
		case '[':
			j := strings.IndexByte(path[i:], ']')
			if j < 0 {
				return "", nil, fmt.Errorf("unterminated index in field path %q", path)
			}
			if j == 1 {
				return "", nil, fmt.Errorf("empty index in field path %q", path)
			}
			accs = append(accs, accessor{key: path[i+1 : i+j], index: true})
			i += j + 1
		default:
			return "", nil, fmt.Errorf("unexpected %q in field path %q", path[i], path)
		}
	}
	return first, accs, nil
}

func (a accessor) apply(base any) (any, error) {
	if base == nil {
		return nil, fmt.Errorf("cannot access %q on nil value", a.key)
	}
	if a.index {
		return accessIndex(base, a.key)
	}
	return accessAttr(base, a.key)
}

// deref unwraps pointers and interfaces. A nil pointer yields an invalid
// value, which the callers report as an access error.
func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func accessAttr(base any, name string) (any, error) {
	rv := deref(reflect.ValueOf(base))
	if rv.IsValid() {
		switch rv.Kind() {
		case reflect.Map:
			if rv.Type().Key().Kind() == reflect.String {
				v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
				if v.IsValid() {
					return v.Interface(), nil
				}
			}
		case reflect.Struct:
			if f := rv.FieldByName(name); f.IsValid() && f.CanInterface() {
				return f.Interface(), nil
			}
		}
	}
	// No field matched; a method works too, so that "obj.Method()" paths
	// resolve to something invocable. Pointer receivers require the lookup
	// on the original value.
	if m := reflect.ValueOf(base).MethodByName(name); m.IsValid() {
		return m.Interface(), nil
	}
	if rv.IsValid() && rv.CanInterface() {
		if m := rv.MethodByName(name); m.IsValid() {
			return m.Interface(), nil
		}
	}
	return nil, fmt.Errorf("%T has no field or method %q", base, name)
}

func accessIndex(base any, key string) (any, error) {
	rv := deref(reflect.ValueOf(base))
	if !rv.IsValid() {
		return nil, errors.New("cannot index nil value")
	}
	switch rv.Kind() {
	case reflect.String:
		n, err := indexInt(key, rv.Len())
		if err != nil {
			return nil, err
		}
		return string(rv.String()[n]), nil
	case reflect.Slice, reflect.Array:
		n, err := indexInt(key, rv.Len())
		if err != nil {
			return nil, err
		}
		return rv.Index(n).Interface(), nil
	case reflect.Map:
		kt := rv.Type().Key()
		var kv reflect.Value
		switch {
		case kt.Kind() == reflect.String:
			kv = reflect.ValueOf(key).Convert(kt)
		case intKind(kt.Kind()):
			n, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("non-integer index %q for map keyed by %s", key, kt)
			}
			kv = reflect.ValueOf(n).Convert(kt)
		default:
			return nil, fmt.Errorf("unsupported map key type %s", kt)
		}
		v := rv.MapIndex(kv)
		if !v.IsValid() {
			return nil, fmt.Errorf("%w: index %q not in map", ErrNoField, key)
		}
		return v.Interface(), nil
	}
	return nil, fmt.Errorf("cannot index value of type %T", base)
}

func indexInt(key string, length int) (int, error) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("non-integer index %q", key)
	}
	if n < 0 || n >= length {
		return 0, fmt.Errorf("index %d out of range (length %d)", n, length)
	}
	return n, nil
}

func intKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
