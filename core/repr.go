package core

import (
	"fmt"
	"strconv"
)

// Str returns the display form of a value, the equivalent of rendering it
// with the "s" conversion. A value's own String or Error method is invoked
// directly, so a misbehaving method can panic; use SafeStr where that must
// not happen.
func Str(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}
	return fmt.Sprint(v)
}

// Repr returns the debug representation of a value, the equivalent of
// rendering it with the "r" conversion: strings are quoted, and a value's
// own GoString method is invoked directly when it has one. Like Str, it can
// panic if the value's method does.
func Repr(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case []byte:
		return strconv.Quote(string(x))
	case fmt.GoStringer:
		return x.GoString()
	}
	return fmt.Sprintf("%#v", v)
}

// SafeStr is Str with a guarantee: it never panics, substituting a
// placeholder when the value's own method does.
func SafeStr(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = unrepresentable(v, r)
		}
	}()
	return Str(v)
}

// SafeRepr is Repr with the same never-panic guarantee as SafeStr.
func SafeRepr(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = unrepresentable(v, r)
		}
	}()
	return Repr(v)
}

func unrepresentable(v any, cause any) string {
	return fmt.Sprintf("<unrepresentable %T: %v>", v, cause)
}
