package template

import (
	"fmt"
	"reflect"
)

// Kind classifies a resolved field value.
type Kind int

const (
	// KindMissing marks the zero Value: nothing was resolved.
	KindMissing Kind = iota

	// KindStructured marks an ordinary value.
	KindStructured

	// KindInvocable marks a value that can be invoked with no arguments,
	// the target of the call-suffix extension ("name()").
	KindInvocable
)

// Value is a resolved field value. Whether it may be invoked is decided
// once, here, instead of being re-inferred at every call site.
type Value struct {
	Kind Kind
	Raw  any
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// ValueOf classifies a raw value. A niladic func with one result, or with a
// value and an error result, is invocable; everything else is structured.
func ValueOf(v any) Value {
	if v == nil {
		return Value{Kind: KindStructured}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func && !rv.IsNil() {
		t := rv.Type()
		if t.NumIn() == 0 && !t.IsVariadic() {
			switch {
			case t.NumOut() == 1:
				return Value{Kind: KindInvocable, Raw: v}
			case t.NumOut() == 2 && t.Out(1) == errType:
				return Value{Kind: KindInvocable, Raw: v}
			}
		}
	}
	return Value{Kind: KindStructured, Raw: v}
}

// Call invokes an invocable value with no arguments. A panic inside the
// callee is recovered and returned as an error.
func (v Value) Call() (result any, err error) {
	if v.Kind != KindInvocable {
		return nil, fmt.Errorf("value of type %T is not callable", v.Raw)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("call panicked: %v", r)
		}
	}()
	out := reflect.ValueOf(v.Raw).Call(nil)
	if len(out) == 2 {
		if callErr, _ := out[1].Interface().(error); callErr != nil {
			return nil, callErr
		}
	}
	return out[0].Interface(), nil
}
