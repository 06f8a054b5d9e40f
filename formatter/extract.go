package formatter

import (
	"errors"
	"fmt"

	"github.com/flatlog/flatlog/core"
	"github.com/flatlog/flatlog/template"
)

// ErrFieldNotFound reports a field expression whose flattened key is absent
// from the event.
var ErrFieldNotFound = errors.New("field not found in event")

// ExtractField resolves one ad-hoc field expression against an event: the
// text that would fall between a pair of braces in a template, such as
// "key[2].attribute" or "function()". The expression's value is read from
// the event's flattened snapshot, flattening the event first if needed, so
// a call-suffixed expression yields the call result and an expression with
// no conversion yields the raw structured value. An expression the event's
// own template never referenced is resolved against the event directly.
//
// Flattening failures propagate; an expression whose key is absent after
// flattening returns an error wrapping ErrFieldNotFound.
func ExtractField(field string, ev *core.Event) (any, error) {
	segs, err := template.Parse("{" + field + "}")
	if err != nil {
		return nil, err
	}
	if len(segs) != 1 || !segs[0].HasField || segs[0].Literal != "" {
		return nil, fmt.Errorf("invalid field expression %q", field)
	}
	seg := segs[0]

	key := newKeyFlattener().flatKey(seg.Field, seg.Spec, seg.Conv)
	if ev.Flattened == nil {
		if err := Flatten(ev); err != nil {
			return nil, err
		}
	}
	if v, ok := ev.Flattened[key]; ok {
		return v, nil
	}

	// The expression may name a field the event's own template never
	// referenced; flatten just this reference.
	raw, err := resolveReference(seg.Field, ev)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrFieldNotFound, key, err)
	}
	if seg.Conv == "" {
		return raw, nil
	}
	return convert(raw, seg.Conv)
}
