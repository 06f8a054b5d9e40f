package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flatlog/flatlog/core"
	"github.com/flatlog/flatlog/template"
)

// keyFlattener deterministically names the field references of one template
// pass. The occurrence counter lives only for that pass; Flatten and
// flatFormat each construct a fresh instance so the two derive identical
// keys for identical templates.
type keyFlattener struct {
	counts map[string]int
}

func newKeyFlattener() *keyFlattener {
	return &keyFlattener{counts: make(map[string]int)}
}

// flatKey returns "field!conversion:spec", suffixed "/N" for the Nth
// occurrence of that combination within this flattener's lifetime.
func (k *keyFlattener) flatKey(field, spec, conv string) string {
	key := field + "!" + conv + ":" + spec
	k.counts[key]++
	if n := k.counts[key]; n != 1 {
		return key + "/" + strconv.Itoa(n)
	}
	return key
}

// eventMapping adapts an event as the resolver context for top-level names.
type eventMapping struct {
	ev *core.Event
}

func (m eventMapping) Lookup(name string) (any, error) {
	if v, ok := m.ev.Lookup(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", template.ErrNoField, name)
}

// Flatten snapshots every template-referenced field of the event into its
// Flattened map, so that the message can be rendered later, possibly on
// another goroutine after objects the event refers to have changed, and still
// reflect the values as they were at the point of emission. Each distinct
// reference is stored twice: under its stringified key (conversion forced
// to "s" unless explicitly "r") holding the display string, and under its
// structured key holding the raw value.
//
// Flatten mutates its argument in place. An event must be flattened at most
// once, synchronously, before any concurrent consumption; flattening the
// same event from multiple goroutines is a data race. Resolution and
// invocation failures propagate to the caller.
func Flatten(ev *core.Event) error {
	if ev.Format == nil {
		return nil
	}
	tmpl, err := templateText(ev.Format)
	if err != nil {
		return err
	}
	segs, err := template.Parse(tmpl)
	if err != nil {
		return err
	}

	fields := make(map[string]any)
	flattener := newKeyFlattener()
	for _, seg := range segs {
		if !seg.HasField {
			continue
		}
		conv := "s"
		if seg.Conv == "r" {
			conv = "r"
		}
		flattenedKey := flattener.flatKey(seg.Field, seg.Spec, conv)
		if _, seen := fields[flattenedKey]; seen {
			continue
		}
		structuredKey := flattener.flatKey(seg.Field, seg.Spec, "")

		raw, err := resolveReference(seg.Field, ev)
		if err != nil {
			return err
		}
		display, err := convert(raw, conv)
		if err != nil {
			return err
		}
		fields[flattenedKey] = display
		fields[structuredKey] = raw
	}
	ev.Flattened = fields
	return nil
}

// resolveReference resolves one template field reference against the event.
// A trailing call suffix is stripped first and the resolved value invoked
// with no arguments afterwards.
func resolveReference(field string, ev *core.Event) (any, error) {
	name := field
	callit := strings.HasSuffix(name, "()")
	if callit {
		name = name[:len(name)-2]
	}
	value, err := template.Resolve(name, eventMapping{ev})
	if err != nil {
		return nil, err
	}
	if callit {
		return value.Call()
	}
	return value.Raw, nil
}

// convert renders a value with a conversion ("r" for representation,
// anything else for display form), recovering a panic from the value's own
// representation method into an error.
func convert(v any, conv string) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("converting %T value: %v", v, r)
		}
	}()
	if conv == "r" {
		return core.Repr(v), nil
	}
	return core.Str(v), nil
}
