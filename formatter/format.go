package formatter

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/flatlog/flatlog/core"
	"github.com/flatlog/flatlog/template"
)

// Format renders an event's message as text, using the template in its
// log_format field. It never fails: if the event cannot be formatted for
// any reason, the returned string describes the event and the failure
// generically so that a useful message is emitted regardless.
//
// An already-flattened event is rendered exclusively from its snapshot;
// the template is never re-resolved against live objects.
func Format(ev *core.Event) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = FormatUnformattable(ev, fmt.Errorf("panic during formatting: %v", r))
		}
	}()

	if ev.Flattened != nil {
		out, err := flatFormat(ev)
		if err != nil {
			return FormatUnformattable(ev, err)
		}
		return out
	}

	if ev.Format == nil {
		return ""
	}

	out, err := liveFormat(ev)
	if err != nil {
		return FormatUnformattable(ev, err)
	}
	return out
}

// liveFormat substitutes each field reference by resolving it against the
// event itself, with call-suffix semantics, using its declared conversion
// and format spec.
func liveFormat(ev *core.Event) (string, error) {
	tmpl, err := templateText(ev.Format)
	if err != nil {
		return "", err
	}
	segs, err := template.Parse(tmpl)
	if err != nil {
		return "", err
	}

	buf := getBuffer()
	defer putBuffer(buf)
	ctx := callMapping{eventMapping{ev}}
	for _, seg := range segs {
		buf.WriteString(seg.Literal)
		if !seg.HasField {
			continue
		}
		value, err := template.Resolve(seg.Field, ctx)
		if err != nil {
			return "", err
		}
		display, err := convert(value.Raw, seg.Conv)
		if err != nil {
			return "", err
		}
		display, err = template.Pad(display, seg.Spec)
		if err != nil {
			return "", err
		}
		buf.WriteString(display)
	}
	return buf.String(), nil
}

// flatFormat renders from the flattened snapshot, re-deriving each
// stringified key exactly as Flatten named it and looking up the
// pre-stored display string. A missing key is a failure; Format's outer
// guard turns it into fallback text.
func flatFormat(ev *core.Event) (string, error) {
	tmpl, err := templateText(ev.Format)
	if err != nil {
		return "", err
	}
	segs, err := template.Parse(tmpl)
	if err != nil {
		return "", err
	}

	buf := getBuffer()
	defer putBuffer(buf)
	flattener := newKeyFlattener()
	for _, seg := range segs {
		buf.WriteString(seg.Literal)
		if !seg.HasField {
			continue
		}
		conv := "s"
		if seg.Conv == "r" {
			conv = "r"
		}
		key := flattener.flatKey(seg.Field, seg.Spec, conv)
		value, ok := ev.Flattened[key]
		if !ok {
			return "", fmt.Errorf("no flattened value for key %q", key)
		}
		display, err := convert(value, "s")
		if err != nil {
			return "", err
		}
		buf.WriteString(display)
	}
	return buf.String(), nil
}

// callMapping is a read-only view over the event that treats a "name()"
// lookup as "invoke the value bound to name with no arguments". It is used
// only for live rendering; flattened rendering reads snapshots instead.
type callMapping struct {
	base template.Mapping
}

func (m callMapping) Lookup(key string) (any, error) {
	callit := strings.HasSuffix(key, "()")
	if callit {
		key = key[:len(key)-2]
	}
	v, err := m.base.Lookup(key)
	if err != nil {
		return nil, err
	}
	if callit {
		return template.ValueOf(v).Call()
	}
	return v, nil
}

// templateText coerces a log_format value to text. Byte templates must be
// valid UTF-8; any other type is a formatting error.
func templateText(format any) (string, error) {
	switch f := format.(type) {
	case string:
		return f, nil
	case []byte:
		s, _, err := transform.String(encoding.UTF8Validator, string(f))
		if err != nil {
			return "", fmt.Errorf("log format is not valid UTF-8: %w", err)
		}
		return s, nil
	}
	return "", fmt.Errorf("log format must be a string or UTF-8 bytes, not %s", core.SafeRepr(format))
}
