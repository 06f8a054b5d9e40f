package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatlog/flatlog/core"
)

// panicky panics from every representation it offers.
type panicky struct{}

func (panicky) String() string   { panic("no string for you") }
func (panicky) GoString() string { panic("no repr for you") }

func TestFormat_Empty(t *testing.T) {
	assert.Equal(t, "", Format(&core.Event{}))
}

func TestFormat_LiteralTemplate(t *testing.T) {
	assert.Equal(t, "Hello!", Format(&core.Event{Format: "Hello!"}))
}

func TestFormat_Fields(t *testing.T) {
	ev := &core.Event{
		Format: "{greeting}, {who}!",
		Fields: map[string]any{"greeting": "Hello", "who": "world"},
	}
	assert.Equal(t, "Hello, world!", Format(ev))
}

func TestFormat_Conversions(t *testing.T) {
	ev := &core.Event{
		Format: "{x} {x!s} {x!r}",
		Fields: map[string]any{"x": "5"},
	}
	assert.Equal(t, `5 5 "5"`, Format(ev))
}

func TestFormat_UnrecognizedConversionActsAsString(t *testing.T) {
	ev := &core.Event{
		Format: "{x!a}",
		Fields: map[string]any{"x": 5},
	}
	assert.Equal(t, "5", Format(ev))
}

func TestFormat_Spec(t *testing.T) {
	ev := &core.Event{
		Format: "[{x:>4}]",
		Fields: map[string]any{"x": 7},
	}
	assert.Equal(t, "[   7]", Format(ev))
}

func TestFormat_CallSuffix(t *testing.T) {
	ev := &core.Event{
		Format: "{string}, {function()}.",
		Fields: map[string]any{
			"string":   "just a string",
			"function": func() string { return "a function" },
		},
	}
	assert.Equal(t, "just a string, a function.", Format(ev))
}

func TestFormat_FieldPath(t *testing.T) {
	ev := &core.Event{
		Format: "{req.Method} {codes[0]}",
		Fields: map[string]any{
			"req":   struct{ Method string }{Method: "GET"},
			"codes": []int{200, 404},
		},
	}
	assert.Equal(t, "GET 200", Format(ev))
}

func TestFormat_BytesTemplate(t *testing.T) {
	ev := &core.Event{
		Format: []byte("Hei, {who}!"),
		Fields: map[string]any{"who": "verden"},
	}
	assert.Equal(t, "Hei, verden!", Format(ev))
}

func TestFormat_InvalidUTF8Bytes(t *testing.T) {
	ev := &core.Event{Format: []byte{'h', 'i', 0xff, 0xfe}}
	out := Format(ev)
	assert.True(t, strings.HasPrefix(out, "Unable to format event"), "got %q", out)
}

func TestFormat_NonTextTemplate(t *testing.T) {
	ev := &core.Event{Format: 42}
	out := Format(ev)
	assert.True(t, strings.HasPrefix(out, "Unable to format event"), "got %q", out)
}

func TestFormat_MissingFieldFallsBack(t *testing.T) {
	ev := &core.Event{Format: "{missing}"}
	out := Format(ev)
	require.True(t, strings.HasPrefix(out, "Unable to format event"), "got %q", out)
	assert.Contains(t, out, "missing")
}

func TestFormat_ReservedKeysResolvable(t *testing.T) {
	ev := &core.Event{
		Format:    "[{log_namespace}] ready",
		Namespace: "web",
	}
	assert.Equal(t, "[web] ready", Format(ev))
}

func TestFormat_FlattenedMatchesLive(t *testing.T) {
	newEvent := func() *core.Event {
		return &core.Event{
			Format: "{x} {x} {x!r} {s} {s!r}",
			Fields: map[string]any{"x": 5, "s": "text"},
		}
	}

	live := Format(newEvent())

	flat := newEvent()
	require.NoError(t, Flatten(flat))
	flat.Fields["x"] = 999 // later mutation must not show
	assert.Equal(t, live, Format(flat))
	assert.Equal(t, `5 5 5 text "text"`, Format(flat))
}

func TestFormat_FlattenedUsedExclusively(t *testing.T) {
	ev := &core.Event{
		Format:    "{x}",
		Flattened: map[string]any{"x!s:": "snapshot"},
		Fields:    map[string]any{"x": "live"},
	}
	assert.Equal(t, "snapshot", Format(ev))
}

func TestFormat_FlattenedMissingKeyFallsBack(t *testing.T) {
	ev := &core.Event{
		Format:    "{x} {y}",
		Flattened: map[string]any{"x!s:": "only x"},
	}
	out := Format(ev)
	assert.True(t, strings.HasPrefix(out, "Unable to format event"), "got %q", out)
}

func TestFormat_Tier2Fallback(t *testing.T) {
	ev := &core.Event{
		Format: "{missing}",
		Fields: map[string]any{"bad": panicky{}},
	}
	out := Format(ev)
	require.True(t, strings.HasPrefix(out, "MESSAGE LOST: unformattable object logged:"), "got %q", out)
	assert.Contains(t, out, "Recoverable data:")
	assert.Contains(t, out, "Exception during formatting:")
	assert.Contains(t, out, `"log_format"`)
	assert.Contains(t, out, "unrepresentable")
}

func TestFormat_NeverPanics(t *testing.T) {
	events := []*core.Event{
		{},
		{Format: 3.14},
		{Format: "{"},
		{Format: "}"},
		{Format: "{x!}"},
		{Format: "{x:{y}}"},
		{Format: "{}"},
		{Format: "{a.b.c}"},
		{Format: "{fn()}", Fields: map[string]any{"fn": func() { panic("boom") }}},
		{Format: "{fn()}", Fields: map[string]any{"fn": func() int { panic("boom") }}},
		{Format: "{fn()}", Fields: map[string]any{"fn": 42}},
		{Format: "{bad}", Fields: map[string]any{"bad": panicky{}}},
		{Format: "{bad!r}", Fields: map[string]any{"bad": panicky{}}},
		{Format: "{x:03d}", Fields: map[string]any{"x": 1}},
		{Format: "{missing}", Fields: map[string]any{"bad": panicky{}}},
		{Flattened: map[string]any{}},
	}
	for _, ev := range events {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Format panicked on %+v: %v", ev, r)
				}
			}()
			_ = Format(ev)
		}()
	}
}

func TestFormatUnformattable_Tier1(t *testing.T) {
	ev := &core.Event{Format: "{x}", Fields: map[string]any{"x": 1}}
	out := FormatUnformattable(ev, assert.AnError)
	assert.True(t, strings.HasPrefix(out, "Unable to format event {"), "got %q", out)
	assert.Contains(t, out, assert.AnError.Error())
}

func benchEvent() *core.Event {
	return &core.Event{
		Format: "handled {method} {path} in {elapsed}ms",
		Fields: map[string]any{
			"method":  "GET",
			"path":    "/api/v1/items",
			"elapsed": 12,
		},
	}
}

func BenchmarkFormat(b *testing.B) {
	ev := benchEvent()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Format(ev)
	}
}

func BenchmarkFormatFlattened(b *testing.B) {
	ev := benchEvent()
	if err := Flatten(ev); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Format(ev)
	}
}

func BenchmarkFlatten(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ev := benchEvent()
		if err := Flatten(ev); err != nil {
			b.Fatal(err)
		}
	}
}
