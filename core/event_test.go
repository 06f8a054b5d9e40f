package core

import (
	"testing"
)

func TestEvent_Lookup_Fields(t *testing.T) {
	ev := &Event{
		Fields: map[string]any{"user": "alice", "count": 3},
	}

	v, ok := ev.Lookup("user")
	if !ok || v != "alice" {
		t.Errorf("Lookup(user) = %v, %v; want alice, true", v, ok)
	}

	if _, ok := ev.Lookup("missing"); ok {
		t.Error("Lookup(missing) should not resolve")
	}
}

func TestEvent_Lookup_Reserved(t *testing.T) {
	ev := &Event{
		Format:    "Hello!",
		Time:      Seconds(12.5),
		Namespace: "ns",
		Level:     LevelNamed("info"),
		System:    "sys",
	}

	cases := []struct {
		key  string
		want any
	}{
		{KeyFormat, "Hello!"},
		{KeyTime, 12.5},
		{KeyNamespace, "ns"},
		{KeySystem, "sys"},
	}
	for _, c := range cases {
		v, ok := ev.Lookup(c.key)
		if !ok || v != c.want {
			t.Errorf("Lookup(%s) = %v, %v; want %v, true", c.key, v, ok, c.want)
		}
	}

	v, ok := ev.Lookup(KeyLevel)
	if !ok || v.(Level).Name() != "info" {
		t.Errorf("Lookup(log_level) = %v, %v; want level info", v, ok)
	}
}

func TestEvent_Lookup_UnsetReserved(t *testing.T) {
	ev := &Event{}
	for _, key := range []string{KeyFormat, KeyFlattened, KeyTime, KeyNamespace, KeyLevel, KeySystem} {
		if _, ok := ev.Lookup(key); ok {
			t.Errorf("Lookup(%s) on empty event should not resolve", key)
		}
	}
}

func TestEvent_Lookup_FieldShadowsReserved(t *testing.T) {
	ev := &Event{
		Namespace: "real",
		Fields:    map[string]any{KeyNamespace: "shadow"},
	}
	v, _ := ev.Lookup(KeyNamespace)
	if v != "shadow" {
		t.Errorf("application field should win over reserved key, got %v", v)
	}
}

func TestEvent_Pairs_Order(t *testing.T) {
	ev := &Event{
		Format:    "f",
		Namespace: "ns",
		Fields:    map[string]any{"b": 2, "a": 1, "c": 3},
	}

	pairs := ev.Pairs()
	want := []string{KeyFormat, KeyNamespace, "a", "b", "c"}
	if len(pairs) != len(want) {
		t.Fatalf("Pairs() returned %d entries, want %d", len(pairs), len(want))
	}
	for i, key := range want {
		if pairs[i].Key != key {
			t.Errorf("Pairs()[%d].Key = %s, want %s", i, pairs[i].Key, key)
		}
	}
}

func TestEvent_Pairs_Empty(t *testing.T) {
	if pairs := (&Event{}).Pairs(); len(pairs) != 0 {
		t.Errorf("Pairs() on empty event = %v, want none", pairs)
	}
}

func TestFromMap(t *testing.T) {
	ev := FromMap(map[string]any{
		"log_format":    "Hello, {who}!",
		"log_time":      float64(100),
		"log_namespace": "web",
		"log_level":     "warn",
		"who":           "world",
	})

	if ev.Format != "Hello, {who}!" {
		t.Errorf("Format = %v", ev.Format)
	}
	if ev.Time == nil || *ev.Time != 100 {
		t.Errorf("Time = %v", ev.Time)
	}
	if ev.Namespace != "web" {
		t.Errorf("Namespace = %v", ev.Namespace)
	}
	if ev.Level == nil || ev.Level.Name() != "warn" {
		t.Errorf("Level = %v", ev.Level)
	}
	if ev.Fields["who"] != "world" {
		t.Errorf("Fields = %v", ev.Fields)
	}
}

func TestFromMap_IntTime(t *testing.T) {
	ev := FromMap(map[string]any{"log_time": 42})
	if ev.Time == nil || *ev.Time != 42 {
		t.Errorf("Time = %v, want 42", ev.Time)
	}
}

func TestLevelNamed(t *testing.T) {
	if name := LevelNamed("debug").Name(); name != "debug" {
		t.Errorf("Name() = %s, want debug", name)
	}
}
