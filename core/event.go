package core

import "sort"

// Reserved event keys. An Event is an open record: applications may attach
// any fields they like, but these names are interpreted by the formatter.
const (
	KeyFormat    = "log_format"
	KeyFlattened = "log_flattened"
	KeyTime      = "log_time"
	KeyNamespace = "log_namespace"
	KeyLevel     = "log_level"
	KeySystem    = "log_system"
)

// Event is a structured log event: a message template plus arbitrary named
// fields, together with the reserved metadata the formatter understands.
//
// Flattened is populated by formatter.Flatten and holds a snapshot of every
// template-referenced value (raw and stringified). Once set, rendering uses
// it exclusively, so later mutation of referenced objects cannot change
// already-emitted output.
type Event struct {
	// Format is the message template, a string or UTF-8 []byte.
	// Nil means the event carries no renderable message.
	Format any

	// Flattened maps flattened keys to snapshotted values. Nil until the
	// event has been flattened.
	Flattened map[string]any

	// Time is the event timestamp in seconds since the Unix epoch.
	Time *float64

	// Namespace identifies the emitting subsystem.
	Namespace string

	// Level is the event severity. Only its name is consumed.
	Level Level

	// System overrides the namespace#level tag in classic log lines.
	System any

	// Fields holds the application-defined fields the template refers to.
	Fields map[string]any
}

// Seconds returns a *float64 suitable for Event.Time.
func Seconds(v float64) *float64 {
	return &v
}

// Lookup resolves a top-level name against the event. Application fields
// shadow nothing: they are consulted first, then the reserved keys, so a
// template may also refer to event metadata such as log_namespace.
func (e *Event) Lookup(name string) (any, bool) {
	if v, ok := e.Fields[name]; ok {
		return v, true
	}
	switch name {
	case KeyFormat:
		if e.Format != nil {
			return e.Format, true
		}
	case KeyFlattened:
		if e.Flattened != nil {
			return e.Flattened, true
		}
	case KeyTime:
		if e.Time != nil {
			return *e.Time, true
		}
	case KeyNamespace:
		if e.Namespace != "" {
			return e.Namespace, true
		}
	case KeyLevel:
		if e.Level != nil {
			return e.Level, true
		}
	case KeySystem:
		if e.System != nil {
			return e.System, true
		}
	}
	return nil, false
}

// Pair is one key/value entry of an event.
type Pair struct {
	Key   string
	Value any
}

// Pairs enumerates every set key of the event in a deterministic order:
// reserved keys first, then application fields sorted by name. The fallback
// formatter relies on this to recover data from unformattable events.
func (e *Event) Pairs() []Pair {
	var pairs []Pair
	if e.Format != nil {
		pairs = append(pairs, Pair{KeyFormat, e.Format})
	}
	if e.Flattened != nil {
		pairs = append(pairs, Pair{KeyFlattened, e.Flattened})
	}
	if e.Time != nil {
		pairs = append(pairs, Pair{KeyTime, *e.Time})
	}
	if e.Namespace != "" {
		pairs = append(pairs, Pair{KeyNamespace, e.Namespace})
	}
	if e.Level != nil {
		pairs = append(pairs, Pair{KeyLevel, e.Level})
	}
	if e.System != nil {
		pairs = append(pairs, Pair{KeySystem, e.System})
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pairs = append(pairs, Pair{name, e.Fields[name]})
	}
	return pairs
}

// FromMap builds an Event from an open string-keyed record, the shape events
// arrive in from decoders and wire formats. Reserved keys are lifted into
// the corresponding struct fields; everything else becomes an application
// field. A log_level value given as a string is wrapped with LevelNamed.
func FromMap(m map[string]any) *Event {
	ev := &Event{}
	for key, value := range m {
		switch key {
		case KeyFormat:
			ev.Format = value
		case KeyFlattened:
			if fields, ok := value.(map[string]any); ok {
				ev.Flattened = fields
			}
		case KeyTime:
			switch t := value.(type) {
			case float64:
				ev.Time = Seconds(t)
			case int:
				ev.Time = Seconds(float64(t))
			case int64:
				ev.Time = Seconds(float64(t))
			}
		case KeyNamespace:
			if ns, ok := value.(string); ok {
				ev.Namespace = ns
			}
		case KeyLevel:
			switch l := value.(type) {
			case Level:
				ev.Level = l
			case string:
				ev.Level = LevelNamed(l)
			}
		case KeySystem:
			ev.System = value
		default:
			if ev.Fields == nil {
				ev.Fields = make(map[string]any)
			}
			ev.Fields[key] = value
		}
	}
	return ev
}
