// Package core defines the shared types used across the flatlog module.
//
// It provides the Event type, an open record carrying a message template
// and arbitrary named fields alongside the reserved metadata keys
// (log_format, log_time, log_namespace, log_level, log_system, and the
// internally-produced log_flattened), and the Level type, an opaque
// severity whose only consumed property is its textual name.
//
// The package also holds the representation helpers the formatter builds
// on. Str and Repr invoke a value's own String/Error/GoString methods
// directly, so a misbehaving value fails loudly where the caller wants to
// know about it; SafeStr and SafeRepr recover any such panic into a
// placeholder and are the only representation functions the last-resort
// fallback path is allowed to use.
package core
