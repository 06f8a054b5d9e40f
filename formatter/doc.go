// Package formatter turns structured log events into human-readable text
// without ever letting a formatting failure abort the logging call that
// produced it.
//
// Format is the single never-failing entry point: whatever the event
// contains, even fields that fail to resolve or whose representations
// panic, it returns text, degrading through a two-tier fallback that
// bottoms out in output built entirely from non-failing representations.
// Every other operation in the package fails loudly instead, because its
// callers need to know that resolution failed.
//
// Flatten supports deferred rendering: it snapshots every
// template-referenced value (raw and stringified) into the event at the
// moment it is emitted, so the message can be formatted later, after
// mutable objects the event refers to have changed, and still come out
// identical to an immediate rendering. Flatten mutates its argument and
// must not be applied to the same event from multiple goroutines; all
// other operations do no I/O and are safe for concurrent use on distinct
// events.
//
// FormatClassicLine wraps the rendered message with a timestamp and a
// system tag into the traditional "{time} [{system}] {message}" line, and
// FormatTime renders timestamps with strftime-style patterns using the
// zone offset in effect at the instant being rendered.
package formatter
