// Package template implements the minimal template engine the formatter
// depends on: parsing PEP-3101-style templates into ordered literal and
// field segments, resolving dotted/indexed field paths against a Mapping
// context, and applying the string-padding subset of format specs.
//
// Field paths resolve duck-typed via reflection: ".name" reads a map key,
// an exported struct field, or a bound method; "[i]" indexes a slice,
// array, string, or map. A resolved value is classified once into the
// Value variant (structured, or invocable when it is a niladic func), so
// the call-suffix extension ("name()") is an explicit operation rather
// than a convention re-checked at every call site.
//
// The engine is deliberately incomplete in one known way: nested
// replacement fields inside a format spec ({x:{width}}) parse as an error
// rather than being interpolated. Package-level functions are stateless
// and safe for concurrent use.
package template
