package template

import (
	"errors"
	"fmt"
	"strings"
)

// Segment is one parsed piece of a template: a run of literal text,
// optionally followed by a field reference. A trailing literal has
// HasField false.
type Segment struct {
	Literal  string
	Field    string
	HasField bool
	Conv     string
	Spec     string
}

// Parse splits a template into ordered segments. Syntax is
// {fieldPath[!conversion][:formatSpec]} with {{ and }} as literal braces.
//
// Nested replacement fields inside a format spec ({x:{width}}) are not
// supported and are reported as an error.
func Parse(tmpl string) ([]Segment, error) {
	var segs []Segment
	var lit strings.Builder
	i := 0
	for i < len(tmpl) {
		switch tmpl[i] {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			j := i + 1
			for j < len(tmpl) && tmpl[j] != '}' && tmpl[j] != '{' {
				j++
			}
			if j >= len(tmpl) {
				return nil, errors.New("unmatched '{' in template")
			}
			if tmpl[j] == '{' {
				return nil, errors.New("nested replacement fields are not supported")
			}
			seg, err := parseField(tmpl[i+1 : j])
			if err != nil {
				return nil, err
			}
			seg.Literal = lit.String()
			lit.Reset()
			segs = append(segs, seg)
			i = j + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, errors.New("single '}' encountered in template")
		default:
			lit.WriteByte(tmpl[i])
			i++
		}
	}
	if lit.Len() > 0 {
		segs = append(segs, Segment{Literal: lit.String()})
	}
	return segs, nil
}

// parseField splits the inside of a {...} reference. The first colon
// separates the format spec; a preceding ! introduces a single-character
// conversion.
func parseField(clip string) (Segment, error) {
	seg := Segment{HasField: true}
	head := clip
	if n := strings.IndexByte(clip, ':'); n >= 0 {
		head, seg.Spec = clip[:n], clip[n+1:]
	}
	if n := strings.IndexByte(head, '!'); n >= 0 {
		seg.Field, seg.Conv = head[:n], head[n+1:]
		if len(seg.Conv) != 1 {
			return Segment{}, fmt.Errorf("invalid conversion %q in field %q", seg.Conv, clip)
		}
	} else {
		seg.Field = head
	}
	return seg, nil
}
