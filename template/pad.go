package template

import (
	"fmt"
	"strconv"
	"strings"
)

// Pad applies the string-padding subset of a format spec to an already
// converted value: [[fill]align][width][.precision] with an optional
// trailing "s". Anything else, such as numeric presentation verbs, is an
// error; the spec is applied after conversion, so there is no number left
// to present by the time it runs.
func Pad(s, spec string) (string, error) {
	if spec == "" {
		return s, nil
	}

	fill := ' '
	align := byte('<')
	rest := spec
	runes := []rune(spec)
	switch {
	case len(runes) >= 2 && isAlign(runes[1]):
		fill, align, rest = runes[0], byte(runes[1]), string(runes[2:])
	case isAlign(runes[0]):
		align, rest = byte(runes[0]), string(runes[1:])
	}

	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	width := 0
	if i > 0 {
		width, _ = strconv.Atoi(rest[:i])
	}
	rest = rest[i:]

	if strings.HasPrefix(rest, ".") {
		j := 1
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j == 1 {
			return "", fmt.Errorf("missing precision in format spec %q", spec)
		}
		prec, _ := strconv.Atoi(rest[1:j])
		rest = rest[j:]
		if r := []rune(s); len(r) > prec {
			s = string(r[:prec])
		}
	}

	if rest == "s" {
		rest = ""
	}
	if rest != "" {
		return "", fmt.Errorf("unsupported format spec %q", spec)
	}

	if gap := width - len([]rune(s)); gap > 0 {
		pad := strings.Repeat(string(fill), gap)
		switch align {
		case '>':
			s = pad + s
		case '^':
			left := gap / 2
			s = strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), gap-left)
		default:
			s = s + pad
		}
	}
	return s, nil
}

func isAlign(r rune) bool {
	return r == '<' || r == '>' || r == '^'
}
