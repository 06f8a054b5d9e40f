package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flatlog/flatlog/core"
)

// FormatUnformattable describes an event that could not be formatted,
// degrading through two tiers. The first tier renders the whole event with
// each value's own representation, which may itself fail. The second tier
// rebuilds the output from representations that cannot fail, so this
// function always returns text.
func FormatUnformattable(ev *core.Event, formatErr error) string {
	text, err := describeEvent(ev, formatErr)
	if err == nil {
		return text
	}

	// Something really nasty happened. Recover as much formattable data as
	// possible; hopefully at least the namespace is sane, which helps find
	// the offending logger.
	pairs := ev.Pairs()
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = core.SafeRepr(p.Key) + " = " + core.SafeRepr(p.Value)
	}
	return fmt.Sprintf(
		"MESSAGE LOST: unformattable object logged: %s\nRecoverable data: %s\nException during formatting:\n%s",
		core.SafeRepr(formatErr), strings.Join(parts, ", "), core.SafeRepr(err),
	)
}

// describeEvent is the first fallback tier: "Unable to format event
// {event}: {error}". It invokes each value's representation directly, so a
// misbehaving value makes it fail and hand over to the second tier.
func describeEvent(ev *core.Event, formatErr error) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("describing event: %v", r)
		}
	}()

	buf := getBuffer()
	defer putBuffer(buf)
	buf.WriteString("Unable to format event {")
	for i, p := range ev.Pairs() {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(strconv.Quote(p.Key))
		buf.WriteString(": ")
		buf.WriteString(core.Repr(p.Value))
	}
	buf.WriteString("}: ")
	buf.WriteString(formatErr.Error())
	return buf.String(), nil
}
