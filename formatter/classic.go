package formatter

import (
	"strings"

	"github.com/flatlog/flatlog/core"
)

// TimeFormatter renders an optional timestamp as text.
type TimeFormatter func(when *float64) string

// DefaultTimeFormatter renders RFC 3339 with a numeric offset, or "-" when
// the timestamp is absent.
func DefaultTimeFormatter(when *float64) string {
	return FormatTime(when, TimeFormatRFC3339, TimeDefault)
}

// FormatClassicLine assembles the traditional one-line text record
// "{time} [{system}] {message}\n" for plain-text log output. The system
// tag is the event's log_system if set, otherwise "namespace#levelName"
// with "-" for either part when absent. Newlines inside the message are
// indented with a tab so continuation lines stay visually attached.
//
// A nil formatTime selects DefaultTimeFormatter. The second result is
// false when the event renders to nothing and no line should be emitted.
func FormatClassicLine(ev *core.Event, formatTime TimeFormatter) (string, bool) {
	if formatTime == nil {
		formatTime = DefaultTimeFormatter
	}

	eventText := Format(ev)
	if eventText == "" {
		return "", false
	}
	eventText = strings.ReplaceAll(eventText, "\n", "\n\t")

	var system string
	if ev.System != nil {
		system = systemText(ev.System)
	} else {
		namespace := ev.Namespace
		if namespace == "" {
			namespace = "-"
		}
		levelName := "-"
		if ev.Level != nil {
			levelName = ev.Level.Name()
		}
		system = namespace + "#" + levelName
	}

	buf := getBuffer()
	defer putBuffer(buf)
	buf.WriteString(formatTime(ev.Time))
	buf.WriteString(" [")
	buf.WriteString(system)
	buf.WriteString("] ")
	buf.WriteString(eventText)
	buf.WriteByte('\n')
	return buf.String(), true
}

// systemText stringifies log_system; a failure must not lose the line.
func systemText(system any) (s string) {
	defer func() {
		if recover() != nil {
			s = "UNFORMATTABLE"
		}
	}()
	return core.Str(system)
}
