package formatter

import (
	"math"
	"time"

	"github.com/lestrrat-go/strftime"
)

// TimeFormatRFC3339 is the default timestamp pattern: RFC 3339 with a
// numeric zone offset.
const TimeFormatRFC3339 = "%Y-%m-%dT%H:%M:%S%z"

// TimeDefault is the placeholder emitted when a timestamp or pattern is
// absent.
const TimeDefault = "-"

// FormatTime renders a timestamp (seconds since the Unix epoch) with a
// strftime-style pattern. The instant is localized with the zone offset
// that was in effect at that instant, not the current one, so historical
// and DST-straddling timestamps render their own offset. When the
// timestamp or the pattern is absent, or the pattern does not compile, the
// default text is returned.
func FormatTime(when *float64, pattern, def string) string {
	if when == nil || pattern == "" {
		return def
	}
	sec, frac := math.Modf(*when)
	t := time.Unix(int64(sec), int64(frac*1e9)).In(time.Local)
	out, err := strftime.Format(pattern, t)
	if err != nil {
		return def
	}
	return out
}
