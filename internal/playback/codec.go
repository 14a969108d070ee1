package playback

import (
	"math"
	"strconv"
	"strings"
)

// FormatIntent encodes a play intent the way it is persisted.
func FormatIntent(play bool) string {
	if play {
		return "1"
	}
	return "0"
}

// ParseIntent decodes a persisted play intent. Anything unparseable is false.
func ParseIntent(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

func FormatElapsed(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// ParseElapsed decodes a persisted position in seconds. Unparseable,
// negative and non-finite values decode as zero.
func ParseElapsed(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
