package ring

import (
	"strconv"
	"strings"
)

// Delimiter separates identity fields. Hex colours never contain it; a
// colour format that does would break decoding.
const Delimiter = "-"

// Fallbacks used when an identity is missing or malformed.
const (
	FallbackHighlight = "#ff0000"
	FallbackFill      = "#ffffff"
)

// Identity is the score/colour triple attached to a ring shape.
type Identity struct {
	Score     int
	Highlight string
	Fill      string
}

// EncodeIdentity joins score, highlight and fill into a shape id.
func EncodeIdentity(score int, highlight, fill string) string {
	return strconv.Itoa(score) + Delimiter + highlight + Delimiter + fill
}

// DecodeIdentity parses a shape id. It never fails: a missing or
// unparseable score yields 0 and missing colours take the fallbacks.
func DecodeIdentity(raw string) Identity {
	parts := strings.Split(raw, Delimiter)

	id := Identity{
		Highlight: FallbackHighlight,
		Fill:      FallbackFill,
	}
	id.Score = leadingInt(parts[0])
	if len(parts) > 1 && parts[1] != "" {
		id.Highlight = parts[1]
	}
	if len(parts) > 2 && parts[2] != "" {
		id.Fill = parts[2]
	}
	return id
}

// leadingInt parses the leading decimal digits of s, returning 0 when there
// are none. "10abc" parses as 10.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
