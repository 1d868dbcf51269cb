package board

import (
	"strings"
	"unicode/utf8"
)

var separatorReplacer = strings.NewReplacer("-", "", ">", "", ",", "")

// ParseMoveInput splits "e2 e4", "e2e4", "e2-e4" and similar into two
// square tokens. The tokens are not validated as squares.
func ParseMoveInput(s string) (from, to string, ok bool) {
	s = separatorReplacer.Replace(strings.TrimSpace(s))

	if strings.Contains(s, " ") {
		parts := strings.Fields(s)
		if len(parts) != 2 {
			return "", "", false
		}
		return parts[0], parts[1], true
	}

	// four characters, not bytes: "é2e4" splits and then fails as a square
	if utf8.RuneCountInString(s) == 4 {
		r := []rune(s)
		return string(r[:2]), string(r[2:]), true
	}
	return "", "", false
}
