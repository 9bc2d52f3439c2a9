package statement

import (
	"strconv"
	"strings"
)

// moneyCleaner strips the punctuation statements legitimately print inside
// amounts: thousands commas, pound signs and spaces.
var moneyCleaner = strings.NewReplacer(",", "", "£", "", " ", "", " ", "")

// parseMoney parses a statement cell amount. A value wrapped in parentheses
// is negative. The accepted punctuation is deliberately narrow; anything
// unexpected (letters, stray symbols) fails the parse rather than being
// stripped, so garbage cells never turn into plausible numbers.
func parseMoney(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	s = moneyCleaner.Replace(s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}
