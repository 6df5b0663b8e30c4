package advert

import (
	"regexp"
	"strconv"
	"strings"
)

// priceRe accepts the sale price input format: dot-grouped thousands,
// comma decimal separator, up to two decimal digits (ex.: 1.234,56).
var priceRe = regexp.MustCompile(`^\s*(?:[1-9]\d{0,2}(?:\.\d{3})*|[1-9]\d*|0)(?:,\d{0,2})?\s*$`)

// ValidPrice reports whether s matches the accepted price format.
func ValidPrice(s string) bool {
	return priceRe.MatchString(s)
}

// ParsePrice converts a display price into integer minor units:
// "1.234,56" becomes 123456. Missing decimal digits count as zero.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if !priceRe.MatchString(s) {
		return 0, ErrInvalidPrice
	}

	s = strings.ReplaceAll(s, ".", "")
	whole, frac, _ := strings.Cut(s, ",")
	for len(frac) < 2 {
		frac += "0"
	}

	return strconv.ParseInt(whole+frac, 10, 64)
}

// FormatPrice renders minor units back into the display format, so that
// parse and format round-trip: 123456 becomes "1.234,56".
func FormatPrice(cents int64) string {
	digits := strconv.FormatInt(cents, 10)
	for len(digits) < 3 {
		digits = "0" + digits
	}

	whole := digits[:len(digits)-2]
	frac := digits[len(digits)-2:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String() + "," + frac
}
