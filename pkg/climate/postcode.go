package climate

import (
	"regexp"
	"strings"
	"unicode"
)

var postcodePattern = regexp.MustCompile(`(?i)^[A-Z]{1,2}\d{1,2}[A-Z]?\s?\d[A-Z]{2}$`)

func cleanPostcode(postcode string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, postcode))
}

// ExtractArea returns the leading one or two letters of a postcode
// ("SW1A 1AA" → "SW", "M1 1AA" → "M"), or "" if it does not start with a letter.
func ExtractArea(postcode string) string {
	clean := cleanPostcode(postcode)
	n := 0
	for n < len(clean) && n < 2 && clean[n] >= 'A' && clean[n] <= 'Z' {
		n++
	}
	return clean[:n]
}

// ValidatePostcode reports whether postcode has the shape of a UK postcode.
func ValidatePostcode(postcode string) bool {
	if postcode == "" {
		return false
	}
	return postcodePattern.MatchString(cleanPostcode(postcode))
}

// FormatPostcode upper-cases a postcode and puts a single space before the
// inward code.
func FormatPostcode(postcode string) string {
	clean := cleanPostcode(postcode)
	if len(clean) > 3 {
		return clean[:len(clean)-3] + " " + clean[len(clean)-3:]
	}
	return clean
}
