package helper

import "strings"

// NormalizePhone rewrites a Bangladeshi mobile number into the 880-prefixed
// form the SMS provider expects. Rules:
//   - strip every non-digit character
//   - a leading 0 becomes the 88 country prefix (01712… → 8801712…)
//   - numbers still lacking the 880 prefix get it prepended
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(digits, "0") {
		digits = "88" + digits
	}
	if !strings.HasPrefix(digits, "880") {
		digits = "880" + digits
	}
	return digits
}

// ValidBDPhone reports whether a normalized number looks like a Bangladeshi
// mobile: 880 + 10 digits starting with 1.
func ValidBDPhone(normalized string) bool {
	return len(normalized) == 13 &&
		strings.HasPrefix(normalized, "8801")
}
