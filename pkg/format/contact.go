package format

import (
	"fmt"
	"strings"
)

// NotAvailable is rendered for contact values that cannot be formatted.
const NotAvailable = "N/A"

// Phone formats the trailing ten digits of s as a North American number,
// e.g. "+1 (305) 123-4567". Non-digits are ignored; fewer than ten digits
// yields NotAvailable.
func Phone(s string) string {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	if len(digits) < 10 {
		return NotAvailable
	}
	d := digits[len(digits)-10:]
	return fmt.Sprintf("+1 (%s) %s-%s", d[:3], d[3:6], d[6:])
}

// Email trims and lower-cases an address. Blank values and values without
// an "@" yield NotAvailable.
func Email(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || !strings.Contains(s, "@") {
		return NotAvailable
	}
	return s
}
