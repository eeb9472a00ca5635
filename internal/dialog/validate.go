package dialog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	phoneRe  = regexp.MustCompile(`^\d{10}$`)
	cardRe   = regexp.MustCompile(`^\d{16}$`)
	expiryRe = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	cvvRe    = regexp.MustCompile(`^\d{3,4}$`)
)

func validPhone(text string) bool {
	return phoneRe.MatchString(strings.TrimSpace(text))
}

// normalizeCardNumber drops spaces and dashes used as digit group
// separators. The result is checked for format only, there is no checksum.
func normalizeCardNumber(text string) (string, bool) {
	n := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(text))
	return n, cardRe.MatchString(n)
}

// validExpiry accepts MM/YY with a month of 1-12 that has not already
// ended relative to now.
func validExpiry(text string, now time.Time) bool {
	m := expiryRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return false
	}
	year += 2000
	return year > now.Year() || (year == now.Year() && month >= int(now.Month()))
}

func validCVV(text string) bool {
	return cvvRe.MatchString(strings.TrimSpace(text))
}
