package validate

import (
	"regexp"
	"strings"
)

var (
	// US ZIP: 5 digits
	reZIP      = regexp.MustCompile(`^[0-9]{5}$`)
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCoupon   = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)
	reCard     = regexp.MustCompile(`^[0-9]{13,19}$`)
	reExpDate  = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	reCVV      = regexp.MustCompile(`^[0-9]{3,4}$`)
	reTracking = regexp.MustCompile(`^TRK[0-9]{6}$`)
	reMethod   = regexp.MustCompile(`^(CARD|PAYPAL|COD)$`)
)

func ZIP(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 5 {
		return "", false
	}
	return s, reZIP.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/discount/session ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// CouponCode validates the shape of a discount code before any lookup.
func CouponCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, s != "" && reCoupon.MatchString(s)
}

// Qty bounds a requested order quantity. Zero and negatives are rejected
// outright; the cap keeps a single line from draining a whole stock row.
func Qty(n int) bool { return n >= 1 && n <= 50 }

// Price accepts a positive amount with at most two plausible decimals.
func Price(v float64) bool { return v > 0 && v < 1_000_000 }

// CardNumber strips separators and checks digit count only. Full PAN
// verification belongs to the payment gateway, not this service.
func CardNumber(s string) (string, bool) {
	s = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
	return s, reCard.MatchString(s)
}

func ExpDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reExpDate.MatchString(s)
}

func CVV(s string) bool { return reCVV.MatchString(strings.TrimSpace(s)) }

func PaymentMethod(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reMethod.MatchString(s)
}

func TrackingNumber(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reTracking.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, true
}

// Password enforces the account password policy for login checks.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// MaskCard keeps only the last four digits for persistence and logs.
func MaskCard(s string) string {
	if len(s) <= 4 {
		return s
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
