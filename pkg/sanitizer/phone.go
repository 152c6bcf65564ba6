package sanitizer

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

var supportedRegions = []string{
	"OM",
	"AE",
	"SA",
}

// NormalizePhone canonicalizes one sender identity to E.164. Oman local
// numbers arrive as bare 8-digit strings starting 9, 7 or 8; those get the
// 968 country code before parsing. Returns "" when nothing parseable.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(NormalizeDigits(phone))
	if phone == "" {
		return ""
	}

	if local := omanLocal(phone); local != "" {
		phone = "+968" + local
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err == nil {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return ""
}

// omanLocal returns the bare 8-digit subscriber number when the input is a
// local Oman mobile/landline form, "" otherwise.
func omanLocal(phone string) string {
	digits := keepDigits(phone)
	if len(digits) == 8 {
		switch digits[0] {
		case '9', '7', '8':
			return digits
		}
	}
	return ""
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
