package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

var latinName = regexp.MustCompile(`^[A-Za-z\s]+$`)

// arabicNames maps common Arabic given and family names to the English
// spellings used in stored lead rows.
var arabicNames = map[string]string{
	"أحمد":     "Ahmed",
	"محمد":     "Mohammed",
	"محمود":    "Mahmoud",
	"خالد":     "Khalid",
	"علي":      "Ali",
	"عمر":      "Omar",
	"حسن":      "Hassan",
	"حسين":     "Hussein",
	"إبراهيم":  "Ibrahim",
	"يوسف":     "Youssef",
	"مصطفى":    "Mustafa",
	"عبدالله":  "Abdullah",
	"سعيد":     "Saeed",
	"راشد":     "Rashid",
	"سالم":     "Salem",
	"الحارثي":  "Al Harthy",
	"البوسعيدي": "Al Busaidi",
	"السيابي":  "Al Siyabi",
	"البلوشي":  "Al Balushi",
}

// NormalizeName returns the storage form of a person's name: Latin-script
// names are title-cased, known Arabic names converted to their English
// spellings, anything else passed through trimmed.
func NormalizeName(name string) string {
	name = TrimAndNormalize(name)
	if name == "" {
		return ""
	}
	if latinName.MatchString(name) {
		return titleCase(name)
	}
	for arabic, english := range arabicNames {
		name = strings.ReplaceAll(name, arabic, english)
	}
	return TrimAndNormalize(name)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
