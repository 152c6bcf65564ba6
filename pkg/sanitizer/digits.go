package sanitizer

import "strings"

var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// NormalizeDigits converts Arabic-Indic numerals to their ASCII
// equivalents, leaving everything else untouched.
func NormalizeDigits(s string) string {
	return arabicDigits.Replace(s)
}
