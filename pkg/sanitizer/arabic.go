package sanitizer

import "strings"

// arabicTourTypes maps Arabic tour labels to the English resource names
// used by the ledger and lead storage.
var arabicTourTypes = map[string]string{
	"مشاهدة الدلافين":       "Dolphin Watching",
	"جولة مشاهدة الدلافين":  "Dolphin Watching",
	"الغوص بالسنوركل":       "Snorkeling",
	"مغامرة الغوص بالسنوركل": "Snorkeling",
	"رحلة سفينة الداو":      "Dhow Cruise",
	"سفينة الداو التقليدية":  "Dhow Cruise",
	"رحلة الداو":            "Dhow Cruise",
	"صيد السمك":             "Fishing Trip",
	"رحلة صيد":              "Fishing Trip",
	"صيد أعماق البحار":      "Fishing Trip",
}

func NormalizeTourType(tour string) string {
	tour = TrimAndNormalize(tour)
	if english, ok := arabicTourTypes[tour]; ok {
		return english
	}
	return tour
}

// arabicDateTerms maps Arabic relative-date words to the English terms the
// date parser understands.
var arabicDateTerms = map[string]string{
	"غداً":     "tomorrow",
	"غدا":      "tomorrow",
	"اليوم":    "today",
	"الاثنين":  "Monday",
	"الثلاثاء": "Tuesday",
	"الأربعاء": "Wednesday",
	"الخميس":   "Thursday",
	"الجمعة":   "Friday",
	"السبت":    "Saturday",
	"الأحد":    "Sunday",
}

func NormalizeDateTerm(s string) string {
	s = TrimAndNormalize(NormalizeDigits(s))
	for arabic, english := range arabicDateTerms {
		s = strings.ReplaceAll(s, arabic, english)
	}
	return s
}
