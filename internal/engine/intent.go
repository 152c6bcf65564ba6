package engine

import (
	"strings"

	"marsa/pkg/sanitizer"
)

// Intent is the result of the pre-classification pass that runs before
// any per-state handling. Greetings reset the conversation, cancel words
// abandon the current flow, FAQ keywords are answered without touching
// session state.
type Intent int

const (
	IntentNone Intent = iota
	IntentGreeting
	IntentCancel
	IntentFAQLocation
	IntentFAQPricing
)

var greetingWords = map[string]bool{
	"hi": true, "hello": true, "hey": true, "menu": true, "start": true,
	"marhaba": true, "salam": true,
	"مرحبا": true, "اهلا": true, "أهلا": true, "هلا": true,
	"السلام عليكم": true, "سلام": true, "ابدأ": true, "القائمة": true,
}

var cancelWords = map[string]bool{
	"cancel": true, "stop": true, "quit": true,
	"الغاء": true, "إلغاء": true, "ايقاف": true, "إيقاف": true,
}

var locationWords = []string{
	"location", "where", "address", "directions",
	"موقع", "وين", "اين", "أين", "العنوان",
}

var pricingWords = []string{
	"price", "prices", "cost", "how much", "fee",
	"سعر", "اسعار", "أسعار", "كم", "التكلفة",
}

// Classify inspects raw message text. Exact-match words take priority
// over keyword scans so a booking answer like "Muscat Street 9" is not
// swallowed by the location FAQ.
func Classify(text string) Intent {
	s := strings.ToLower(sanitizer.TrimAndNormalize(text))
	if s == "" {
		return IntentNone
	}
	if greetingWords[s] {
		return IntentGreeting
	}
	if cancelWords[s] {
		return IntentCancel
	}
	words := strings.Fields(s)
	if len(words) <= 4 {
		for _, w := range locationWords {
			if strings.Contains(s, w) {
				return IntentFAQLocation
			}
		}
		for _, w := range pricingWords {
			if strings.Contains(s, w) {
				return IntentFAQPricing
			}
		}
	}
	return IntentNone
}
