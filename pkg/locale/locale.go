package locale

import "strings"

type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// Normalize maps arbitrary language hints to a supported Language,
// defaulting to English.
func Normalize(lang string) Language {
	if Language(strings.ToLower(strings.TrimSpace(lang))) == Arabic {
		return Arabic
	}
	return English
}

// Upper is the storage form used in lead rows ("EN"/"AR").
func (l Language) Upper() string {
	return strings.ToUpper(string(l))
}

// Get returns the message for key in the given language, falling back to
// English when the key has no translation.
func Get(lang Language, key Key) string {
	if msgs, ok := messages[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	return messages[English][key]
}

// Format renders a message, substituting {placeholder} tokens.
func Format(lang Language, key Key, args map[string]string) string {
	msg := Get(lang, key)
	for name, value := range args {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg
}
