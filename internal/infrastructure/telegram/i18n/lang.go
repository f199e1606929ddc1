package i18n

import "strings"

// Lang represents a supported language
type Lang string

const (
	EN Lang = "en"
	RU Lang = "ru"
	UZ Lang = "uz"
)

// DetectLang detects language from Telegram's language_code field
func DetectLang(languageCode string) Lang {
	switch {
	case strings.HasPrefix(languageCode, "ru"):
		return RU
	case strings.HasPrefix(languageCode, "uz"):
		return UZ
	default:
		return EN
	}
}

// ParseLang parses a stored language string into Lang, defaulting to EN
func ParseLang(s string) Lang {
	switch Lang(s) {
	case RU:
		return RU
	case UZ:
		return UZ
	default:
		return EN
	}
}
