package types

// Locale identifies one of the site languages.
type Locale string

const (
	LocaleTurkish Locale = "tr"
	LocaleEnglish Locale = "en"
	LocaleSerbian Locale = "sr"
)

var SupportedLocales = []Locale{LocaleTurkish, LocaleEnglish, LocaleSerbian}

func (l Locale) Valid() bool {
	for _, s := range SupportedLocales {
		if l == s {
			return true
		}
	}
	return false
}
