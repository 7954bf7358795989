package gosplice

import "strings"

// LanguageNames maps language tags to human-readable names for reports and
// provider prompts.
var LanguageNames = map[string]string{
	"en-US": "English (United States)",
	"en-GB": "English (United Kingdom)",
	"de-DE": "German (Germany)",
	"es-ES": "Spanish (Spain)",
	"es-MX": "Spanish (Mexico)",
	"fr-FR": "French (France)",
	"it-IT": "Italian (Italy)",
	"ja-JP": "Japanese (Japan)",
	"pt-BR": "Portuguese (Brazil)",
	"pt-PT": "Portuguese (Portugal)",
	"zh-CN": "Chinese (Simplified)",
	"zh-TW": "Chinese (Traditional)",
	"ar-SA": "Arabic (Saudi Arabia)",
	"cs-CZ": "Czech (Czech Republic)",
	"da-DK": "Danish (Denmark)",
	"el-GR": "Greek (Greece)",
	"fi-FI": "Finnish (Finland)",
	"he-IL": "Hebrew (Israel)",
	"hu-HU": "Hungarian (Hungary)",
	"ko-KR": "Korean (South Korea)",
	"nl-NL": "Dutch (Netherlands)",
	"nb-NO": "Norwegian Bokmål (Norway)",
	"pl-PL": "Polish (Poland)",
	"ro-RO": "Romanian (Romania)",
	"ru-RU": "Russian (Russia)",
	"sv-SE": "Swedish (Sweden)",
	"tr-TR": "Turkish (Turkey)",
	"uk-UA": "Ukrainian (Ukraine)",
	"vi-VN": "Vietnamese (Vietnam)",
}

// GetLanguageName returns the human-readable name for a language tag,
// falling back to the tag itself.
func GetLanguageName(lang string) string {
	if name, ok := LanguageNames[ToXMLLang(lang)]; ok {
		return name
	}
	return lang
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(lang string) string {
	if RTLLanguages[baseLang(lang)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(lang string) bool {
	return GetDirection(lang) == "rtl"
}

// ToXMLLang converts a language tag to xml:lang attribute format
// (e.g. "de_DE" -> "de-DE").
func ToXMLLang(lang string) string {
	return strings.ReplaceAll(lang, "_", "-")
}

// baseLang extracts the lowercased base language code (e.g. "de" from
// "de-DE" or "de_DE").
func baseLang(lang string) string {
	base := strings.FieldsFunc(lang, func(r rune) bool { return r == '-' || r == '_' })
	if len(base) == 0 {
		return ""
	}
	return strings.ToLower(base[0])
}

// SameLanguage reports whether two language tags share a base language, in
// which case translation can be bypassed.
func SameLanguage(a, b string) bool {
	return baseLang(a) == baseLang(b)
}
