package rpkg

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is localization code accepted by Cinema 4D string tables.
// ENUM(us, de, jp, cz, es, fr, it, pl)
type Language string

var languageTags = map[Language]language.Tag{
	LanguageUs: language.AmericanEnglish,
	LanguageDe: language.German,
	LanguageJp: language.Japanese,
	LanguageCz: language.Czech,
	LanguageEs: language.Spanish,
	LanguageFr: language.French,
	LanguageIt: language.Italian,
	LanguagePl: language.Polish,
}

// Tag returns BCP 47 tag for language code, codes used by Cinema 4D are not
// always ISO 639 ones.
func (x Language) Tag() language.Tag {
	if t, ok := languageTags[x]; ok {
		return t
	}
	return language.Und
}

// DisplayName returns English name of the language.
func (x Language) DisplayName() string {
	if !x.IsValid() {
		return x.String()
	}
	return display.Tags(language.English).Name(x.Tag())
}

// Dir returns name of resource directory holding string tables for language.
func (x Language) Dir() string {
	return "strings_" + x.String()
}
