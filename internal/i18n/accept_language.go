package i18n

import (
	"golang.org/x/text/language"
)

// ParseAcceptLanguage returns the locales of an Accept-Language header in
// preference order. Malformed headers yield nil.
func ParseAcceptLanguage(header string) []string {
	if header == "" {
		return nil
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}

	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}
