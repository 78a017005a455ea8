// Package i18n resolves user-facing widget text through go-playground's
// universal translator.
//
// Catalog text uses named placeholders such as "{exam_link}". They are mapped
// to the translator's positional "{0}" syntax when a message is registered, so
// every locale may order its placeholders freely.
package i18n

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
)

var (
	ErrUnsupportedLocale     = errors.New("unsupported locale")
	ErrMalformedPlaceholder  = errors.New("malformed placeholder")
	ErrDuplicatedPlaceholder = errors.New("duplicated placeholder")
	ErrPlaceholderMismatch   = errors.New("placeholder mismatch")
)

var placeholderPattern = regexp.MustCompile(`\{([a-z_][a-z0-9_]*)\}`)

// Bundle holds every supported locale and its messages.
// It must be fully populated before Translator is called concurrently.
type Bundle struct {
	uni           *ut.UniversalTranslator
	defaultLocale string

	// locale -> key -> placeholder names in order of appearance
	params map[string]map[string][]string
}

// NewBundle creates a Bundle for the built-in locales and registers the
// default widget catalog.
func NewBundle(defaultLocale string) (*Bundle, error) {
	supported := []locales.Translator{en.New(), id.New()}

	b := &Bundle{
		uni:    ut.New(supported[0], supported...),
		params: make(map[string]map[string][]string, len(supported)),
	}

	trans, found := b.lookup(defaultLocale)
	if !found {
		return nil, fmt.Errorf("default locale %q: %w", defaultLocale, ErrUnsupportedLocale)
	}
	b.defaultLocale = trans.Locale()

	for locale, messages := range defaultCatalog {
		for key, text := range messages {
			if err := b.Add(locale, key, text, false); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
	}

	return b, nil
}

// DefaultLocale returns the locale used when no requested locale is supported.
func (b *Bundle) DefaultLocale() string {
	return b.defaultLocale
}

// Supports reports whether the bundle has a translator for the locale.
func (b *Bundle) Supports(locale string) bool {
	_, found := b.lookup(locale)
	return found
}

// lookup finds the translator for locale or, failing that, its base language.
func (b *Bundle) lookup(locale string) (ut.Translator, bool) {
	normalized := normalizeLocale(locale)
	if trans, found := b.uni.GetTranslator(normalized); found {
		return trans, true
	}
	if base, _, ok := strings.Cut(normalized, "_"); ok {
		return b.uni.GetTranslator(base)
	}
	return nil, false
}

// Add registers text for key in the given locale.
func (b *Bundle) Add(locale, key, text string, override bool) error {
	trans, found := b.lookup(locale)
	if !found {
		return fmt.Errorf("%q: %w", locale, ErrUnsupportedLocale)
	}

	positional, names, err := toPositional(text)
	if err != nil {
		return err
	}

	if err := trans.Add(key, positional, override); err != nil {
		return err
	}

	keys, ok := b.params[trans.Locale()]
	if !ok {
		keys = make(map[string][]string)
		b.params[trans.Locale()] = keys
	}
	keys[key] = names
	return nil
}

// checkPlaceholders verifies that text uses exactly the placeholders already
// registered for key, in the locale or else the default locale. Keys with no
// registered message are accepted as is.
func (b *Bundle) checkPlaceholders(locale, key, text string) error {
	trans, found := b.lookup(locale)
	if !found {
		return fmt.Errorf("%q: %w", locale, ErrUnsupportedLocale)
	}

	want, ok := b.params[trans.Locale()][key]
	if !ok {
		if want, ok = b.params[b.defaultLocale][key]; !ok {
			return nil
		}
	}

	_, got, err := toPositional(text)
	if err != nil {
		return err
	}
	if !samePlaceholders(want, got) {
		return fmt.Errorf("want {%s}, got {%s}: %w",
			strings.Join(want, "}, {"), strings.Join(got, "}, {"), ErrPlaceholderMismatch)
	}
	return nil
}

// samePlaceholders compares placeholder names ignoring order.
func samePlaceholders(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, name := range a {
		set[name] = struct{}{}
	}
	for _, name := range b {
		if _, ok := set[name]; !ok {
			return false
		}
	}
	return true
}

// Translator returns a translator for the first supported locale among the
// candidates. Region-qualified candidates ("en-US") also match their base
// language. The default locale is used when nothing matches.
func (b *Bundle) Translator(candidates ...string) *LocaleTranslator {
	expanded := make([]string, 0, len(candidates)*2)
	for _, c := range candidates {
		normalized := normalizeLocale(c)
		if normalized == "" {
			continue
		}
		expanded = append(expanded, normalized)
		if base, _, ok := strings.Cut(normalized, "_"); ok {
			expanded = append(expanded, base)
		}
	}

	fallback, _ := b.uni.GetTranslator(b.defaultLocale)

	trans, found := b.uni.FindTranslator(expanded...)
	if !found {
		trans = fallback
	}

	return &LocaleTranslator{bundle: b, trans: trans, fallback: fallback}
}

func (b *Bundle) resolve(trans ut.Translator, key string, params map[string]string) (string, bool) {
	names, ok := b.params[trans.Locale()][key]
	if !ok {
		return "", false
	}

	args := make([]string, len(names))
	for i, name := range names {
		args[i] = params[name]
	}

	msg, err := trans.T(key, args...)
	if err != nil {
		return "", false
	}
	return msg, true
}

// LocaleTranslator resolves keys for a single locale, falling back to the
// bundle's default locale for keys the locale does not define.
type LocaleTranslator struct {
	bundle   *Bundle
	trans    ut.Translator
	fallback ut.Translator
}

// Locale returns the locale this translator resolves for.
func (t *LocaleTranslator) Locale() string {
	return t.trans.Locale()
}

// Resolve returns the message for key with named placeholders replaced by
// params. Missing params render as empty strings. A key unknown to every
// locale resolves to the key itself.
func (t *LocaleTranslator) Resolve(key string, params map[string]string) string {
	if msg, ok := t.bundle.resolve(t.trans, key, params); ok {
		return msg
	}
	if t.fallback != nil && t.fallback.Locale() != t.trans.Locale() {
		if msg, ok := t.bundle.resolve(t.fallback, key, params); ok {
			return msg
		}
	}
	return key
}

// toPositional rewrites named placeholders to universal-translator's
// positional syntax, numbering them in order of appearance.
func toPositional(text string) (string, []string, error) {
	var (
		names []string
		seen  = make(map[string]struct{})
		dup   string
	)

	out := placeholderPattern.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]
		if _, ok := seen[name]; ok && dup == "" {
			dup = name
		}
		seen[name] = struct{}{}
		names = append(names, name)
		return "{" + strconv.Itoa(len(names)-1) + "}"
	})

	if dup != "" {
		return "", nil, fmt.Errorf("%q: %w", dup, ErrDuplicatedPlaceholder)
	}

	// Anything brace-shaped left over is not a named placeholder.
	rest := placeholderPattern.ReplaceAllString(text, "")
	if strings.ContainsAny(rest, "{}") {
		return "", nil, fmt.Errorf("%q: %w", text, ErrMalformedPlaceholder)
	}

	return out, names, nil
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "-", "_"))
}
