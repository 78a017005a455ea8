package i18n

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// LoadOverrides registers every <locale>.yaml (or .yml) file in dir on top of
// the built-in catalog. Each file is a flat map of message key to text.
// Markup in override text is stripped; catalog text is always plain text.
// An override must keep the placeholders of the message it replaces.
// It returns the number of messages registered.
func (b *Bundle) LoadOverrides(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read locales dir: %w", err)
	}

	var count int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		locale := strings.TrimSuffix(entry.Name(), ext)
		if !b.Supports(locale) {
			return count, fmt.Errorf("%s: %q: %w", entry.Name(), locale, ErrUnsupportedLocale)
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return count, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		var messages map[string]string
		if err := yaml.Unmarshal(raw, &messages); err != nil {
			return count, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}

		for key, text := range messages {
			text = plainText(text)
			if err := b.checkPlaceholders(locale, key, text); err != nil {
				return count, fmt.Errorf("%s: %s: %w", entry.Name(), key, err)
			}
			if err := b.Add(locale, key, text, true); err != nil {
				return count, fmt.Errorf("%s: %s: %w", entry.Name(), key, err)
			}
			count++
		}
	}

	return count, nil
}

// plainText strips markup. bluemonday escapes the text it keeps, so the
// result is unescaped again; escaping happens once, at render time.
func plainText(text string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(text)))
}
