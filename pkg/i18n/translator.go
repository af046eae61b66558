package i18n

import (
	"errors"
	"strings"
)

var (
	// ErrMissingTranslator is reported when no translator is configured.
	ErrMissingTranslator = errors.New("i18n: translator not configured")
	// ErrMissingTranslation is reported for keys absent from every catalog.
	ErrMissingTranslation = errors.New("i18n: missing translation")
)

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when a key cannot be
// resolved.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// MissingKey returns the key itself.
func MissingKey(_ string, key string, _ []any, _ error) string {
	return key
}

// Resolve translates key and falls back to onMissing (or the key) when the
// translator is absent or fails.
func Resolve(t Translator, locale, key string, onMissing MissingTranslationHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if onMissing == nil {
		onMissing = MissingKey
	}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(locale, key, args, err)
	}
	return msg
}

// Func adapts Resolve into a template helper: translate(key, ...args).
func Func(t Translator, locale string) func(key string, args ...any) string {
	return func(key string, args ...any) string {
		return Resolve(t, locale, key, nil, args...)
	}
}
