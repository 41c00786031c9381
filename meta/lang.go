package meta

import (
	"context"
	"sync"
)

var (
	langMapOnce sync.Once                    //nolint:gochecknoglobals // SetLanguageMap runs once
	langMap     map[string]map[string]string //nolint:gochecknoglobals // avoids threading translations through every layer
	defaultLang string                       //nolint:gochecknoglobals // avoids threading translations through every layer
)

// SetLanguageMap installs the translation table and the fallback language.
// Call it once at startup; later calls are ignored.
func SetLanguageMap(m map[string]map[string]string, defLang string) {
	langMapOnce.Do(func() {
		langMap = m
		defaultLang = defLang
	})
}

// L picks the value for lang from a per-language map, falling back to the
// default language and then to any available value.
func L(m map[string]string, lang string) string {
	if v, ok := m[lang]; ok {
		return v
	}
	if v, ok := m[defaultLang]; ok {
		return v
	}
	for _, v := range m {
		return v
	}
	return ""
}

// LCtx is L with the language taken from the request context.
func LCtx(ctx context.Context, m map[string]string) string {
	return L(m, Find(ctx, AcceptLanguage))
}

// Tr translates text into lang through the installed language map, falling
// back to the default language.
func Tr(text, lang string) string {
	if lang == "" {
		lang = defaultLang
	}

	if m, ok := langMap[lang]; ok {
		return translationOf(text, m)
	}
	return translationOf(text, langMap[defaultLang])
}

// TrCtx is Tr with the language taken from the request context.
func TrCtx(ctx context.Context, text string) string {
	return Tr(text, Find(ctx, AcceptLanguage))
}

func translationOf(text string, m map[string]string) string {
	if res := m[text]; res != "" {
		return res
	}
	return "[untranslated]: " + text
}
