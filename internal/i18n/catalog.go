// Package i18n loads the embedded message catalogs and resolves catalog keys
// to display text.
//
// Catalogs are nested YAML documents under locales/<code>.yaml. Nested maps
// flatten to dot-separated keys, so
//
//	PRAY:
//	  SIGN: "..."
//
// is looked up as PRAY.SIGN. Lookups fall back from the requested locale to
// BaseLocale and finally to the key itself.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the complete catalog every other locale falls back to.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Bundle holds every loaded locale.
type Bundle struct {
	messages map[string]map[string]string
	codes    []string
	matcher  language.Matcher
}

// Default returns the process-wide embedded bundle.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(fmt.Sprintf("i18n: load embedded catalogs: %v", err))
	}
	return b
}

// LoadFromFS loads locales/*.yaml from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{messages: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		code := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if _, err := language.Parse(code); err != nil {
			return nil, fmt.Errorf("catalog %s: invalid locale %q: %w", p, code, err)
		}
		flat := map[string]string{}
		if err := flatten("", tree, flat); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
		b.messages[code] = flat
	}

	if _, ok := b.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// Base locale first so the matcher falls back to it.
	b.codes = append(b.codes, BaseLocale)
	for code := range b.messages {
		if code != BaseLocale {
			b.codes = append(b.codes, code)
		}
	}
	sort.Strings(b.codes[1:])

	tags := make([]language.Tag, len(b.codes))
	for i, code := range b.codes {
		tags[i] = language.Make(code)
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) error {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			if err := flatten(key, v, out); err != nil {
				return err
			}
		case string:
			out[key] = v
		case nil:
			return fmt.Errorf("key %q has no value", key)
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return nil
}

// Locales returns the available locale codes, base locale first.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.codes))
	copy(out, b.codes)
	return out
}

// Has reports whether locale defines key itself, without fallback.
func (b *Bundle) Has(locale, key string) bool {
	_, ok := b.messages[locale][key]
	return ok
}

// Keys returns every key defined by locale, sorted.
func (b *Bundle) Keys(locale string) []string {
	msgs := b.messages[locale]
	keys := make([]string, 0, len(msgs))
	for k := range msgs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Match returns the best available locale for the preferred languages,
// given as BCP 47 tags or POSIX locale names such as pl_PL.UTF-8.
func (b *Bundle) Match(preferred ...string) string {
	var tags []language.Tag
	for _, p := range preferred {
		p = normalizePOSIX(p)
		if p == "" {
			continue
		}
		if t, err := language.Parse(p); err == nil {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return BaseLocale
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return BaseLocale
	}
	return b.codes[idx]
}

// Next returns the locale after current in Locales order, wrapping around.
func (b *Bundle) Next(current string) string {
	for i, code := range b.codes {
		if code == current {
			return b.codes[(i+1)%len(b.codes)]
		}
	}
	return b.codes[0]
}

// EnvLocales returns the user's locale preferences from the environment.
func EnvLocales() []string {
	var out []string
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func normalizePOSIX(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Translator resolves keys for one locale.
type Translator struct {
	bundle *Bundle
	locale string
}

// Translator returns a translator for locale. Unknown locales resolve
// through the base locale.
func (b *Bundle) Translator(locale string) *Translator {
	if _, ok := b.messages[locale]; !ok {
		locale = BaseLocale
	}
	return &Translator{bundle: b, locale: locale}
}

// Locale returns the translator's locale code.
func (t *Translator) Locale() string {
	return t.locale
}

// T resolves key and substitutes %{name} placeholders from name/value pairs.
func (t *Translator) T(key string, pairs ...string) string {
	msg, ok := t.bundle.messages[t.locale][key]
	if !ok {
		msg, ok = t.bundle.messages[BaseLocale][key]
	}
	if !ok {
		msg = key
	}
	if len(pairs) == 0 {
		return msg
	}
	repl := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		repl = append(repl, "%{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(repl...).Replace(msg)
}
