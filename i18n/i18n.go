// Package i18n translates the messages i18ncsv prints.
//
// Catalogs are gettext .po files embedded from locales/. The CLI calls Init
// once per run with the language from --lang or the config file; T and N are
// then used at the call sites that produce user-facing text.
package i18n

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var locales embed.FS

const domain = "i18ncsv"

// fallback is the source language; it needs no catalog.
const fallback = "en"

var po *gotext.Locale

// Init selects the catalog for lang. An empty lang is resolved from the
// environment: the first requested language that has an embedded catalog
// wins, and "en" is used when none does.
func Init(lang string) {
	if lang == "" {
		lang = pick(requested())
	}
	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates msgid. Untranslated strings are returned unchanged.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a message with plural forms.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// Available lists the languages that have an embedded catalog, sorted.
func Available() []string {
	entries, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		if e.IsDir() && hasCatalog(e.Name()) {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)
	return langs
}

func hasCatalog(lang string) bool {
	_, err := fs.Stat(locales, path.Join("locales", lang, "LC_MESSAGES", domain+".po"))
	return err == nil
}

// requested returns the locales asked for by the environment in gettext
// order: every entry of LANGUAGE, then LC_ALL, LC_MESSAGES and LANG.
// "ru_RU.UTF-8@euro" is reduced to "ru_RU"; C and POSIX are dropped.
func requested() []string {
	var raw []string
	raw = append(raw, strings.Split(os.Getenv("LANGUAGE"), ":")...)
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		raw = append(raw, os.Getenv(env))
	}

	var out []string
	for _, v := range raw {
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// pick returns the first candidate with a catalog, trying the full locale
// ("pt_BR") before its language part ("pt").
func pick(candidates []string) string {
	for _, c := range candidates {
		if c == fallback || strings.HasPrefix(c, fallback+"_") {
			return fallback
		}
		if hasCatalog(c) {
			return c
		}
		if base, _, ok := strings.Cut(c, "_"); ok && hasCatalog(base) {
			return base
		}
	}
	return fallback
}
