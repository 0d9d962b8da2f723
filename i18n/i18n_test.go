package i18n

import (
	"reflect"
	"testing"
)

func setLocaleEnv(t *testing.T, language, lcAll, lcMessages, lang string) {
	t.Helper()
	t.Setenv("LANGUAGE", language)
	t.Setenv("LC_ALL", lcAll)
	t.Setenv("LC_MESSAGES", lcMessages)
	t.Setenv("LANG", lang)
}

func TestRequestedLocales(t *testing.T) {
	setLocaleEnv(t, "de_AT:ru_RU.UTF-8", "C", "", "sr_RS.UTF-8@latin")

	want := []string{"de_AT", "ru_RU", "sr_RS"}
	if got := requested(); !reflect.DeepEqual(got, want) {
		t.Fatalf("requested() = %v, want %v", got, want)
	}
}

func TestPick(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"skips languages without a catalog", []string{"de_AT", "ru_RU"}, "ru"},
		{"English stops the search", []string{"en_GB", "ru"}, "en"},
		{"nothing requested", nil, "en"},
		{"nothing available", []string{"fr_FR", "ja"}, "en"},
	}
	for _, tc := range tests {
		if got := pick(tc.candidates); got != tc.want {
			t.Errorf("%s: pick(%v) = %q, want %q", tc.name, tc.candidates, got, tc.want)
		}
	}
}

func TestAvailable(t *testing.T) {
	if got, want := Available(), []string{"ru"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}
}

func TestInitFromEnvironment(t *testing.T) {
	old := po
	t.Cleanup(func() { po = old })

	setLocaleEnv(t, "fr", "", "", "ru_RU.UTF-8")
	Init("")
	if got := T("No files to export"); got != "Нет файлов для экспорта" {
		t.Fatalf("T() = %q, want Russian translation", got)
	}
}

func TestTAndNWithoutCatalog(t *testing.T) {
	old := po
	po = nil
	t.Cleanup(func() { po = old })

	if got := T("Hello"); got != "Hello" {
		t.Fatalf("T fallback = %q, want %q", got, "Hello")
	}
	if got := N("Updated %d row", "Updated %d rows", 2); got != "Updated %d rows" {
		t.Fatalf("N plural fallback = %q", got)
	}
}

func TestEmbeddedRussianCatalog(t *testing.T) {
	old := po
	t.Cleanup(func() { po = old })

	Init("ru")

	if got := N("Updated %d row", "Updated %d rows", 1); got != "Обновлена %d строка" {
		t.Fatalf("N(1) = %q, want singular", got)
	}
	if got := N("Updated %d row", "Updated %d rows", 5); got != "Обновлено %d строк" {
		t.Fatalf("N(5) = %q, want genitive plural", got)
	}
	if got := T("untranslated message"); got != "untranslated message" {
		t.Fatalf("T(unknown) = %q, want passthrough", got)
	}
}
