package bundle

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/i18ncsv/csvtable"
	"github.com/minios-linux/i18ncsv/dictionary"
)

func build(t *testing.T, data string) *dictionary.Dictionary {
	t.Helper()
	tbl, err := csvtable.Parse([]byte(data))
	if err != nil {
		t.Fatalf("csvtable.Parse() error: %v", err)
	}
	d, err := dictionary.Build(tbl, "_key", dictionary.Options{FilterReserved: true})
	if err != nil {
		t.Fatalf("dictionary.Build() error: %v", err)
	}
	return d
}

func TestRenderJS(t *testing.T) {
	d := build(t, "_key,ru,en\nhello,Привет,<b>Hello</b>\nq,,\"say \"\"hi\"\"\"\n")

	got, err := Render(d, FormatJS)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	want := `export default {"ru":{"hello":"Привет","q":""},"en":{"hello":"<b>Hello</b>","q":"say \"hi\""}}` + "\n"
	if string(got) != want {
		t.Fatalf("Render(js) = %q, want %q", got, want)
	}
}

func TestRenderJSON(t *testing.T) {
	d := build(t, "_key,en\na,A\nb,B\n")

	got, err := Render(d, FormatJSON)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	want := "{\n  \"en\": {\n    \"a\": \"A\",\n    \"b\": \"B\"\n  }\n}\n"
	if string(got) != want {
		t.Fatalf("Render(json) = %q, want %q", got, want)
	}
}

func TestRenderNoLanguages(t *testing.T) {
	d := build(t, "_key,_meta\nk,v\n")

	got, err := Render(d, FormatJS)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if want := "export default {}\n"; string(got) != want {
		t.Fatalf("Render(js) = %q, want %q", got, want)
	}
}

func TestRenderYAMLKeepsStrings(t *testing.T) {
	d := build(t, "_key,en,de\nflag,true,ja\nnum,42,\n")

	got, err := Render(d, FormatYAML)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var decoded map[string]map[string]any
	if err := yaml.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("yaml.Unmarshal() error: %v\n%s", err, got)
	}
	want := map[string]map[string]any{
		"en": {"flag": "true", "num": "42"},
		"de": {"flag": "ja", "num": ""},
	}
	if !reflect.DeepEqual(decoded, want) {
		t.Fatalf("decoded = %#v, want %#v", decoded, want)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(got, &doc); err != nil {
		t.Fatal(err)
	}
	if first := doc.Content[0].Content[0].Value; first != "en" {
		t.Fatalf("first language = %q, want en", first)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJS, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q, err=%v", tc.in, got, err, tc.want, tc.wantErr)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strings.csv")
	if err := os.WriteFile(path, []byte("id,_file,en\nk,x.csv,v\n"), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path, "id")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if want := []string{"en"}; !reflect.DeepEqual(d.Languages(), want) {
		t.Fatalf("Languages() = %v, want %v", d.Languages(), want)
	}
}
