// Package bundle renders a translation table as an artifact a front-end
// bundler can import directly.
//
// The default format is an ES module:
//
//	export default {"en":{"hello":"Hello"},"ru":{"hello":"Привет"}}
//
// JSON and YAML renderings carry the same language → key → string tree.
// Language and key order follow the source table.
package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/i18ncsv/csvtable"
	"github.com/minios-linux/i18ncsv/dictionary"
)

// Format selects the output rendering.
type Format string

const (
	FormatJS   Format = "js"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJS, FormatJSON, FormatYAML}

// ParseFormat validates a format name. An empty name selects FormatJS.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatJS, nil
	}
	switch f := Format(strings.ToLower(name)); f {
	case FormatJS, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (valid: js, json, yaml)", name)
}

// Load reads a CSV table and builds its dictionary the way the bundler
// loader does: reserved columns are not languages.
func Load(path, keyColumn string) (*dictionary.Dictionary, error) {
	t, err := csvtable.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return dictionary.Build(t, keyColumn, dictionary.Options{FilterReserved: true})
}

// Render serialises d in the given format.
func Render(d *dictionary.Dictionary, f Format) ([]byte, error) {
	switch f {
	case FormatJS, "":
		var buf bytes.Buffer
		buf.WriteString("export default ")
		if err := writeJSON(&buf, d, ""); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := writeJSON(&buf, d, "  "); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	case FormatYAML:
		return renderYAML(d)
	}
	return nil, fmt.Errorf("unknown format %q", f)
}

// writeJSON writes the nested object by hand so that map order survives.
// An empty indent produces compact output.
func writeJSON(buf *bytes.Buffer, d *dictionary.Dictionary, indent string) error {
	nl := func(depth int) {
		if indent == "" {
			return
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indent, depth))
	}
	colon := ":"
	if indent != "" {
		colon = ": "
	}

	langs := d.Languages()
	if len(langs) == 0 {
		buf.WriteString("{}")
		return nil
	}

	buf.WriteByte('{')
	for i, lang := range langs {
		if i > 0 {
			buf.WriteByte(',')
		}
		nl(1)
		if err := writeString(buf, lang); err != nil {
			return err
		}
		buf.WriteString(colon)

		keys := d.Keys(lang)
		if len(keys) == 0 {
			buf.WriteString("{}")
			continue
		}
		buf.WriteByte('{')
		for j, key := range keys {
			if j > 0 {
				buf.WriteByte(',')
			}
			nl(2)
			v, _ := d.Lookup(lang, key)
			if err := writeString(buf, key); err != nil {
				return err
			}
			buf.WriteString(colon)
			if err := writeString(buf, v); err != nil {
				return err
			}
		}
		nl(1)
		buf.WriteByte('}')
	}
	nl(0)
	buf.WriteByte('}')
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(b.Bytes(), []byte("\n")))
	return nil
}

func renderYAML(d *dictionary.Dictionary) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, lang := range d.Languages() {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range d.Keys(lang) {
			v, _ := d.Lookup(lang, key)
			m.Content = append(m.Content, strNode(key), strNode(v))
		}
		root.Content = append(root.Content, strNode(lang), m)
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
