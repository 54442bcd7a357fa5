package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/IannnnnW/ambso-site/pkg/content"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// formatOf maps a file name to its data format.
func formatOf(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	case ".md":
		return "markdown"
	}
	return ""
}

// Decode parses a catalog entry in the given format into a content tree.
func Decode(data []byte, format string) (content.Value, error) {
	var raw any
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return content.Null(), err
		}
	case "toml":
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return content.Null(), err
		}
		raw = doc
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return content.Null(), err
		}
	case "markdown":
		fm, body, err := parseFrontMatter(data)
		if err != nil {
			return content.Null(), err
		}
		if body != "" {
			fm["body"] = paragraphs(body)
		}
		raw = fm
	default:
		return content.Null(), fmt.Errorf("unsupported format: %s", format)
	}
	return content.FromAny(raw)
}
