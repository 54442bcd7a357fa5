package catalog

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// parseFrontMatter splits a Markdown entry into its front matter fields
// and body. YAML front matter is fenced by "---", TOML by "+++". A file
// without front matter is all body.
func parseFrontMatter(data []byte) (map[string]any, string, error) {
	str := normalizeLineEndings(string(data))

	for _, fence := range []string{"---", "+++"} {
		if !strings.HasPrefix(str, fence+"\n") {
			continue
		}
		parts := strings.SplitN(str[len(fence):], "\n"+fence, 2)
		if len(parts) != 2 {
			return nil, "", fmt.Errorf("unterminated %s front matter", fence)
		}
		fm := map[string]any{}
		var err error
		if fence == "---" {
			err = yaml.Unmarshal([]byte(parts[0]), &fm)
		} else {
			err = toml.Unmarshal([]byte(parts[0]), &fm)
		}
		if err != nil {
			return nil, "", err
		}
		return fm, strings.TrimSpace(parts[1]), nil
	}

	return map[string]any{}, strings.TrimSpace(str), nil
}

// paragraphs splits Markdown body text on blank lines.
func paragraphs(body string) []any {
	var out []any
	for _, p := range strings.Split(body, "\n\n") {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}
