package services

import (
	"strings"

	"github.com/IannnnnW/ambso-site/pkg/content"
)

// Block is a flattened portable-text block ready for a template.
type Block struct {
	Style    string // normal, h2, h3, blockquote ...
	ListItem string // bullet, number or empty
	Text     string
	Image    any // set for image blocks
	Caption  string
}

// Blocks flattens portable text into paragraphs. Plain strings and lists of
// strings are accepted as well, so fallback content can be authored as
// simple text.
func Blocks(raw any) []Block {
	v, err := content.FromAny(raw)
	if err != nil {
		return nil
	}
	if s, ok := v.AsString(); ok {
		if s == "" {
			return nil
		}
		return []Block{{Style: "normal", Text: s}}
	}

	var out []Block
	for _, item := range v.Items() {
		if s, ok := item.AsString(); ok {
			out = append(out, Block{Style: "normal", Text: s})
			continue
		}
		typ, _ := item.Get("_type").AsString()
		switch typ {
		case "block":
			style, _ := item.Get("style").AsString()
			if style == "" {
				style = "normal"
			}
			listItem, _ := item.Get("listItem").AsString()
			out = append(out, Block{Style: style, ListItem: listItem, Text: spanText(item)})
		case "image":
			caption, _ := item.Get("caption").AsString()
			out = append(out, Block{Style: "image", Image: item.Interface(), Caption: caption})
		}
	}
	return out
}

func spanText(block content.Value) string {
	var b strings.Builder
	for _, child := range block.Get("children").Items() {
		if text, ok := child.Get("text").AsString(); ok {
			b.WriteString(text)
		}
	}
	return b.String()
}

// ReadingTime estimates minutes to read portable text at 200 words per
// minute, never less than one.
func ReadingTime(raw any) int {
	words := 0
	for _, b := range Blocks(raw) {
		words += len(strings.Fields(b.Text))
	}
	minutes := (words + 199) / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}
