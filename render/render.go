// Package render turns generated content into display-ready forms.
package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in model output is escaped; goldmark omits it unless WithUnsafe is set.
var md = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// ToHTML converts generated markdown-ish text to HTML. Blank lines become paragraph breaks and
// **bold** spans become <strong>, which is what the web form displays.
func ToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Digest returns the first body paragraph, skipping headings and all-caps title lines, cut to limit runes.
func Digest(content string, limit int) string {
	for _, para := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n") {
		p := strings.TrimSpace(para)
		if p == "" || strings.HasPrefix(p, "#") || isTitleLine(p) {
			continue
		}
		return truncate(strings.Join(strings.Fields(p), " "), limit)
	}
	return truncate(strings.Join(strings.Fields(content), " "), limit)
}

func isTitleLine(p string) bool {
	return !strings.Contains(p, "\n") && strings.ToUpper(p) == p && strings.ToLower(p) != p
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
