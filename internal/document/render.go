package document

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("documents").Funcs(template.FuncMap{
	"heavy":  func(n int) string { return strings.Repeat("━", n) },
	"light":  func(n int) string { return strings.Repeat("─", n) },
	"center": center,
}).ParseFS(templateFS, "templates/*.tmpl"))

// center left-pads s so that it sits in the middle of a line of width runes.
func center(width int, s string) string {
	pad := (width - utf8.RuneCountInString(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// renderText executes the kind's template over view.
func renderText(view View) (string, error) {
	name := string(view.kind()) + ".tmpl"
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, view); err != nil {
		return "", fmt.Errorf("rendering %s: %w", view.kind(), err)
	}
	return strings.TrimSpace(b.String()), nil
}
