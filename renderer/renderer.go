// Package renderer turns engine reports into markdown strings.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

var funcs = template.FuncMap{
	"join": strings.Join,
}

// renderTemplate is a generic utility to render one embedded template file.
func renderTemplate(templateName, file string, data any) string {
	content, err := templates.ReadFile(file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
