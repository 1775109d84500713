package common

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ProcessTemplate renders a prompt or message template with the given
// arguments. Templates use Go's text/template syntax extended with the
// sprig function map, so profiles can write things like
// "{{ .user }}@vshell:{{ .cwd | base }}$ ".
//
// Parameters:
//   - text: The template to render
//   - args: Map of variable names to their values
//
// Returns:
//   - The rendered string with substituted variables
//   - An error if parsing or execution fails
func ProcessTemplate(text string, args map[string]interface{}) (string, error) {
	tmpl, err := template.New("prompt").
		Option("missingkey=zero").
		Funcs(sprig.TxtFuncMap()).
		Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, args); err != nil {
		return "", err
	}

	// missingkey=zero renders untyped nil map values as "<no value>"
	res := buf.String()
	res = strings.ReplaceAll(res, "<no value>", "")

	return res, nil
}

// ValidateTemplate parses a template without rendering it, reporting
// syntax errors only. Used when validating sandbox profiles.
func ValidateTemplate(text string) error {
	_, err := template.New("prompt").
		Funcs(sprig.TxtFuncMap()).
		Parse(text)
	return err
}
