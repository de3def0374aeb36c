// Package prompts holds the named prompt templates used by the learning
// workflow and renders them with caller-supplied variables. Every template
// is registered at init time with its system role; rendering with a missing
// variable is an error rather than a silent blank.
package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

// ErrTemplateNotFound is returned when Render is called with an
// unregistered template name.
type ErrTemplateNotFound struct {
	Name string
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("prompt template not found: %s", e.Name)
}

// ErrMissingVariable is returned when a template references a variable
// the caller did not supply.
type ErrMissingVariable struct {
	Template string
	Err      error
}

func (e *ErrMissingVariable) Error() string {
	return fmt.Sprintf("prompt template %s: missing variable: %v", e.Template, e.Err)
}

func (e *ErrMissingVariable) Unwrap() error { return e.Err }

type entry struct {
	tmpl   *template.Template
	system string
}

// Renderer renders registered prompt templates by name.
type Renderer struct {
	templates map[string]entry
}

// NewRenderer compiles the built-in template set. Compilation failures are
// programmer errors, so this panics rather than returning an error.
func NewRenderer() *Renderer {
	r := &Renderer{templates: make(map[string]entry)}
	for _, def := range builtinTemplates {
		t, err := template.New(def.name).Option("missingkey=error").Parse(def.text)
		if err != nil {
			panic(fmt.Sprintf("prompts: bad built-in template %s: %v", def.name, err))
		}
		r.templates[def.name] = entry{tmpl: t, system: def.system}
	}
	return r
}

// Render executes the named template with the given variables.
func (r *Renderer) Render(name string, vars map[string]any) (string, error) {
	e, ok := r.templates[name]
	if !ok {
		return "", &ErrTemplateNotFound{Name: name}
	}

	var sb strings.Builder
	if err := e.tmpl.Execute(&sb, vars); err != nil {
		return "", &ErrMissingVariable{Template: name, Err: err}
	}
	return strings.TrimSpace(sb.String()), nil
}

// SystemRole returns the system message registered for the named template,
// or the empty string if the template is unknown.
func (r *Renderer) SystemRole(name string) string {
	return r.templates[name].system
}

// Names returns the registered template names.
func (r *Renderer) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}
