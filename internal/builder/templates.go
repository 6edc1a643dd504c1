// internal/builder/templates.go
package builder

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrTemplateNotFound is returned when a named template has no file in the
// template directory.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateRenderError reports a failure while executing a template, such as
// a reference to an undefined variable in strict mode.
type TemplateRenderError struct {
	Template string
	Err      error
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("failed to render template %s: %v", e.Template, e.Err)
}

func (e *TemplateRenderError) Unwrap() error { return e.Err }

// Environment resolves templates by file name from a single directory.
// Files named _*.html in that directory are parsed alongside every template
// so they can be used as partials.
type Environment struct {
	dir    string
	strict bool
	cache  map[string]*template.Template
}

// NewEnvironment creates an Environment reading from dir. In strict mode a
// template referencing an undefined variable fails to render.
func NewEnvironment(dir string, strict bool) *Environment {
	return &Environment{
		dir:    dir,
		strict: strict,
		cache:  make(map[string]*template.Template),
	}
}

// Lookup returns the parsed template for name.
func (e *Environment) Lookup(name string) (*template.Template, error) {
	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}

	path := filepath.Join(e.dir, name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	missingKey := "missingkey=default"
	if e.strict {
		missingKey = "missingkey=error"
	}
	tmpl := template.New(filepath.Base(name)).Option(missingKey)

	partials, err := filepath.Glob(filepath.Join(e.dir, "_*.html"))
	if err != nil {
		return nil, err
	}
	if len(partials) > 0 {
		if tmpl, err = tmpl.ParseFiles(partials...); err != nil {
			return nil, fmt.Errorf("failed to parse partials in %s: %w", e.dir, err)
		}
	}
	if tmpl, err = tmpl.ParseFiles(path); err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	e.cache[name] = tmpl
	return tmpl, nil
}

// Render executes the named template with vars as its top-level variables.
func (e *Environment) Render(name string, vars map[string]any) (string, error) {
	tmpl, err := e.Lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, filepath.Base(name), vars); err != nil {
		return "", &TemplateRenderError{Template: name, Err: err}
	}
	return buf.String(), nil
}
