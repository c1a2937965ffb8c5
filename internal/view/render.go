// internal/view/render.go
//
// View engine: template lookup and an LRU of parsed *template.Template*
// sets.
//
// Public helpers
// --------------
//   - Render         – execute a named template into any io.Writer.
//   - RenderToString – return template.HTML (fragments, tests).
//
// All templates in the engine's file system are parsed as one set so
// sub-templates ({{ template "users" . }}) work out-of-the-box.
//
// execName() chooses the template to execute:
//   – If the set contains "<name>.html", we run that (file has no define).
//   – Else we fall back to "<name>" (root template defined via {{ define }}).
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"html/template"
	"io"
	"io/fs"

	"github.com/yanizio/onboard/internal/cache"
)

// Engine renders templates from one file system.
type Engine struct {
	fsys    fs.FS
	pattern string
	sets    *cache.LRU[string, *template.Template]
}

// New returns an Engine parsing files matching pattern (e.g. "templates/*.html")
// from fsys.
func New(fsys fs.FS, pattern string) *Engine {
	return &Engine{
		fsys:    fsys,
		pattern: pattern,
		sets:    cache.New[string, *template.Template](64),
	}
}

// Render executes the template set and streams it to w.
func (e *Engine) Render(w io.Writer, name string, data any) error {
	t, err := e.load(name)
	if err != nil {
		return err
	}
	return t.ExecuteTemplate(w, execName(t, name), data)
}

// RenderToString executes and returns HTML.
func (e *Engine) RenderToString(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// load parses (or fetches) the set for name.
func (e *Engine) load(name string) (*template.Template, error) {
	if t, ok := e.sets.Get(name); ok {
		return t, nil
	}

	t, err := template.New(name).ParseFS(e.fsys, e.pattern)
	if err != nil {
		return nil, err
	}
	e.sets.Add(name, t)
	return t, nil
}

//
// helpers
//

// execName picks the template name to execute.
//
// Priority:
//  1. If the set has "<name>.html" (file-based template), run that.
//  2. Otherwise, fall back to "<name>" (root template defined in code).
func execName(t *template.Template, name string) string {
	if tmpl := t.Lookup(name + ".html"); tmpl != nil {
		return name + ".html"
	}
	return name
}
