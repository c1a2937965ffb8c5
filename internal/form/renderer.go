// internal/form/renderer.go
//
// Onboard – Forms subsystem: HTML renderer.
//
// Context
//   RenderForm converts a Schema plus a Form Snapshot into plain, accessible
//   HTML.  Every input gets id="fld-{name}", is wrapped in
//   <div class="form-field">, and is followed by an error span holding the
//   field's current message.  The submit button carries `disabled` whenever
//   the snapshot says submission is not allowed.
//
// Style
//   Output HTML is deliberately plain, with no framework classes, so pages
//   can style via element selectors or class hooks.  Passwords are never
//   written back into the markup.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
)

// RenderOptions bundles optional parameters influencing HTML output.
type RenderOptions struct {
	// Action is the form's POST target.  Defaults to "/signup".
	Action string
	// FieldURL receives live change events; written as data-field-url.
	FieldURL string
	// CSRFToken is embedded as a hidden input when non-empty.
	CSRFToken string
}

// RenderForm returns the form markup for s in state st.
func RenderForm(s *Schema, st State, opts RenderOptions) (template.HTML, error) {
	action := opts.Action
	if action == "" {
		action = "/signup"
	}

	var buf bytes.Buffer
	buf.WriteString(`<form class="onboard-form" id="form-` + html.EscapeString(s.ID) +
		`" method="post" action="` + html.EscapeString(action) + `"`)
	if opts.FieldURL != "" {
		buf.WriteString(` data-field-url="` + html.EscapeString(opts.FieldURL) + `"`)
	}
	buf.WriteString(` novalidate>` + "\n")

	for i := range s.Fields {
		if err := writeField(&buf, &s.Fields[i], st); err != nil {
			return "", err
		}
	}

	if opts.CSRFToken != "" {
		buf.WriteString(fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s">`+"\n",
			html.EscapeString(opts.CSRFToken)))
	}
	if st.SubmitError != "" {
		buf.WriteString(`<p class="submit-error" role="alert">` + html.EscapeString(st.SubmitError) + `</p>` + "\n")
	}

	buf.WriteString(`<button type="submit" name="submit-btn"`)
	if !st.SubmitEnabled {
		buf.WriteString(` disabled`)
	}
	buf.WriteString(`>Submit</button>` + "\n")
	buf.WriteString(`</form>`)
	return template.HTML(buf.String()), nil
}

// writeField emits HTML for an individual field into buf.
func writeField(buf *bytes.Buffer, f *FieldDef, st State) error {
	name := html.EscapeString(f.Name)
	msg := st.Errors[f.Name]

	buf.WriteString(`<div class="form-field">` + "\n")
	buf.WriteString(`<label for="fld-` + name + `">` + html.EscapeString(f.Label) + `</label>` + "\n")
	buf.WriteString(`<input id="fld-` + name + `" name="` + name + `" type="` + f.Type + `"`)

	switch f.Type {
	case "text", "email", "password":
		if f.Placeholder != "" {
			buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
		}
		if f.Type != "password" {
			val, _ := st.Values.Get(f.Name)
			if s, _ := val.(string); s != "" {
				buf.WriteString(` value="` + html.EscapeString(s) + `"`)
			}
		}

	case "checkbox":
		buf.WriteString(` value="true"`)
		if val, _ := st.Values.Get(f.Name); val == true {
			buf.WriteString(` checked`)
		}

	default:
		return fmt.Errorf("writeField: unsupported field type %q in form field %s", f.Type, f.Name)
	}

	if msg != "" {
		buf.WriteString(` aria-invalid="true"`)
	}
	buf.WriteString(` aria-describedby="err-` + name + `">` + "\n")
	buf.WriteString(`<span class="error" id="err-` + name + `" aria-live="polite">` +
		html.EscapeString(msg) + `</span>` + "\n")
	buf.WriteString(`</div>` + "\n")
	return nil
}
