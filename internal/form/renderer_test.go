// internal/form/renderer_test.go
//
// Unit-tests for RenderForm markup.

package form

import (
	"strings"
	"testing"
)

func TestRenderForm_InitialDisabled(t *testing.T) {
	f := New(NewValidator(DefaultSchema()), &fakeSubmitter{}, nil)

	out, err := RenderForm(f.Schema(), f.Snapshot(), RenderOptions{CSRFToken: "tok", FieldURL: "/signup/field"})
	if err != nil {
		t.Fatalf("RenderForm: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<input id="fld-name" name="name" type="text"`,
		`<input id="fld-tos" name="tos" type="checkbox" value="true"`,
		`name="csrf_token" value="tok"`,
		`data-field-url="/signup/field"`,
		`<button type="submit" name="submit-btn" disabled>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("markup missing %q", want)
		}
	}
}

func TestRenderForm_ErrorsAndPrefill(t *testing.T) {
	f := New(NewValidator(DefaultSchema()), &fakeSubmitter{}, nil)
	f.Change(Event{Name: FieldName, Value: `<b>Ann</b>`})
	f.Change(Event{Name: FieldEmail, Value: "bad"})
	f.Change(Event{Name: FieldPassword, Value: "secret"})
	f.Change(Event{Name: FieldTOS, Type: "checkbox", Checked: true})

	out, _ := RenderForm(f.Schema(), f.Snapshot(), RenderOptions{})
	html := string(out)

	if !strings.Contains(html, `value="&lt;b&gt;Ann&lt;/b&gt;"`) {
		t.Errorf("name not escaped or not prefilled")
	}
	if !strings.Contains(html, `email must be a valid email</span>`) {
		t.Errorf("email error not rendered")
	}
	if strings.Contains(html, "secret") {
		t.Errorf("password written into markup")
	}
	if !strings.Contains(html, `value="true" checked`) {
		t.Errorf("checkbox state not rendered")
	}
	if !strings.Contains(html, `action="/signup"`) {
		t.Errorf("default action missing")
	}
}

func TestRenderForm_EnabledAndSubmitError(t *testing.T) {
	st := State{SubmitEnabled: true, SubmitError: submitFailedMsg, Errors: map[string]string{}}
	out, _ := RenderForm(DefaultSchema(), st, RenderOptions{})
	html := string(out)

	if strings.Contains(html, "disabled") {
		t.Errorf("button disabled while submit allowed")
	}
	if !strings.Contains(html, `role="alert">Signup failed.  Please try again.</p>`) {
		t.Errorf("submit error not rendered")
	}
}
