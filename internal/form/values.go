// internal/form/values.go
//
// Onboard – Forms subsystem: the signup draft and input events.
//
// Context
//   Values is the draft the user is typing.  Front-ends never write it
//   directly; they describe what happened as an Event and hand it to
//   Form.Change, which normalizes the raw input (checkbox → bool, anything
//   else → string) before storing it.
//
//------------------------------------------------------------------------------

package form

// Field names shared by the schema, the JSON payload, and the HTML inputs.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldTOS      = "tos"
)

// fieldOrder is the canonical order used when iterating Values.
var fieldOrder = []string{FieldName, FieldEmail, FieldPassword, FieldTOS}

// Values is the current draft of user input.  The zero value is the initial
// (and post-submit) state.
type Values struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	TOS      bool   `json:"tos"`
}

// Get returns the value stored under a field name.
func (v Values) Get(field string) (any, bool) {
	switch field {
	case FieldName:
		return v.Name, true
	case FieldEmail:
		return v.Email, true
	case FieldPassword:
		return v.Password, true
	case FieldTOS:
		return v.TOS, true
	}
	return nil, false
}

// set stores an already-normalized value.  The bool is false for unknown
// fields or a value of the wrong kind.
func (v *Values) set(field string, val any) bool {
	switch field {
	case FieldName, FieldEmail, FieldPassword:
		s, ok := val.(string)
		if !ok {
			return false
		}
		switch field {
		case FieldName:
			v.Name = s
		case FieldEmail:
			v.Email = s
		default:
			v.Password = s
		}
		return true
	case FieldTOS:
		b, ok := val.(bool)
		if !ok {
			return false
		}
		v.TOS = b
		return true
	}
	return false
}

// isBoolField reports whether field holds a checkbox value.
func isBoolField(field string) bool { return field == FieldTOS }

// Event is one user input event.  Type mirrors the HTML input type; for
// checkboxes Checked carries the state and Value is ignored.
type Event struct {
	Name    string
	Type    string
	Value   string
	Checked bool
}

// normalize converts the raw event into the value stored in Values.
func (e Event) normalize() any {
	if e.Type == "checkbox" || isBoolField(e.Name) {
		return e.Checked
	}
	return e.Value
}
