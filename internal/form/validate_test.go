// internal/form/validate_test.go
//
// Unit-tests for Validator against the embedded signup schema.
//
// Run: go test ./internal/form -v

package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validValues() Values {
	return Values{Name: "A", Email: "a@b.com", Password: "x", TOS: true}
}

func TestValidateAll_Properties(t *testing.T) {
	v := NewValidator(DefaultSchema())

	if !v.ValidateAll(validValues()) {
		t.Fatalf("fully valid form rejected")
	}

	cases := map[string]func(*Values){
		"name empty":     func(x *Values) { x.Name = "" },
		"email empty":    func(x *Values) { x.Email = "" },
		"email invalid":  func(x *Values) { x.Email = "not-an-email" },
		"password empty": func(x *Values) { x.Password = "" },
		"tos false":      func(x *Values) { x.TOS = false },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			vals := validValues()
			mutate(&vals)
			if v.ValidateAll(vals) {
				t.Fatalf("ValidateAll(%+v) = true, want false", vals)
			}
		})
	}
}

func TestValidateField_Messages(t *testing.T) {
	v := NewValidator(DefaultSchema())

	cases := []struct {
		field string
		value any
		rule  string
		msg   string
	}{
		{FieldName, "", "required", "Name is required"},
		{FieldEmail, "", "required", "Email is required"},
		{FieldEmail, "not-an-email", "email", "email must be a valid email"},
		{FieldPassword, "", "required", "Password is required"},
		{FieldTOS, false, "eq", "TOS is required"},
	}
	for _, tc := range cases {
		err := v.ValidateField(tc.field, tc.value)
		var fe *FieldError
		if !errors.As(err, &fe) {
			t.Fatalf("%s=%v: want *FieldError, got %v", tc.field, tc.value, err)
		}
		want := &FieldError{Field: tc.field, Rule: tc.rule, Message: tc.msg}
		if diff := cmp.Diff(want, fe); diff != "" {
			t.Errorf("%s=%v mismatch (-want +got):\n%s", tc.field, tc.value, diff)
		}
	}
}

func TestValidateField_Accepts(t *testing.T) {
	v := NewValidator(DefaultSchema())

	accepted := map[string]any{
		FieldName:     "A",
		FieldEmail:    "a@b.com",
		FieldPassword: "x",
		FieldTOS:      true,
	}
	for field, val := range accepted {
		if err := v.ValidateField(field, val); err != nil {
			t.Errorf("ValidateField(%s, %v) = %v, want nil", field, val, err)
		}
	}
}

func TestValidateField_UnknownField(t *testing.T) {
	v := NewValidator(DefaultSchema())
	if err := v.ValidateField("terms", true); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("want ErrUnknownField, got %v", err)
	}
}
