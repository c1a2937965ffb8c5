// internal/form/validate.go
//
// Onboard – Forms subsystem: schema validation.
//
// Context
//   Validator applies the rules declared in a Schema.  Each field rule is a
//   go-playground/validator tag string checked with Validate.Var, so the
//   first failing tag (left to right) selects the message.  There is no
//   multi-error aggregation per field.
//
// Workflow
//   •  ValidateField checks one candidate value against one field's rule.
//   •  ValidateAll reports whether every field of Values passes.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator singleton; it is safe for
// concurrent use.
var validate = validator.New()

// Validator evaluates field values against a Schema.  It holds no mutable
// state and may be shared between forms.
type Validator struct {
	schema *Schema
}

// NewValidator returns a Validator bound to s.
func NewValidator(s *Schema) *Validator { return &Validator{schema: s} }

// Schema returns the schema the validator enforces.
func (v *Validator) Schema() *Schema { return v.schema }

// ValidateField applies only field's rule to candidate.  It returns nil when
// the value is accepted, *FieldError when a rule fails, and ErrUnknownField
// for names the schema does not declare.
func (v *Validator) ValidateField(field string, candidate any) error {
	f, ok := v.schema.Field(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return check(f, candidate)
}

// ValidateAll reports whether every declared field of vals passes its rule.
func (v *Validator) ValidateAll(vals Values) bool {
	for i := range v.schema.Fields {
		f := &v.schema.Fields[i]
		val, _ := vals.Get(f.Name)
		if check(f, val) != nil {
			return false
		}
	}
	return true
}

// check runs f.Rule against val and converts the first failure.
func check(f *FieldDef, val any) error {
	err := validate.Var(val, f.Rule)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		tag := verrs[0].Tag()
		return &FieldError{Field: f.Name, Rule: tag, Message: f.message(tag)}
	}
	// InvalidValidationError: nil or unsupported candidate.
	return &FieldError{Field: f.Name, Message: f.message("")}
}

// messageOf returns the user-facing text of a check result.
func messageOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return ""
}

// compileRule proves the rule's tags exist by running it once against the
// field's zero value.  validator panics on undefined tags.
func compileRule(f *FieldDef) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	var zero any = ""
	if isBoolField(f.Name) {
		zero = false
	}
	_ = validate.Var(zero, f.Rule)
	return nil
}
