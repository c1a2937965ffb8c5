// internal/form/definition.go
//
// Onboard – Forms subsystem: YAML schema loader.
//
// Context
//   The signup form is declared in YAML.  Each field carries its input type,
//   a go-playground/validator rule string, and one user-facing message per
//   rule tag.  The default schema is embedded in the binary; operators may
//   point form.schema at another file to change labels or messages.
//
// Workflow
//   •  ParseSchema decodes YAML and validates structural rules.
//   •  LoadSchema reads a file and defers to ParseSchema.
//   •  DefaultSchema returns the embedded signup schema.
//
// Style
//   Full sentences, two spaces after periods, Oxford commas.
//
//------------------------------------------------------------------------------

package form

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed signup.yaml
var defaultSchemaYAML []byte

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// Schema is the declarative set of per-field rules for one form.
type Schema struct {
	ID     string     `yaml:"id"`     // Form identifier.  Required.
	Title  string     `yaml:"title"`  // Display title, optional.
	Fields []FieldDef `yaml:"fields"` // Fields in render order.
}

// FieldDef describes a single input control and its validation rule.
type FieldDef struct {
	Name        string            `yaml:"name"`        // Submission key.  Required.
	Label       string            `yaml:"label"`       // Human-readable label.  Required.
	Type        string            `yaml:"type"`        // text, email, password, or checkbox.
	Placeholder string            `yaml:"placeholder"` // Optional placeholder text.
	Rule        string            `yaml:"rule"`        // validator tag string, e.g. "required,email".
	Messages    map[string]string `yaml:"messages"`    // Tag name → message.
}

// Field returns the definition for name.
func (s *Schema) Field(name string) (*FieldDef, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// message returns the user-facing message for a failed tag.
func (f *FieldDef) message(tag string) string {
	if msg := f.Messages[tag]; msg != "" {
		return msg
	}
	return f.Label + " is invalid"
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

// DefaultSchema returns the embedded signup schema.  It panics only if the
// embedded file is broken, which the package tests rule out.
func DefaultSchema() *Schema {
	s, err := ParseSchema(defaultSchemaYAML)
	if err != nil {
		panic(fmt.Sprintf("form: embedded schema: %v", err))
	}
	return s
}

// LoadSchema reads one YAML file and returns the validated Schema.
func LoadSchema(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file %s: %w", path, err)
	}
	s, err := ParseSchema(raw)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return s, nil
}

// ParseSchema decodes raw YAML and validates its structure.
func ParseSchema(raw []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if err := validateSchema(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

var knownTypes = map[string]bool{
	"text":     true,
	"email":    true,
	"password": true,
	"checkbox": true,
}

// validateSchema enforces structural rules that YAML tags cannot express.
// Every field of Values must be declared so whole-form validity covers the
// entire payload.
func validateSchema(s *Schema) error {
	if s.ID == "" {
		return fmt.Errorf("missing required 'id'")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("must have 'fields'")
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		if err := validateField(f); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("duplicate field name '%s'", f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	missing := lo.Filter(fieldOrder, func(name string, _ int) bool {
		_, ok := seen[name]
		return !ok
	})
	if len(missing) > 0 {
		return fmt.Errorf("fields not declared: %s", strings.Join(missing, ", "))
	}
	return nil
}

// validateField confirms that essential attributes are present and sane.
func validateField(f *FieldDef) error {
	if f.Name == "" {
		return fmt.Errorf("field missing 'name'")
	}
	if _, ok := (Values{}).Get(f.Name); !ok {
		return fmt.Errorf("field '%s' is not part of the signup payload", f.Name)
	}
	if f.Label == "" {
		return fmt.Errorf("field '%s' missing 'label'", f.Name)
	}
	if !knownTypes[f.Type] {
		return fmt.Errorf("field '%s' has unsupported type %q", f.Name, f.Type)
	}
	if (f.Type == "checkbox") != isBoolField(f.Name) {
		return fmt.Errorf("field '%s' type %q does not match its value kind", f.Name, f.Type)
	}
	if f.Rule == "" {
		return fmt.Errorf("field '%s' missing 'rule'", f.Name)
	}
	if err := compileRule(f); err != nil {
		return fmt.Errorf("field '%s' invalid rule %q: %v", f.Name, f.Rule, err)
	}
	return nil
}

// ruleTags splits a validator rule string into bare tag names, dropping
// parameters ("eq=true" → "eq") and expanding OR groups.
func ruleTags(rule string) []string {
	var out []string
	for _, part := range strings.Split(rule, ",") {
		for _, alt := range strings.Split(part, "|") {
			name, _, _ := strings.Cut(strings.TrimSpace(alt), "=")
			if name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// MissingMessages lists "field:tag" pairs whose failures fall back to the
// generic "<Label> is invalid" message.
func (s *Schema) MissingMessages() []string {
	var out []string
	for _, f := range s.Fields {
		for _, tag := range ruleTags(f.Rule) {
			if tag == "omitempty" {
				continue
			}
			if f.Messages[tag] == "" {
				out = append(out, f.Name+":"+tag)
			}
		}
	}
	return out
}
