// internal/config/validator.go
//
// Config validation on go-playground/validator.
//
// Context
// -------
// LoadFrom calls validateStruct right after unmarshalling.  Failures are
// reported with the dotted koanf key (submit.endpoint) rather than the Go
// field path, so the message points at the YAML line or env variable to
// fix.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// validateStruct returns nil or an error naming every offending key.
func validateStruct(c *Config) error {
	err := v.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", keyOf(fe), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("config invalid: %s", strings.Join(msgs, "; "))
}

// keyOf turns "Config.submit.endpoint" into "submit.endpoint".
func keyOf(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
