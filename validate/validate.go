// Package validate rejects client input before any network or ledger call
// is issued.
package validate

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ValidationError reports an input that was rejected client-side. No I/O has
// happened when it is returned.
type ValidationError struct {
	Field string
	Rule  string
	Param string
	Value interface{}
}

func (e *ValidationError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("invalid %s: must satisfy %s=%s (got %v)",
			e.Field, e.Rule, e.Param, e.Value)
	}

	return fmt.Sprintf("invalid %s: must satisfy %s (got %v)",
		e.Field, e.Rule, e.Value)
}

var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		default:
			return name
		}
	})

	// Amounts in wei are compared by sign so that gt/gte rules apply to
	// big integers without a float conversion.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		b, ok := field.Interface().(big.Int)
		if !ok {
			return nil
		}
		return b.Sign()
	}, big.Int{})

	return v
}

// Struct validates s against its `validate` tags and returns the first
// failing field as a *ValidationError.
func Struct(s interface{}) error {
	return convert(v.Struct(s))
}

// Var validates a single value against tag, reporting failures under field.
func Var(field string, value interface{}, tag string) error {
	err := convert(v.Var(value, tag))
	if verr, ok := err.(*ValidationError); ok {
		verr.Field = field
		verr.Value = value
	}

	return err
}

// Fail builds a ValidationError for checks that do not map to a tag.
func Fail(field, rule string, value interface{}) error {
	return &ValidationError{Field: field, Rule: rule, Value: value}
}

func convert(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(err, "validate input")
	}

	fe := fieldErrs[0]
	return &ValidationError{
		Field: fe.Field(),
		Rule:  fe.Tag(),
		Param: fe.Param(),
		Value: fe.Value(),
	}
}
