// Package validation checks request shapes before they reach domain logic.
//
// Structs are described with go-playground/validator tags; Struct reports
// every violated rule at once as an *Error, never just the first.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Violation is a single broken rule on a single field.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error aggregates all violations found on one request.
type Error struct {
	Violations []Violation
}

// Error implements the error interface. Messages are joined with ", ".
func (e *Error) Error() string {
	return strings.Join(e.Messages(), ", ")
}

// Messages returns the human-readable message of every violation, in order.
func (e *Error) Messages() []string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return msgs
}

// IsValidationError reports whether err is or wraps an *Error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their wire name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "trimmedmax", func(fl validator.FieldLevel) bool {
		var limit int
		if _, err := fmt.Sscan(fl.Param(), &limit); err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) <= limit
	})

	// accepts any letter case, unlike the built-in uuid tag
	mustRegister(v, "uuidany", func(fl validator.FieldLevel) bool {
		_, err := uuid.Parse(fl.Field().String())
		return err == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		// ALLOW-PANIC: tag registration only fails on programmer error
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Struct validates s and returns an *Error listing every violation,
// or nil when s is valid. Errors not caused by a rule violation
// (for example a nil pointer) are returned as-is.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &Error{Violations: make([]Violation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Violations = append(verr.Violations, Violation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return verr
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("'%s' must not be empty", field)
	case "max", "trimmedmax":
		return fmt.Sprintf("The length of '%s' must be %s characters or fewer", field, fe.Param())
	case "min":
		return fmt.Sprintf("The length of '%s' must be at least %s characters", field, fe.Param())
	case "uuid", "uuid4", "uuidany":
		return fmt.Sprintf("'%s' must be a valid UUID", field)
	case "oneof":
		return fmt.Sprintf("'%s' must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("'%s' failed the '%s' rule", field, fe.Tag())
	}
}
