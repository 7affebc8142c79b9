package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// ValidationError is raised before anything is sent to the backend.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type fieldError struct {
	field string
	tag   string
	param string
	kind  reflect.Kind
}

func (f *Form[D]) validate(draft D) *ValidationError {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Message: err.Error()}
	}

	fields := make([]string, 0, len(verrs))
	errs := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		errs = append(errs, fieldError{
			field: fe.Field(),
			tag:   fe.Tag(),
			param: fe.Param(),
			kind:  fe.Kind(),
		})
	}
	return &ValidationError{Fields: fields, Message: f.describe(errs)}
}

func describeFields(errs []fieldError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.message())
	}
	return strings.Join(msgs, "; ")
}

// describeSelection folds missing student/module pickers into one notice.
func describeSelection(errs []fieldError) string {
	var rest []fieldError
	missingPick := false
	for _, e := range errs {
		if e.tag == "required" && (e.field == "Student" || e.field == "Module") {
			missingPick = true
			continue
		}
		rest = append(rest, e)
	}
	if !missingPick {
		return describeFields(rest)
	}
	msg := "Please select both a student and a module"
	if len(rest) > 0 {
		msg += "; " + describeFields(rest)
	}
	return msg
}

func (e fieldError) message() string {
	switch e.tag {
	case "required":
		return fmt.Sprintf("%s is required", e.field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.field)
	case "min", "max":
		if e.field == "Score" {
			return "Score must be between 0 and 100"
		}
		if e.kind == reflect.String {
			if e.tag == "max" {
				return fmt.Sprintf("%s must be at most %s characters", e.field, e.param)
			}
			return fmt.Sprintf("%s must be at least %s characters", e.field, e.param)
		}
		return fmt.Sprintf("%s is out of range", e.field)
	default:
		return fmt.Sprintf("%s is invalid", e.field)
	}
}
