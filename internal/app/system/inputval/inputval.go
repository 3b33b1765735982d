// Package inputval validates admin form input with go-playground/validator
// and turns failures into user-facing messages.
//
// Form structs declare rules with `validate` tags and the field name shown
// to the user with a `label` tag:
//
//	type storyInput struct {
//		Text string `validate:"required,max=20000" label:"Story"`
//	}
//
//	if res := inputval.Validate(storyInput{Text: txt}); res.HasErrors() {
//		// re-render with res.First()
//	}
package inputval

import (
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/ngohub/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		v.RegisterAlias("link", "http_url|startswith=/|startswith=mailto:")
		_ = v.RegisterValidation("projectstatus", func(fl validator.FieldLevel) bool {
			return models.NormalizeProjectStatus(fl.Field().String()) != ""
		})
		validate = v
	})
	return validate
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures from Validate.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validate checks s against its validate tags.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{Field: fe.StructField(), Message: message(fe)})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max":
		if fe.Kind() == reflect.String {
			return label + " must be at most " + fe.Param() + " characters."
		}
		return label + " must be at most " + fe.Param() + "."
	case "min":
		if fe.Kind() == reflect.String {
			return label + " must be at least " + fe.Param() + " characters."
		}
		return label + " must be at least " + fe.Param() + "."
	case "len":
		return label + " must be exactly " + fe.Param() + " characters."
	case "email":
		return label + " must be a valid email address."
	case "http_url", "url":
		return label + " must be a valid http or https URL."
	case "link":
		return label + " must be an http or https URL, a site path or a mailto: link."
	case "datetime":
		return label + " must be a date in YYYY-MM-DD format."
	case "projectstatus":
		return label + " must be Ongoing, Completed or Upcoming."
	default:
		return label + " is invalid."
	}
}
