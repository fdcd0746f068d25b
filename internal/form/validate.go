package form

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"gopherblog/internal/model"
)

// FieldErrors maps a form field name to its error messages. A nil value means
// the form is valid.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], " ")))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("blogstatus", func(fl validator.FieldLevel) bool {
			_, err := model.ParseBlogStatus(fl.Field().String())
			return err == nil
		})
		validate = v
	})
	return validate
}

func check(form any) FieldErrors {
	err := engine().Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"form": {err.Error()}}
	}

	out := FieldErrors{}
	formType := reflect.Indirect(reflect.ValueOf(form)).Type()
	for _, fe := range verrs {
		out.Add(fe.Field(), message(formType, fe))
	}
	return out
}

func message(formType reflect.Type, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "blogstatus", "oneof":
		return "Not a valid choice."
	case "min", "max":
		minLen, maxLen := lengthBounds(formType, fe.StructField())
		switch {
		case minLen != "" && maxLen != "":
			return fmt.Sprintf("Field must be between %s and %s characters long.", minLen, maxLen)
		case minLen != "":
			return fmt.Sprintf("Field must be at least %s characters long.", minLen)
		default:
			return fmt.Sprintf("Field cannot be longer than %s characters.", maxLen)
		}
	default:
		return "Invalid value."
	}
}

// lengthBounds reads min= and max= back out of the validate tag so that a
// field limited on both sides reports the combined range.
func lengthBounds(formType reflect.Type, structField string) (minLen, maxLen string) {
	field, ok := formType.FieldByName(structField)
	if !ok {
		return "", ""
	}
	for _, rule := range strings.Split(field.Tag.Get("validate"), ",") {
		switch {
		case strings.HasPrefix(rule, "min="):
			minLen = strings.TrimPrefix(rule, "min=")
		case strings.HasPrefix(rule, "max="):
			maxLen = strings.TrimPrefix(rule, "max=")
		}
	}
	return minLen, maxLen
}
