package recipe

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidForm is wrapped by every error returned from Validate.
var ErrInvalidForm = errors.New("invalid form data")

// FieldError describes one rejected form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field problem found in a form.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidForm, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidForm }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("protein_step", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%ProteinStep == 0
	})
	return v
}

// Validate checks the form against the builder's constraints and returns a
// *ValidationError listing every problem, or nil. Custom names and extra
// ingredients are checked after trimming.
func (f FormData) Validate() error {
	trimmed := f
	trimmed.CustomProteinName = strings.TrimSpace(f.CustomProteinName)
	trimmed.CustomStarchName = strings.TrimSpace(f.CustomStarchName)
	trimmed.ExtraIngredients = make([]string, len(f.ExtraIngredients))
	for i, ing := range f.ExtraIngredients {
		trimmed.ExtraIngredients[i] = strings.TrimSpace(ing)
	}

	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return &ValidationError{Fields: fields}
}

var rangeMessages = map[string]string{
	"portions":      fmt.Sprintf("must be between %d and %d", MinPortions, MaxPortions),
	"proteinAmount": fmt.Sprintf("must be between %d and %d grams", MinProteinAmount, MaxProteinAmount),
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if strings.HasSuffix(fe.Field(), "]") {
			return "must not be empty"
		}
		return "is required"
	case "required_if":
		field, value, _ := strings.Cut(fe.Param(), " ")
		return fmt.Sprintf("is required when %s is %q", strings.ToLower(field), value)
	case "oneof":
		return fmt.Sprintf("unknown %s %q", fe.Field(), fe.Value())
	case "min", "max":
		if msg, ok := rangeMessages[fe.Field()]; ok {
			return msg
		}
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	case "protein_step":
		return fmt.Sprintf("must be a multiple of %d grams", ProteinStep)
	case "unique":
		return "must not contain duplicate ingredients"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// AddIngredient appends a trimmed ingredient unless it is blank or already
// present, mirroring the builder's add button.
func (f *FormData) AddIngredient(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, existing := range f.ExtraIngredients {
		if existing == name {
			return false
		}
	}
	f.ExtraIngredients = append(f.ExtraIngredients, name)
	return true
}
