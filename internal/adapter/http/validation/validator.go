package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/romansndlr/remix-todos/internal/core/domain"
	"github.com/romansndlr/remix-todos/internal/core/port"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

func addCustomTranslations() {
	Validator.RegisterTranslation("required", Translator, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is required", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", getFieldName(fe.Field()))
		return t
	})

	Validator.RegisterTranslation("max", Translator, func(ut ut.Translator) error {
		return ut.Add("max", "{0} must be at most {1} characters", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("max", getFieldName(fe.Field()), fe.Param())
		return t
	})
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Title": "Title",
		"ID":    "Todo",
		"Done":  "Done",
	}

	if name, exists := fieldNames[field]; exists {
		return name
	}

	return field
}

// StructValidator is the port.Validator backed by go-playground/validator.
type StructValidator struct{}

func NewValidator() port.Validator {
	return &StructValidator{}
}

func (v *StructValidator) Validate(s interface{}) error {
	err := Validator.Struct(s)

	if err == nil {
		return nil
	}

	if fields := FormatValidationErrors(err); len(fields) > 0 {
		ve := domain.NewValidationError()
		for field, messages := range fields {
			for _, message := range messages {
				ve.Add(field, message)
			}
		}
		return ve
	}

	return err
}

// FormatValidationErrors turns validator errors into field-keyed messages.
func FormatValidationErrors(err error) map[string][]string {
	fields := map[string][]string{}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			key := strings.ToLower(fieldError.Field())
			fields[key] = append(fields[key], fieldError.Translate(Translator))
		}
	}

	return fields
}
