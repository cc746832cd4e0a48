package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"eats/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationError lists every invalid field of an input. It unwraps to services.ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return services.ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks input against its validate tags.
func Validate(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, FieldError{
			Field:   e.Namespace()[strings.Index(e.Namespace(), ".")+1:],
			Tag:     e.Tag(),
			Message: fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()),
		})
	}
	return &ValidationError{Fields: fields}
}

// bind decodes the JSON body into input and validates it.
func bind(c *fiber.Ctx, input interface{}) error {
	if err := c.BodyParser(input); err != nil {
		return &ValidationError{Fields: []FieldError{{
			Field:   "body",
			Tag:     "json",
			Message: "Invalid request body",
		}}}
	}
	return Validate(input)
}
