package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar los campos con su nombre JSON (o de query) en vez del nombre Go.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// validationError campo → regla fallida.
type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for f, tag := range e.fields {
		parts = append(parts, f+":"+tag)
	}
	return "validación: " + strings.Join(parts, ", ")
}

func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &validationError{fields: fields}
}

// bindBody parsea el JSON del body y valida los tags validate.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}
	return validateStruct(out)
}

// bindQuery parsea el query string y valida los tags validate.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return &validationError{fields: map[string]string{"query": "parse"}}
	}
	return validateStruct(out)
}

// fieldError reporta field con el error de dominio kind cuando el binding falló en ese campo:
// por la regla del validator o porque el JSON traía un tipo incompatible (ej. 2.5 en un entero).
func fieldError(err error, field string, kind error) error {
	var verr *validationError
	if errors.As(err, &verr) {
		if _, ok := verr.fields[field]; ok {
			return kind
		}
		return err
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == field {
		return kind
	}
	return err
}
