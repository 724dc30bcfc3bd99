package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"keep-notes-be/internal/notestate"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notecolor", func(fl validator.FieldLevel) bool {
		return notestate.IsKnownColor(fl.Field().String())
	})
	_ = v.RegisterValidation("notetype", func(fl validator.FieldLevel) bool {
		return notestate.NoteType(fl.Field().String()).Valid()
	})
	return v
}

// ValidationError carries per-field messages for a 400 response.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = fmt.Sprintf("failed on '%s'", fe.Tag())
	}
	return out
}
