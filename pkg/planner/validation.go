package planner

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// structValidator wraps go-playground/validator for the field-level struct
// tag checks AssembleParameters runs before its own cross-field checks.
type structValidator struct {
	validate *validator.Validate
}

func newStructValidator() *structValidator {
	return &structValidator{validate: validator.New()}
}

// validateStruct returns a single combined InvalidInput PlanningError, or
// nil, naming every failing field.
func (v *structValidator) validateStruct(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewInvalidInput("", err.Error())
	}
	var messages []string
	var firstField string
	for _, e := range validationErrs {
		if firstField == "" {
			firstField = e.Field()
		}
		messages = append(messages, fmt.Sprintf("field '%s' failed '%s' (value: '%v')", e.Field(), e.Tag(), e.Value()))
	}
	return NewInvalidInput(firstField, strings.Join(messages, "; "))
}
