package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form field names, in display order.
const (
	FieldTime        = "time"
	FieldTitle       = "title"
	FieldDescription = "description"
)

var Fields = []string{FieldTime, FieldTitle, FieldDescription}

// FieldInternal holds a validator failure that is not about any one field.
const FieldInternal = "internal"

var draftValidate = validator.New(validator.WithRequiredStructEnabled())

// ValidationErrors maps a draft field name to its message. An empty map
// means the draft is valid.
type ValidationErrors map[string]string

// Valid reports whether no field failed.
func (e ValidationErrors) Valid() bool {
	return len(e) == 0
}

func (e ValidationErrors) Error() string {
	var parts []string
	for _, f := range Fields {
		if msg, ok := e[f]; ok {
			parts = append(parts, msg)
		}
	}
	if msg, ok := e[FieldInternal]; ok {
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

// Validate checks every field of the draft independently and returns one
// message per failing field.
func Validate(d Draft) ValidationErrors {
	return translate(draftValidate.Struct(d))
}

func translate(err error) ValidationErrors {
	errs := ValidationErrors{}
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs[FieldInternal] = "validation failed: " + err.Error()
		return errs
	}

	for _, fe := range fieldErrs {
		label := fe.StructField()
		key := strings.ToLower(label)
		switch fe.Tag() {
		case "required":
			errs[key] = label + " is required"
		case "min":
			errs[key] = fmt.Sprintf("%s should be at least %s characters", label, fe.Param())
		default:
			errs[key] = fmt.Sprintf("%s is invalid", label)
		}
	}
	return errs
}
