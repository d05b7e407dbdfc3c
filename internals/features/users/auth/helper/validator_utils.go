package helper

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FormatValidationErrors turns validator.v10 errors into a field → messages map
// for the JSON error envelope.
func FormatValidationErrors(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{"invalid input"}
		return out
	}
	for _, fieldErr := range ve {
		field := fieldErr.Field()
		var msg string
		switch fieldErr.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email address"
		case "min":
			msg = "must be at least " + fieldErr.Param() + " characters"
		case "max":
			msg = "must be at most " + fieldErr.Param() + " characters"
		case "oneof":
			msg = "must be one of " + fieldErr.Param()
		case "gte":
			msg = "must be greater than or equal to " + fieldErr.Param()
		default:
			msg = "has an invalid format"
		}
		out[field] = append(out[field], msg)
	}
	return out
}

// ValidateStruct runs the shared validator instance on any tagged struct.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}
